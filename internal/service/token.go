package service

import (
	"errors"
	"fmt"
	"time"

	"mapper/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims 定義 session token 的 JWT 負載
type SessionClaims struct {
	SessionID string `json:"sid"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

var (
	timeNow         = time.Now
	parseWithClaims = jwt.ParseWithClaims
)

// IssueSessionToken 以 HS256 簽發綁定 session 的 JWT，到期時間與 session 相同
func IssueSessionToken(secret []byte, s model.Session, u model.User) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("jwt secret not set")
	}
	claims := SessionClaims{
		SessionID: s.ID,
		Role:      u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(timeNow()),
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySessionToken 驗證簽章與到期時間並解析 JWT
func VerifySessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwt secret not set")
	}
	token, err := parseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
