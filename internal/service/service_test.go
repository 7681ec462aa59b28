package service

import (
	"encoding/json"
	"time"

	"mapper/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func restore() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
	jsonMarshal = json.Marshal
	jsonUnmarshal = json.Unmarshal

	newID = uuid.NewString
	createUser = store.CreateUser
	getUserByID = store.GetUserByID
	getUserByEmail = store.GetUserByEmail
	createAccount = store.CreateAccount
	getCredentialAccount = store.GetCredentialAccount
	createSession = store.CreateSession
	getSessionByID = store.GetSessionByID
	deleteSession = store.DeleteSession
	deleteExpiredSessions = store.DeleteExpiredSessions

	issueTypeExists = store.IssueTypeExists
	createIssue = store.CreateIssue
	incrementUserPoints = store.IncrementUserPoints
	listIssues = store.ListIssues
	getIssueByID = store.GetIssueByID
	updateIssueStatus = store.UpdateIssueStatus
	deleteIssue = store.DeleteIssue
	listIssueTypes = store.ListIssueTypes
}

func pgErr(code string) error {
	return &pgconn.PgError{Code: code}
}

func fkErr(constraint string) error {
	return &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: constraint}
}
