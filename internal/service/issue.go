package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mapper/internal/apperror"
	"mapper/internal/cache"
	"mapper/internal/database"
	"mapper/internal/model"
	"mapper/internal/store"

	"github.com/jackc/pgx/v5"
)

var (
	issueTypeExists     = store.IssueTypeExists
	createIssue         = store.CreateIssue
	incrementUserPoints = store.IncrementUserPoints
	listIssues          = store.ListIssues
	getIssueByID        = store.GetIssueByID
	updateIssueStatus   = store.UpdateIssueStatus
	deleteIssue         = store.DeleteIssue
	listIssueTypes      = store.ListIssueTypes

	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// IssueTypesCacheKey 為 issue type 列表在 Redis 的快取鍵
const IssueTypesCacheKey = "mapper:issue_types"

const msgCreateFailed = "Failed to create report."

func issueNotFound(id int) error {
	return apperror.NotFound(fmt.Sprintf("Issue with ID %d not found.", id))
}

func issueTypeNotFound(id int) error {
	return apperror.BadRequest(fmt.Sprintf("Issue type with ID %d not found.", id))
}

// CreateIssue 在同一交易中檢查類型、新增問題並為使用者加 1 積分
// 任何一步失敗整筆交易回滾；初始狀態固定為 DefaultIssueStatusID
func CreateIssue(ctx context.Context, db database.DB, user model.User, in model.NewIssue) (*model.Issue, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, apperror.Internal(msgCreateFailed, err)
	}
	defer tx.Rollback(ctx)

	exists, err := issueTypeExists(ctx, tx, in.TypeID)
	if err != nil {
		return nil, apperror.Internal(msgCreateFailed, err)
	}
	if !exists {
		return nil, issueTypeNotFound(in.TypeID)
	}

	issue, err := createIssue(ctx, tx, user.ID, in, model.DefaultIssueStatusID, timeNow())
	if err != nil {
		// 類型在檢查後被刪除時由外鍵擋下
		if fkViolation(err, issuesTypeFK) {
			return nil, issueTypeNotFound(in.TypeID)
		}
		return nil, apperror.Internal(msgCreateFailed, err)
	}

	if err := incrementUserPoints(ctx, tx, user.ID); err != nil {
		return nil, apperror.Internal(msgCreateFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.Internal(msgCreateFailed, err)
	}
	return issue, nil
}

func ListIssues(ctx context.Context, q database.Querier) ([]model.IssueSummary, error) {
	list, err := listIssues(ctx, q)
	if err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}
	return list, nil
}

func GetIssue(ctx context.Context, q database.Querier, id int) (*model.Issue, error) {
	issue, err := getIssueByID(ctx, q, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, issueNotFound(id)
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	return issue, nil
}

// SetIssueStatus 由管理員覆寫問題狀態，不限制轉換順序
// 狀態是否存在只由資料庫外鍵檢查
func SetIssueStatus(ctx context.Context, q database.Querier, actor model.User, id, statusID int) (*model.StatusChange, error) {
	if !actor.IsAdmin() {
		return nil, apperror.Forbidden("Forbidden")
	}
	change, err := updateIssueStatus(ctx, q, id, statusID)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, issueNotFound(id)
		case fkViolation(err, issuesStatusFK):
			return nil, apperror.BadRequest(fmt.Sprintf("Issue status with ID %d not found.", statusID))
		}
		return nil, apperror.Internal(msgInternal, err)
	}
	return change, nil
}

func DeleteIssue(ctx context.Context, q database.Querier, actor model.User, id int) (int, error) {
	if !actor.IsAdmin() {
		return 0, apperror.Forbidden("Forbidden")
	}
	deleted, err := deleteIssue(ctx, q, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, issueNotFound(id)
		}
		return 0, apperror.Internal(msgInternal, err)
	}
	return deleted, nil
}

// ListIssueTypes 優先讀取 Redis 快取；快取未命中或失敗時查詢資料庫並回寫
// c 為 nil 時不使用快取
func ListIssueTypes(ctx context.Context, q database.Querier, c cache.Cache, ttl time.Duration) ([]model.IssueType, error) {
	if c != nil {
		if raw, err := c.Get(ctx, IssueTypesCacheKey).Bytes(); err == nil {
			var types []model.IssueType
			if jsonUnmarshal(raw, &types) == nil && types != nil {
				return types, nil
			}
		}
	}

	types, err := listIssueTypes(ctx, q)
	if err != nil {
		return nil, apperror.Internal(msgInternal, err)
	}

	if c != nil {
		if raw, err := jsonMarshal(types); err == nil {
			_ = c.Set(ctx, IssueTypesCacheKey, raw, ttl).Err()
		}
	}
	return types, nil
}

// InvalidateIssueTypes 清除問題類型快取，種子資料變更後呼叫
func InvalidateIssueTypes(ctx context.Context, c cache.Cache) error {
	if err := c.Del(ctx, IssueTypesCacheKey).Err(); err != nil {
		return fmt.Errorf("InvalidateIssueTypes: %w", err)
	}
	return nil
}
