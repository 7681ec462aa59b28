package reports

import (
	"net/http"
	"strconv"
	"time"

	"mapper/internal/api"
	"mapper/internal/apperror"
	"mapper/internal/cache"
	"mapper/internal/database"
	"mapper/internal/middleware"
	"mapper/internal/model"
	"mapper/internal/service"

	"github.com/labstack/echo/v4"
)

var (
	listIssues     = service.ListIssues
	getIssue       = service.GetIssue
	listIssueTypes = service.ListIssueTypes
	createIssue    = service.CreateIssue
	setIssueStatus = service.SetIssueStatus
	deleteIssue    = service.DeleteIssue
)

func issueID(c echo.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	return id, err == nil
}

func currentUser(c echo.Context) (model.User, bool) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		return model.User{}, false
	}
	return s.User, true
}

// @Summary     List reports
// @Description 回傳所有問題回報，附帶狀態、類型與回報者名稱，依 issueId 排序
// @Tags        reports
// @Produce     json
// @Success     200 {array}  model.IssueSummary
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports [get]
func ListReportsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := listIssues(c.Request().Context(), db)
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, list)
	}
}

// @Summary     Get a report by ID
// @Description 透過 ID 查詢單筆問題回報（不含關聯名稱）
// @Tags        reports
// @Produce     json
// @Param       id  path     int true "問題 ID"
// @Success     200 {object} model.Issue
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse "問題不存在"
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports/{id} [get]
func GetReportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := issueID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid issue ID."})
		}
		issue, err := getIssue(c.Request().Context(), db, id)
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, issue)
	}
}

// @Summary     List issue types
// @Description 回傳所有問題類型，結果快取於 Redis
// @Tags        reports
// @Produce     json
// @Success     200 {array}  model.IssueType
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports/issue-types [get]
func ListIssueTypesHandler(db database.DB, rdb cache.Cache, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		types, err := listIssueTypes(c.Request().Context(), db, rdb, ttl)
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, types)
	}
}

// @Summary     Create a report
// @Description 建立問題回報，初始狀態固定為預設狀態，並為回報者加 1 積分
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       body body     api.CreateReportRequest true "回報內容"
// @Success     201  {object} model.Issue
// @Failure     400  {object} api.ErrorResponse "類型不存在或格式錯誤"
// @Failure     401  {object} api.ErrorResponse
// @Failure     422  {object} api.ErrorResponse "缺少必要欄位"
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports [post]
func CreateReportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := currentUser(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}

		var req api.CreateReportRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body."})
		}
		if err := c.Validate(&req); err != nil {
			return api.RespondError(c, err)
		}

		issue, err := createIssue(c.Request().Context(), db, user, req.NewIssue())
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusCreated, issue)
	}
}

// @Summary     Delete a report
// @Description 管理員刪除問題回報
// @Tags        reports
// @Produce     json
// @Param       id  path     int true "問題 ID"
// @Success     200 {object} api.DeleteReportResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse "非管理員"
// @Failure     404 {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports/{id} [delete]
func DeleteReportHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := currentUser(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		id, ok := issueID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid issue ID."})
		}

		deleted, err := deleteIssue(c.Request().Context(), db, user, id)
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.DeleteReportResponse{Success: true, IssueID: deleted})
	}
}

// @Summary     Update report status
// @Description 管理員覆寫問題狀態，不限制狀態轉換順序
// @Tags        reports
// @Accept      json
// @Produce     json
// @Param       id   path     int                     true "問題 ID"
// @Param       body body     api.UpdateStatusRequest true "新狀態"
// @Success     200  {object} api.UpdateStatusResponse
// @Failure     400  {object} api.ErrorResponse "statusId 缺少、格式錯誤或狀態不存在（不存在的狀態回 400，舊版回 500）"
// @Failure     401  {object} api.ErrorResponse
// @Failure     403  {object} api.ErrorResponse "非管理員"
// @Failure     404  {object} api.ErrorResponse
// @Security    BearerAuth
// @Security    SessionCookie
// @Router      /reports/{id}/status [put]
func UpdateReportStatusHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := currentUser(c)
		if !ok {
			return api.RespondError(c, apperror.Unauthorized("Unauthorized"))
		}
		id, ok := issueID(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid issue ID."})
		}

		var req api.UpdateStatusRequest
		if err := c.Bind(&req); err != nil || req.StatusID == nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Invalid request body. 'statusId' (number) is required."})
		}

		change, err := setIssueStatus(c.Request().Context(), db, user, id, *req.StatusID)
		if err != nil {
			return api.RespondError(c, err)
		}
		return c.JSON(http.StatusOK, api.UpdateStatusResponse{Success: true, Issue: *change})
	}
}
