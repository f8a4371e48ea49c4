package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"nomic_garden/internal/models"
)

// sanitizer 過濾用戶提交的自由文字中的所有 HTML
var sanitizer = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return sanitizer.Sanitize(s)
}

// statusCode 把領域錯誤對應到 HTTP 狀態碼
func statusCode(err error) int {
	switch {
	case errors.Is(err, models.ErrMissingFields),
		errors.Is(err, models.ErrInvalidVoteValue),
		errors.Is(err, models.ErrInvalidStatus):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrProposalNotFound),
		errors.Is(err, models.ErrVoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateUser),
		errors.Is(err, models.ErrDuplicateVote),
		errors.Is(err, models.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotAuthor),
		errors.Is(err, models.ErrNotVoteOwner),
		errors.Is(err, models.ErrNotDraft),
		errors.Is(err, models.ErrVotingNotOpen):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInvalidReference):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError 輸出錯誤回應，儲存層的內部訊息不外洩
func respondError(c *gin.Context, err error) {
	code := statusCode(err)
	if code == http.StatusInternalServerError {
		c.JSON(code, gin.H{"error": models.ErrStorage.Error()})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

// parseIDParam 解析路徑中的 :id
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "無效的 ID"})
		return 0, false
	}
	return uint(id), true
}
