package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomic_garden/internal/models"
	"nomic_garden/internal/service"
)

// VoteHandler 處理與投票相關的請求
type VoteHandler struct {
	voteService *service.VoteService
}

// NewVoteHandler 創建一個新的 VoteHandler 實例
func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// VoteInput 定義投票請求的結構
type VoteInput struct {
	Value     models.VoteValue `json:"value" binding:"required"`
	Rationale string           `json:"rationale"`
}

// CastVote 處理首次投票
// 已投過票會得到 409，應改走 ChangeVote
func (h *VoteHandler) CastVote(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	vote, err := h.voteService.CastVote(proposalID, userID.(uint), input.Value, sanitize(input.Rationale))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}

// ChangeVote 處理改票，只能修改自己的投票
func (h *VoteHandler) ChangeVote(c *gin.Context) {
	voteID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 確認投票屬於當前用戶
	existing, err := h.voteService.GetVote(voteID)
	if err != nil {
		respondError(c, err)
		return
	}
	userID, _ := c.Get("userID")
	if existing.UserID != userID.(uint) {
		respondError(c, models.ErrNotVoteOwner)
		return
	}

	vote, err := h.voteService.ChangeVote(voteID, input.Value, sanitize(input.Rationale))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vote)
}

// MyVote 回傳當前用戶對指定提案的投票
func (h *VoteHandler) MyVote(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	userID, _ := c.Get("userID")

	vote, err := h.voteService.GetUserVote(proposalID, userID.(uint))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vote)
}

// ListVotes 回傳提案的所有投票，附帶投票者用戶名
func (h *VoteHandler) ListVotes(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	votes, err := h.voteService.ListVotes(proposalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, votes)
}

// Outcome 回傳提案目前的投票統計結果
func (h *VoteHandler) Outcome(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	outcome, err := h.voteService.GetOutcome(proposalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
