package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
	"nomic_garden/internal/service"
)

// ProposalHandler 處理與提案相關的請求
type ProposalHandler struct {
	proposalService *service.ProposalService
	voteService     *service.VoteService
}

// NewProposalHandler 創建一個新的 ProposalHandler 實例
func NewProposalHandler(proposalService *service.ProposalService, voteService *service.VoteService) *ProposalHandler {
	return &ProposalHandler{
		proposalService: proposalService,
		voteService:     voteService,
	}
}

// CreateProposal 處理建立提案的請求，作者為當前登入用戶
func (h *ProposalHandler) CreateProposal(c *gin.Context) {
	var input struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		RuleText    string `json:"rule_text"`
		MarketURL   string `json:"market_url" binding:"omitempty,url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := c.Get("userID")

	proposal, err := h.proposalService.CreateProposal(
		sanitize(input.Title),
		sanitize(input.Description),
		userID.(uint),
		sanitize(input.RuleText),
		models.ProposalStatusDraft, // 新提案一律從草稿開始
		input.MarketURL,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, proposal)
}

// ListProposals 處理提案列表查詢，支援 status/author_id 過濾與 limit/offset 分頁
func (h *ProposalHandler) ListProposals(c *gin.Context) {
	filter := repository.ProposalFilter{
		Status: models.ProposalStatus(c.Query("status")),
	}
	if authorID, err := strconv.ParseUint(c.Query("author_id"), 10, 32); err == nil {
		filter.AuthorID = uint(authorID)
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filter.Offset = offset
	}

	proposals, err := h.proposalService.ListProposals(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, proposals)
}

// GetProposal 回傳單一提案，附帶投票列表與目前統計結果
func (h *ProposalHandler) GetProposal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(id)
	if err != nil {
		respondError(c, err)
		return
	}

	votes, err := h.voteService.ListVotes(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"proposal": proposal,
		"votes":    votes,
		"outcome":  service.ComputeOutcome(votes),
	})
}

// UpdateProposal 處理提案內容的編輯
// 指標欄位用來區分「沒送這個欄位」和「送了空值」
func (h *ProposalHandler) UpdateProposal(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		RuleText    *string `json:"rule_text"`
		MarketURL   *string `json:"market_url" binding:"omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.ProposalDetailsUpdate{
		MarketURL: input.MarketURL,
	}
	if input.Title != nil {
		clean := sanitize(*input.Title)
		update.Title = &clean
	}
	if input.Description != nil {
		clean := sanitize(*input.Description)
		update.Description = &clean
	}
	if input.RuleText != nil {
		clean := sanitize(*input.RuleText)
		update.RuleText = &clean
	}

	userID, _ := c.Get("userID")

	changes, err := h.proposalService.UpdateDetails(id, userID.(uint), update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changes": changes})
}

// UpdateProposalStatus 處理提案狀態轉換，僅作者可操作
func (h *ProposalHandler) UpdateProposalStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var input struct {
		Status models.ProposalStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 作者檢查
	proposal, err := h.proposalService.GetProposal(id)
	if err != nil {
		respondError(c, err)
		return
	}
	userID, _ := c.Get("userID")
	if proposal.AuthorID != userID.(uint) {
		respondError(c, models.ErrNotAuthor)
		return
	}

	changes, err := h.proposalService.UpdateStatus(id, input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"changes": changes})
}
