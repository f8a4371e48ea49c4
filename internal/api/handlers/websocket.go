package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"nomic_garden/internal/service"
)

// 定義 WebSocket 升級器
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // 注意：在生產環境中，應該檢查 origin
	},
}

// WebSocketHandler 處理提案即時結果的 WebSocket 連接
type WebSocketHandler struct {
	wsManager       *service.WebSocketManager
	proposalService *service.ProposalService
	voteService     *service.VoteService
}

// NewWebSocketHandler 創建一個新的 WebSocketHandler 實例
func NewWebSocketHandler(wsManager *service.WebSocketManager, proposalService *service.ProposalService, voteService *service.VoteService) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:       wsManager,
		proposalService: proposalService,
		voteService:     voteService,
	}
}

// HandleWebSocket 處理訂閱提案即時結果的連接請求
func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	proposalID, ok := parseIDParam(c)
	if !ok {
		return
	}

	// 確認提案存在
	if _, err := h.proposalService.GetProposal(proposalID); err != nil {
		respondError(c, err)
		return
	}

	userID, _ := c.Get("userID")

	// 升級 HTTP 連接為 WebSocket 連接
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "升級WebSocket失敗"})
		return
	}

	// 先推一次目前的統計結果，之後由投票寫入路徑觸發廣播
	if outcome, err := h.voteService.GetOutcome(proposalID); err == nil {
		conn.WriteJSON(service.TallyMessage{
			Type:       "outcome",
			ProposalID: proposalID,
			Outcome:    &outcome,
			Timestamp:  time.Now(),
		})
	}

	// 阻塞直到連接關閉
	h.wsManager.HandleConnection(conn, proposalID, userID.(uint))
}
