package service

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"nomic_garden/pkg/logger"
)

// TallyMessage 是推送給訂閱者的即時訊息
// type 為 outcome（附統計結果）或 system（附文字說明）
type TallyMessage struct {
	Type       string    `json:"type"`
	ProposalID uint      `json:"proposal_id"`
	Content    string    `json:"content,omitempty"`
	Outcome    *Outcome  `json:"outcome,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Client 代表一個訂閱提案即時結果的 WebSocket 客戶端連接
// SendChan 從不關閉，寫入端改由 done 通知結束，
// 避免廣播撞上已關閉的通道
type Client struct {
	Conn       *websocket.Conn    // WebSocket 連接
	UserID     uint               // 用戶 ID
	ProposalID uint               // 訂閱的提案 ID
	SendChan   chan *TallyMessage // 訊息發送通道，用於異步傳送訊息
	done       chan struct{}      // 關閉時通知 writePump 結束
	closeOnce  sync.Once
}

// WebSocketManager 管理所有的 WebSocket 連接和訊息廣播
type WebSocketManager struct {
	clients    map[uint]map[*Client]bool // 兩層 map: proposalID -> client -> bool
	clientsMux sync.RWMutex              // 用於保護 clients map 的讀寫鎖
}

// NewWebSocketManager 創建並初始化新的 WebSocket 管理器
func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{
		clients: make(map[uint]map[*Client]bool),
	}
}

// HandleConnection 處理新的 WebSocket 連接請求，阻塞直到連接關閉
func (m *WebSocketManager) HandleConnection(conn *websocket.Conn, proposalID, userID uint) {
	client := &Client{
		Conn:       conn,
		UserID:     userID,
		ProposalID: proposalID,
		SendChan:   make(chan *TallyMessage, 256),
		done:       make(chan struct{}),
	}

	m.addClient(client)

	// 確保連接關閉時清理資源
	defer func() {
		m.removeClient(client)
		conn.Close()
	}()

	go m.writePump(client)
	m.readPump(client)
}

// readPump 持續讀取客戶端訊息
// 即時結果是單向推送，客戶端的輸入一律丟棄，只維持心跳
func (m *WebSocketManager) readPump(client *Client) {
	client.Conn.SetReadLimit(512)
	client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Get().Warn().Err(err).Msg("websocket unexpected close")
			}
			break
		}
	}
}

// writePump 處理向客戶端發送訊息的邏輯
func (m *WebSocketManager) writePump(client *Client) {
	// 心跳計時器
	ticker := time.NewTicker(54 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-client.done:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message := <-client.SendChan:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			messageBytes, err := json.Marshal(message)
			if err != nil {
				logger.Get().Error().Err(err).Msg("tally message encoding error")
				continue
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
				return
			}

		case <-ticker.C:
			client.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastToProposal 向訂閱該提案的所有客戶端廣播訊息
func (m *WebSocketManager) BroadcastToProposal(proposalID uint, message *TallyMessage) {
	// 鎖內先取快照，離線者的併發移除不會影響迭代
	m.clientsMux.RLock()
	targets := make([]*Client, 0, len(m.clients[proposalID]))
	for client := range m.clients[proposalID] {
		targets = append(targets, client)
	}
	m.clientsMux.RUnlock()

	for _, client := range targets {
		select {
		case client.SendChan <- message:
			// 訊息成功加入發送隊列
		default:
			// 客戶端訊息隊列已滿，關閉連接
			m.removeClient(client)
			client.Conn.Close()
		}
	}
}

// BroadcastOutcome 推送最新的投票統計結果
func (m *WebSocketManager) BroadcastOutcome(proposalID uint, outcome Outcome) {
	m.BroadcastToProposal(proposalID, &TallyMessage{
		Type:       "outcome",
		ProposalID: proposalID,
		Outcome:    &outcome,
		Timestamp:  time.Now(),
	})
}

// BroadcastSystemMessage 推送系統通知到指定提案
func (m *WebSocketManager) BroadcastSystemMessage(proposalID uint, content string) {
	m.BroadcastToProposal(proposalID, &TallyMessage{
		Type:       "system",
		ProposalID: proposalID,
		Content:    content,
		Timestamp:  time.Now(),
	})
}

// addClient 安全地添加新的客戶端連接
func (m *WebSocketManager) addClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if m.clients[client.ProposalID] == nil {
		m.clients[client.ProposalID] = make(map[*Client]bool)
	}
	m.clients[client.ProposalID][client] = true
}

// removeClient 安全地移除客戶端連接，重複呼叫是安全的
func (m *WebSocketManager) removeClient(client *Client) {
	m.clientsMux.Lock()
	defer m.clientsMux.Unlock()

	if clients, ok := m.clients[client.ProposalID]; ok {
		delete(clients, client)
		// 如果沒有訂閱者了，移除該提案的紀錄
		if len(clients) == 0 {
			delete(m.clients, client.ProposalID)
		}
	}
	client.closeOnce.Do(func() {
		close(client.done)
	})
}

// GetProposalClients 獲取訂閱指定提案的在線客戶端數量
func (m *WebSocketManager) GetProposalClients(proposalID uint) int {
	m.clientsMux.RLock()
	defer m.clientsMux.RUnlock()

	return len(m.clients[proposalID])
}
