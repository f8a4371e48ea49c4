package service

import (
	"testing"
)

func newTestClient(proposalID uint) *Client {
	return &Client{
		ProposalID: proposalID,
		SendChan:   make(chan *TallyMessage, 4),
		done:       make(chan struct{}),
	}
}

func TestWebSocketManagerClientTracking(t *testing.T) {
	m := NewWebSocketManager()
	a := newTestClient(1)
	b := newTestClient(1)
	other := newTestClient(2)

	m.addClient(a)
	m.addClient(b)
	m.addClient(other)

	if got := m.GetProposalClients(1); got != 2 {
		t.Errorf("GetProposalClients(1) = %d, want 2", got)
	}
	if got := m.GetProposalClients(2); got != 1 {
		t.Errorf("GetProposalClients(2) = %d, want 1", got)
	}

	m.removeClient(a)
	m.removeClient(a) // 重複移除是安全的

	if got := m.GetProposalClients(1); got != 1 {
		t.Errorf("GetProposalClients(1) after remove = %d, want 1", got)
	}
	select {
	case <-a.done:
	default:
		t.Error("removed client's done channel not closed")
	}

	m.removeClient(b)
	if got := m.GetProposalClients(1); got != 0 {
		t.Errorf("GetProposalClients(1) after all removed = %d, want 0", got)
	}
}

// 廣播送達仍在線的訂閱者；已離線的客戶端既不會收到訊息，也不會引發 panic
func TestBroadcastAfterDisconnect(t *testing.T) {
	m := NewWebSocketManager()
	gone := newTestClient(1)
	stay := newTestClient(1)

	m.addClient(gone)
	m.addClient(stay)
	m.removeClient(gone)

	m.BroadcastOutcome(1, Outcome{CountYes: 1, Total: 1, YesPercentage: 100})

	select {
	case msg := <-stay.SendChan:
		if msg.Type != "outcome" || msg.Outcome == nil || msg.Outcome.CountYes != 1 {
			t.Errorf("message = %+v, want an outcome broadcast", msg)
		}
	default:
		t.Fatal("subscribed client received no broadcast")
	}

	select {
	case <-gone.SendChan:
		t.Error("removed client received a broadcast")
	default:
	}

	m.BroadcastSystemMessage(1, "測試通知")
	select {
	case msg := <-stay.SendChan:
		if msg.Type != "system" || msg.Content != "測試通知" {
			t.Errorf("message = %+v, want a system notice", msg)
		}
	default:
		t.Fatal("subscribed client received no system notice")
	}
}
