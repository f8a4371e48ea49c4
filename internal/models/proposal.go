package models

import (
	"gorm.io/gorm"
)

// Proposal 表示一個治理提案
type Proposal struct {
	gorm.Model
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	AuthorID    uint           `gorm:"not null" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID" json:"-"`
	Status      ProposalStatus `gorm:"not null;default:draft" json:"status"`
	RuleText    string         `gorm:"type:text" json:"rule_text,omitempty"`   // 提案的具體規則文字，空字串視為未設定
	MarketURL   string         `json:"market_url,omitempty"`                   // 外部預測市場連結，空字串視為未設定
}

// ProposalStatus 定義提案狀態的類型
type ProposalStatus string

const (
	ProposalStatusDraft         ProposalStatus = "draft"           // 草稿，僅作者可編輯
	ProposalStatusOpenForVoting ProposalStatus = "open_for_voting" // 開放投票中
	ProposalStatusVotingClosed  ProposalStatus = "voting_closed"   // 投票已截止，等待結算
	ProposalStatusAccepted      ProposalStatus = "accepted"        // 通過
	ProposalStatusRejected      ProposalStatus = "rejected"        // 未通過
	ProposalStatusImplemented   ProposalStatus = "implemented"     // 已實施
)

// statusTransitions 定義允許的狀態轉換
// draft → open_for_voting → voting_closed → accepted/rejected → implemented
var statusTransitions = map[ProposalStatus][]ProposalStatus{
	ProposalStatusDraft:         {ProposalStatusOpenForVoting},
	ProposalStatusOpenForVoting: {ProposalStatusVotingClosed},
	ProposalStatusVotingClosed:  {ProposalStatusAccepted, ProposalStatusRejected},
	ProposalStatusAccepted:      {ProposalStatusImplemented},
	ProposalStatusRejected:      {}, // rejected 是終止狀態
	ProposalStatusImplemented:   {},
}

// Valid 檢查狀態是否屬於已定義的集合
func (s ProposalStatus) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransitionTo 檢查是否允許從當前狀態轉換到 next
func (s ProposalStatus) CanTransitionTo(next ProposalStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ProposalWithAuthor 是附帶作者用戶名的提案視圖，供列表與詳情查詢使用
type ProposalWithAuthor struct {
	Proposal
	AuthorUsername string `json:"author_username"`
}
