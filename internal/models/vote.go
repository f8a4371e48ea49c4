package models

import (
	"time"

	"gorm.io/gorm"
)

// Vote 表示一個用戶對一個提案的投票
// (proposal_id, user_id) 的唯一索引保證每人對每個提案只有一筆投票，
// 同時也是併發下重複投票的最後一道防線
type Vote struct {
	gorm.Model
	ProposalID uint      `gorm:"not null;uniqueIndex:idx_votes_proposal_user" json:"proposal_id"`
	UserID     uint      `gorm:"not null;uniqueIndex:idx_votes_proposal_user" json:"user_id"`
	Value      VoteValue `gorm:"not null" json:"value"`
	Rationale  string    `gorm:"type:text" json:"rationale,omitempty"` // 投票理由，可省略
	VotedAt    time.Time `gorm:"not null" json:"voted_at"`             // 最後一次投票或改票的時間
	Proposal   Proposal  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// VoteValue 定義投票選項的類型
type VoteValue string

const (
	VoteYes     VoteValue = "yes"
	VoteNo      VoteValue = "no"
	VoteAbstain VoteValue = "abstain"
)

// Valid 檢查投票選項是否屬於允許的集合
func (v VoteValue) Valid() bool {
	switch v {
	case VoteYes, VoteNo, VoteAbstain:
		return true
	}
	return false
}

// VoteWithVoter 是附帶投票者用戶名的投票視圖
type VoteWithVoter struct {
	Vote
	VoterUsername string `json:"voter_username"`
}
