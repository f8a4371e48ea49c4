package service

import (
	"fmt"
	"time"

	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
)

type VoteService struct {
	repos     *repository.Repositories
	wsManager *WebSocketManager
}

func NewVoteService(repos *repository.Repositories, wsManager *WebSocketManager) *VoteService {
	return &VoteService{
		repos:     repos,
		wsManager: wsManager,
	}
}

// CastVote 對提案投下第一票
// 「確認提案開放投票、寫入投票」在同一交易內執行；
// 若兩個併發的首投同時通過檢查，(proposal_id, user_id) 唯一索引會讓後到者
// 收到 ErrDuplicateVote，呼叫端應改走 ChangeVote
func (s *VoteService) CastVote(proposalID, userID uint, value models.VoteValue, rationale string) (*models.Vote, error) {
	if proposalID == 0 || userID == 0 || value == "" {
		return nil, fmt.Errorf("%w：proposal、user、value 皆為必填", models.ErrMissingFields)
	}
	if !value.Valid() {
		return nil, fmt.Errorf("%w：%s", models.ErrInvalidVoteValue, value)
	}

	vote := &models.Vote{
		ProposalID: proposalID,
		UserID:     userID,
		Value:      value,
		Rationale:  rationale,
		VotedAt:    time.Now(),
	}
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		proposal, err := tx.Proposal.FindByID(proposalID)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		if proposal.Status != models.ProposalStatusOpenForVoting {
			return models.ErrVotingNotOpen
		}
		if err := tx.Vote.Create(vote); err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, models.ErrDuplicateVote)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastOutcome(proposalID)
	return vote, nil
}

// ChangeVote 修改已存在的投票，覆寫選項與理由並刷新投票時間
func (s *VoteService) ChangeVote(voteID uint, value models.VoteValue, rationale string) (*models.Vote, error) {
	if value == "" {
		return nil, fmt.Errorf("%w：value 不可為空", models.ErrMissingFields)
	}
	if !value.Valid() {
		return nil, fmt.Errorf("%w：%s", models.ErrInvalidVoteValue, value)
	}

	var vote *models.Vote
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		var err error
		vote, err = tx.Vote.FindByID(voteID)
		if err != nil {
			return translateStorageError(err, models.ErrVoteNotFound, nil)
		}

		proposal, err := tx.Proposal.FindByID(vote.ProposalID)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		if proposal.Status != models.ProposalStatusOpenForVoting {
			return models.ErrVotingNotOpen
		}

		vote.Value = value
		vote.Rationale = rationale
		vote.VotedAt = time.Now()
		if err := tx.Vote.Save(vote); err != nil {
			return translateStorageError(err, models.ErrVoteNotFound, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.broadcastOutcome(vote.ProposalID)
	return vote, nil
}

// GetVote 以 ID 查詢投票
func (s *VoteService) GetVote(voteID uint) (*models.Vote, error) {
	vote, err := s.repos.Vote.FindByID(voteID)
	if err != nil {
		return nil, translateStorageError(err, models.ErrVoteNotFound, nil)
	}
	return vote, nil
}

// GetUserVote 查詢指定用戶對指定提案的投票
func (s *VoteService) GetUserVote(proposalID, userID uint) (*models.Vote, error) {
	vote, err := s.repos.Vote.FindByProposalAndUser(proposalID, userID)
	if err != nil {
		return nil, translateStorageError(err, models.ErrVoteNotFound, nil)
	}
	return vote, nil
}

// ListVotes 列出提案的所有投票，附帶投票者用戶名，按投票時間由新到舊排列
func (s *VoteService) ListVotes(proposalID uint) ([]models.VoteWithVoter, error) {
	votes, err := s.repos.Vote.FindByProposalID(proposalID)
	if err != nil {
		return nil, translateStorageError(err, models.ErrVoteNotFound, nil)
	}
	return votes, nil
}

// GetOutcome 計算提案目前的投票結果，每次讀取都重新統計
func (s *VoteService) GetOutcome(proposalID uint) (Outcome, error) {
	votes, err := s.ListVotes(proposalID)
	if err != nil {
		return Outcome{}, err
	}
	return ComputeOutcome(votes), nil
}

// broadcastOutcome 在投票成功寫入後，向訂閱該提案的客戶端推送最新結果
func (s *VoteService) broadcastOutcome(proposalID uint) {
	if s.wsManager == nil || s.wsManager.GetProposalClients(proposalID) == 0 {
		return // 沒有訂閱者就不必重新統計
	}
	outcome, err := s.GetOutcome(proposalID)
	if err != nil {
		return // 推播失敗不影響已完成的投票
	}
	s.wsManager.BroadcastOutcome(proposalID, outcome)
}
