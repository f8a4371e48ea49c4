package repository

import (
	"nomic_garden/internal/models"
	"nomic_garden/internal/storage"
)

type VoteRepository interface {
	Create(vote *models.Vote) error
	Save(vote *models.Vote) error
	FindByID(id uint) (*models.Vote, error)
	FindByProposalAndUser(proposalID, userID uint) (*models.Vote, error)
	FindByProposalID(proposalID uint) ([]models.VoteWithVoter, error)
}

type voteRepository struct {
	db *storage.DB
}

func NewVoteRepository(db *storage.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(vote *models.Vote) error {
	return r.db.Create(vote).Error
}

func (r *voteRepository) Save(vote *models.Vote) error {
	return r.db.Save(vote).Error
}

func (r *voteRepository) FindByID(id uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.First(&vote, id).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) FindByProposalAndUser(proposalID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.Where("proposal_id = ? AND user_id = ?", proposalID, userID).First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// FindByProposalID 查詢提案的所有投票，附帶投票者用戶名，按投票時間由新到舊排列
func (r *voteRepository) FindByProposalID(proposalID uint) ([]models.VoteWithVoter, error) {
	var votes []models.Vote
	err := r.db.Joins("User").
		Where("votes.proposal_id = ?", proposalID).
		Order("votes.voted_at DESC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}

	result := make([]models.VoteWithVoter, 0, len(votes))
	for _, v := range votes {
		result = append(result, models.VoteWithVoter{
			Vote:          v,
			VoterUsername: v.User.Username,
		})
	}
	return result, nil
}
