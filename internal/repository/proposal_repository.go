package repository

import (
	"nomic_garden/internal/models"
	"nomic_garden/internal/storage"
)

// ProposalFilter 描述列表查詢的過濾條件
// Offset 只有在 Limit 有設定時才會生效
type ProposalFilter struct {
	Status   models.ProposalStatus
	AuthorID uint
	Limit    int
	Offset   int
}

type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	FindByID(id uint) (*models.ProposalWithAuthor, error)
	Find(filter ProposalFilter) ([]models.ProposalWithAuthor, error)
	UpdateStatus(id uint, status models.ProposalStatus) (int64, error)
	UpdateDetails(id uint, fields map[string]interface{}) (int64, error)
}

type proposalRepository struct {
	db *storage.DB
}

func NewProposalRepository(db *storage.DB) ProposalRepository {
	return &proposalRepository{db: db}
}

func (r *proposalRepository) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *proposalRepository) FindByID(id uint) (*models.ProposalWithAuthor, error) {
	var proposal models.Proposal
	err := r.db.Joins("Author").First(&proposal, "proposals.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return withAuthor(proposal), nil
}

// Find 依條件查詢提案，固定按建立時間由新到舊排列
func (r *proposalRepository) Find(filter ProposalFilter) ([]models.ProposalWithAuthor, error) {
	query := r.db.Joins("Author").Order("proposals.created_at DESC")

	if filter.Status != "" {
		query = query.Where("proposals.status = ?", filter.Status)
	}
	if filter.AuthorID != 0 {
		query = query.Where("proposals.author_id = ?", filter.AuthorID)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
		if filter.Offset > 0 {
			query = query.Offset(filter.Offset)
		}
	}

	var proposals []models.Proposal
	if err := query.Find(&proposals).Error; err != nil {
		return nil, err
	}

	result := make([]models.ProposalWithAuthor, 0, len(proposals))
	for _, p := range proposals {
		result = append(result, *withAuthor(p))
	}
	return result, nil
}

func (r *proposalRepository) UpdateStatus(id uint, status models.ProposalStatus) (int64, error) {
	res := r.db.Model(&models.Proposal{}).Where("id = ?", id).Update("status", status)
	return res.RowsAffected, res.Error
}

// UpdateDetails 只更新傳入的欄位，欄位集合由 service 層組好
func (r *proposalRepository) UpdateDetails(id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Proposal{}).Where("id = ?", id).Updates(fields)
	return res.RowsAffected, res.Error
}

func withAuthor(p models.Proposal) *models.ProposalWithAuthor {
	return &models.ProposalWithAuthor{
		Proposal:       p,
		AuthorUsername: p.Author.Username,
	}
}
