package service

import (
	"fmt"

	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
)

type ProposalService struct {
	repos     *repository.Repositories
	wsManager *WebSocketManager
}

func NewProposalService(repos *repository.Repositories, wsManager *WebSocketManager) *ProposalService {
	return &ProposalService{
		repos:     repos,
		wsManager: wsManager,
	}
}

// ProposalDetailsUpdate 描述提案可編輯的欄位，nil 表示不更動該欄位
// RuleText/MarketURL 傳入空字串時會被視為清空
type ProposalDetailsUpdate struct {
	Title       *string
	Description *string
	RuleText    *string
	MarketURL   *string
}

// CreateProposal 建立新提案，status 為空時預設為 draft
func (s *ProposalService) CreateProposal(title, description string, authorID uint, ruleText string, status models.ProposalStatus, marketURL string) (*models.Proposal, error) {
	if title == "" || description == "" || authorID == 0 {
		return nil, fmt.Errorf("%w：title、description、author 皆為必填", models.ErrMissingFields)
	}
	if status == "" {
		status = models.ProposalStatusDraft
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w：%s", models.ErrInvalidStatus, status)
	}

	proposal := &models.Proposal{
		Title:       title,
		Description: description,
		AuthorID:    authorID,
		Status:      status,
		RuleText:    ruleText,
		MarketURL:   marketURL,
	}
	if err := s.repos.Proposal.Create(proposal); err != nil {
		// author 外鍵違反會在這裡被轉成 ErrInvalidReference
		return nil, translateStorageError(err, models.ErrProposalNotFound, nil)
	}
	return proposal, nil
}

func (s *ProposalService) GetProposal(id uint) (*models.ProposalWithAuthor, error) {
	proposal, err := s.repos.Proposal.FindByID(id)
	if err != nil {
		return nil, translateStorageError(err, models.ErrProposalNotFound, nil)
	}
	return proposal, nil
}

// ListProposals 依條件列出提案，固定按建立時間由新到舊排列
func (s *ProposalService) ListProposals(filter repository.ProposalFilter) ([]models.ProposalWithAuthor, error) {
	proposals, err := s.repos.Proposal.Find(filter)
	if err != nil {
		return nil, translateStorageError(err, models.ErrProposalNotFound, nil)
	}
	return proposals, nil
}

// UpdateStatus 轉換提案狀態
// 狀態是封閉集合，轉換必須符合 models 定義的轉換表；
// 新狀態與當前狀態相同時不算錯誤，回報 0 筆變更
// 整段「讀取、檢查、更新」在同一交易內執行
func (s *ProposalService) UpdateStatus(id uint, newStatus models.ProposalStatus) (int64, error) {
	if newStatus == "" {
		return 0, fmt.Errorf("%w：status 不可為空", models.ErrMissingFields)
	}
	if !newStatus.Valid() {
		return 0, fmt.Errorf("%w：%s", models.ErrInvalidStatus, newStatus)
	}

	var changes int64
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		proposal, err := tx.Proposal.FindByID(id)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		if proposal.Status == newStatus {
			return nil // 無變更
		}
		if !proposal.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w：%s → %s", models.ErrInvalidTransition, proposal.Status, newStatus)
		}

		changes, err = tx.Proposal.UpdateStatus(id, newStatus)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if changes > 0 && s.wsManager != nil {
		s.wsManager.BroadcastSystemMessage(id, fmt.Sprintf("提案狀態變更為 %s", newStatus))
	}
	return changes, nil
}

// UpdateDetails 更新提案內容
// 只有作者本人、且提案仍在草稿狀態時允許編輯，檢查與更新在同一交易內執行
// 沒有任何欄位要更新時直接回報 0 筆變更，不觸碰資料庫
func (s *ProposalService) UpdateDetails(id, actorID uint, update ProposalDetailsUpdate) (int64, error) {
	fields := make(map[string]interface{})
	if update.Title != nil {
		if *update.Title == "" {
			return 0, fmt.Errorf("%w：title 不可為空", models.ErrMissingFields)
		}
		fields["title"] = *update.Title
	}
	if update.Description != nil {
		if *update.Description == "" {
			return 0, fmt.Errorf("%w：description 不可為空", models.ErrMissingFields)
		}
		fields["description"] = *update.Description
	}
	if update.RuleText != nil {
		fields["rule_text"] = *update.RuleText // 空字串即清空
	}
	if update.MarketURL != nil {
		fields["market_url"] = *update.MarketURL
	}
	if len(fields) == 0 {
		return 0, nil
	}

	var changes int64
	err := s.repos.Transaction(func(tx *repository.Repositories) error {
		proposal, err := tx.Proposal.FindByID(id)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		if proposal.AuthorID != actorID {
			return models.ErrNotAuthor
		}
		if proposal.Status != models.ProposalStatusDraft {
			return models.ErrNotDraft
		}

		changes, err = tx.Proposal.UpdateDetails(id, fields)
		if err != nil {
			return translateStorageError(err, models.ErrProposalNotFound, nil)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changes, nil
}
