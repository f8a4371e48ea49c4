package repository

import (
	"nomic_garden/internal/storage"

	"gorm.io/gorm"
)

type Repositories struct {
	db       *storage.DB
	User     UserRepository
	Proposal ProposalRepository
	Vote     VoteRepository
}

func NewRepositories(db *storage.DB) *Repositories {
	return &Repositories{
		db:       db,
		User:     NewUserRepository(db),
		Proposal: NewProposalRepository(db),
		Vote:     NewVoteRepository(db),
	}
}

// Transaction 在單一交易中執行 fn，fn 收到的 Repositories 綁定在該交易上
// 用於「先檢查狀態、再寫入」這類必須原子執行的序列
func (r *Repositories) Transaction(fn func(txRepos *Repositories) error) error {
	return r.db.DB.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(&storage.DB{DB: tx}))
	})
}
