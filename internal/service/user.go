package service

import (
	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser 建立新用戶，username/email 撞到唯一索引時回報 ErrDuplicateUser
func (s *UserService) CreateUser(user *models.User) error {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return models.ErrMissingFields
	}
	// 先探查 email 是否已被使用；唯一索引仍是併發下的最後防線
	if _, err := s.userRepo.FindByEmail(user.Email); err == nil {
		return models.ErrDuplicateUser
	}
	if err := s.userRepo.Create(user); err != nil {
		return translateStorageError(err, models.ErrUserNotFound, models.ErrDuplicateUser)
	}
	return nil
}

func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return nil, translateStorageError(err, models.ErrUserNotFound, nil)
	}
	return user, nil
}

func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, translateStorageError(err, models.ErrUserNotFound, nil)
	}
	return user, nil
}
