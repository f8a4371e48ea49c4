package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"nomic_garden/internal/models"
)

// translateStorageError 在元件邊界把儲存層錯誤分類成領域錯誤
// notFound 與 duplicate 由呼叫端依操作語意指定，duplicate 可為 nil
// 字串比對是針對未實作 TranslateError 的驅動的後備方案
func translateStorageError(err error, notFound, duplicate error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if duplicate != nil &&
		(errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint")) {
		return duplicate
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(err.Error(), "FOREIGN KEY constraint") {
		return models.ErrInvalidReference
	}
	return fmt.Errorf("%w: %v", models.ErrStorage, err)
}
