// Package testutil 提供測試共用的資料庫建置工具。
package testutil

import (
	"testing"

	"nomic_garden/internal/models"
	"nomic_garden/internal/storage"
)

// NewTestDB 建立一個 in-memory SQLite 資料庫並完成遷移
// 真實的唯一索引與外鍵約束都會生效，測試結束時自動關閉
func NewTestDB(t *testing.T) *storage.DB {
	t.Helper()

	db, err := storage.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Proposal{}, &models.Vote{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}
