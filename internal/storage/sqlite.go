package storage

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB 開啟內嵌的 SQLite 資料庫
// path 可以是檔案路徑，或 ":memory:"（測試用）
func NewSQLiteDB(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// SQLite 是單寫入者；限制為單一連線，
	// 也避免 in-memory 模式下不同連線各自看到一個空資料庫
	sqlDB.SetMaxOpenConns(1)

	// 外鍵約束預設是關閉的，需逐連線開啟
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &DB{DB: db}, nil
}
