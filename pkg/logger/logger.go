// Package logger 提供以 zerolog 為底的單例結構化日誌
//
// 程式啟動時呼叫一次 Init，之後在任何地方用 Get 取得
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options 控制日誌初始化行為
type Options struct {
	// Level 是最低輸出等級：debug、info、warn、error，無法辨識時預設 info
	Level string
	// Pretty 啟用人類可讀的彩色輸出，production 環境應設為 false 以輸出純 JSON
	Pretty bool
	// Output 是日誌輸出目標，預設 os.Stdout
	Output io.Writer
}

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init 初始化單例日誌，多次呼叫只有第一次生效
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		zerolog.TimeFieldFormat = time.RFC3339

		out := opts.Output
		if out == nil {
			out = os.Stdout
		}
		if opts.Pretty {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		instance = zerolog.New(out).
			Level(parseLevel(opts.Level)).
			With().
			Timestamp().
			Logger()
	})
	return instance
}

// Get 取得單例日誌；尚未 Init 時用預設選項初始化（測試時方便）
// 回傳指標，等級方法才能直接鏈式呼叫
func Get() *zerolog.Logger {
	Init(Options{})
	return &instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
