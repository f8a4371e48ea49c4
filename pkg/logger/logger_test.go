package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// 單例初始化後，Init 的回傳值與 Get 都要能直接鏈式呼叫等級方法
func TestLoggerSingleton(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "debug", Output: &buf})

	log.Info().Str("component", "test").Msg("from init")
	if !strings.Contains(buf.String(), "from init") {
		t.Errorf("output %q missing init message", buf.String())
	}

	Get().Warn().Msg("from get")
	if !strings.Contains(buf.String(), "from get") {
		t.Errorf("output %q missing get message", buf.String())
	}

	// 重複 Init 不會重設輸出目標
	var other bytes.Buffer
	Init(Options{Output: &other})
	Get().Error().Msg("still here")
	if other.Len() != 0 {
		t.Error("second Init replaced the output")
	}
	if !strings.Contains(buf.String(), "still here") {
		t.Errorf("output %q missing message after second Init", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
		{"nonsense", zerolog.InfoLevel},
		{" Debug ", zerolog.DebugLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
