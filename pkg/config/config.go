package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Log    LogConfig
}

type ServerConfig struct {
	Address string
}

// DBConfig 支援兩種驅動：postgres（production）與 sqlite（內嵌，開發/測試用）
type DBConfig struct {
	Driver   string
	Host     string
	User     string
	Password string
	Name     string
	Port     int
	Path     string // sqlite 資料庫檔案路徑
}

type JWTConfig struct {
	Secret      string
	ExpireHours int
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./pkg/config")

	// 環境變數覆寫，例如 NOMIC_DB_PASSWORD 對應 db.password
	viper.SetEnvPrefix("nomic")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.path", "nomic-garden.db")
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("jwt.secret", "change_me_in_env")
	viper.SetDefault("jwt.expirehours", 168)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", false)

	if err := viper.ReadInConfig(); err != nil {
		// 沒有設定檔時用預設值與環境變數
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
