package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nomic_garden/internal/api"
	"nomic_garden/internal/middleware"
	"nomic_garden/internal/models"
	"nomic_garden/internal/repository"
	"nomic_garden/internal/service"
	"nomic_garden/internal/storage"
	"nomic_garden/internal/utils"
	"nomic_garden/pkg/config"
	"nomic_garden/pkg/logger"
)

func main() {
	// 載入應用程式配置
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("failed to load config")
	}

	// 初始化日誌
	log := logger.Init(logger.Options{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	// 設定 JWT 簽章密鑰
	utils.Configure(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	// 初始化資料庫連接
	// production 用 PostgreSQL，開發與測試用內嵌的 SQLite
	var db *storage.DB
	switch cfg.DB.Driver {
	case "postgres":
		db, err = storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	default:
		db, err = storage.NewSQLiteDB(cfg.DB.Path)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	// 確保在程序結束時關閉資料庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(&models.User{}, &models.Proposal{}, &models.Vote{}); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate database")
	}

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos)

	// 設置 Gin 路由
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), cors.Default())
	api.SetupRoutes(r, services)

	// 啟動伺服器
	log.Info().Str("address", cfg.Server.Address).Msg("server starting")
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}
