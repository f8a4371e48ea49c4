package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nomic_garden/internal/api/handlers"
	"nomic_garden/internal/middleware"
	"nomic_garden/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	proposalHandler := handlers.NewProposalHandler(services.Proposal, services.Vote)
	voteHandler := handlers.NewVoteHandler(services.Vote)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocketManager, services.Proposal, services.Vote)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 公開路由
	{
		// 用戶認證相關
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)

		// 提案與投票的唯讀查詢
		api.GET("/proposals", proposalHandler.ListProposals)
		api.GET("/proposals/:id", proposalHandler.GetProposal)
		api.GET("/proposals/:id/votes", voteHandler.ListVotes)
		api.GET("/proposals/:id/outcome", voteHandler.Outcome)

		// 基本的健康檢查
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status": "ok",
			})
		})
	}

	// 需要驗證的路由
	authorized := api.Group("/")
	authorized.Use(middleware.AuthMiddleware())
	{
		// 個人資料
		authorized.GET("/profile/me", authHandler.Me)

		// 提案相關
		proposals := authorized.Group("/proposals")
		{
			proposals.POST("", proposalHandler.CreateProposal)           // 建立提案
			proposals.PUT("/:id", proposalHandler.UpdateProposal)        // 編輯草稿內容
			proposals.PUT("/:id/status", proposalHandler.UpdateProposalStatus) // 狀態轉換

			// 投票
			proposals.POST("/:id/votes", voteHandler.CastVote) // 首次投票
			proposals.GET("/:id/votes/me", voteHandler.MyVote) // 查詢自己的投票

			// WebSocket 連接（即時統計結果）
			proposals.GET("/:id/ws", wsHandler.HandleWebSocket)
		}

		// 改票
		authorized.PUT("/votes/:id", voteHandler.ChangeVote)
	}
}
