package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mingyue-ai/agenthub/internal/handler"
	"github.com/mingyue-ai/agenthub/internal/middleware"
	"github.com/mingyue-ai/agenthub/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services, rdb *redis.Client) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RateLimitMiddleware(rdb, svc.Config.RateLimit))
	{
		// Auth 认证
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.GET("/me", middleware.RequireAuth(svc), h.Auth.Me)
		}

		// 以下路由都要求认证
		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(svc))

		// Agent 智能体
		agents := authed.Group("/agents")
		{
			agents.POST("", h.Agent.CreateAgent)
			agents.GET("", h.Agent.ListAgents)
			agents.GET("/:id", h.Agent.GetAgent)
			agents.PUT("/:id", h.Agent.UpdateAgent)
			agents.DELETE("/:id", h.Agent.DeleteAgent)

			// Prompt 提示词
			agents.GET("/:id/prompt", h.Prompt.GetPrompt)
			agents.PUT("/:id/prompt", h.Prompt.CreateOrUpdatePrompt)

			// File 参考文档
			agents.POST("/:id/files", h.File.UploadFile)
			agents.GET("/:id/files", h.File.ListFiles)
			agents.GET("/:id/files/:fileId", h.File.GetFile)
			agents.DELETE("/:id/files/:fileId", h.File.DeleteFile)

			// Chat 对话
			agents.POST("/:id/chat", h.Chat.SendMessage)
			agents.GET("/:id/chat/history", h.Chat.GetHistory)
		}
	}

	return r
}
