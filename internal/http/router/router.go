package router

import (
	"github.com/gin-gonic/gin"

	"traqhook.app/relay/internal/http/handler/webhook"
)

func SetupRoutes(router *gin.Engine, githubHandler *webhook.GitHubWebhookHandler) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.POST("/webhooks/github", githubHandler.HandleEvent)
}
