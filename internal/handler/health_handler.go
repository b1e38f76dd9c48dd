package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meliview/meli_api/internal/utils"
	"github.com/meliview/meli_api/pkg/meli"
)

var startTime = time.Now()

// HealthHandler provides the health endpoint.
type HealthHandler struct {
	client *meli.Client
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(client *meli.Client) *HealthHandler {
	return &HealthHandler{client: client}
}

// GetHealth responds with service status and uptime.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"version": "1.0.0",
		"uptime":  int(time.Since(startTime).Seconds()),
		"meli": gin.H{
			"credentials_configured": h.client.HasCredentials(),
			"authenticated":          h.client.Tokens().HasToken(),
		},
	})
}
