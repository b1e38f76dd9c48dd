package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/meliview/meli_api/internal/config"
	"github.com/meliview/meli_api/internal/utils"
	"github.com/meliview/meli_api/pkg/meli"
)

// StatusHandler reports credential configuration and token state.
// Read-only: probing never triggers a token acquisition.
type StatusHandler struct {
	cfg    *config.Config
	client *meli.Client
}

// NewStatusHandler constructs a StatusHandler.
func NewStatusHandler(cfg *config.Config, client *meli.Client) *StatusHandler {
	return &StatusHandler{cfg: cfg, client: client}
}

// GetStatus returns which credentials are configured and whether an access
// token is currently held.
func (h *StatusHandler) GetStatus(c *gin.Context) {
	utils.Success(c, 200, "Configuration status", gin.H{
		"client_id_configured":     h.cfg.Meli.ClientID != "",
		"client_secret_configured": h.cfg.Meli.ClientSecret != "",
		"refresh_token_configured": h.cfg.Meli.RefreshToken != "",
		"static_token_configured":  h.cfg.Meli.AccessToken != "",
		"has_access_token":         h.client.Tokens().HasToken(),
		"api_url":                  h.cfg.Meli.BaseURL,
		"max_history":              h.cfg.MaxHistory,
	})
}
