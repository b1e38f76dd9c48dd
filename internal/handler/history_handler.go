package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/utils"
)

// HistoryHandler exposes the lookup history.
type HistoryHandler struct {
	history *cache.HistoryCache
}

// NewHistoryHandler constructs a HistoryHandler.
func NewHistoryHandler(history *cache.HistoryCache) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GetHistory returns the full history, most recently fetched first.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	records := h.history.All()
	utils.Success(c, 200, "History retrieved successfully", gin.H{
		"total":    len(records),
		"products": records,
	})
}

// ClearHistory empties the history unconditionally.
func (h *HistoryHandler) ClearHistory(c *gin.Context) {
	h.history.Clear()
	utils.Success(c, 200, "History cleared successfully", nil)
}
