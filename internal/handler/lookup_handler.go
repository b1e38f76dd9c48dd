package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/meliview/meli_api/internal/service"
	"github.com/meliview/meli_api/internal/utils"
)

// LookupHandler handles product lookup requests.
type LookupHandler struct {
	lookupService *service.LookupService
}

// NewLookupHandler constructs a LookupHandler.
func NewLookupHandler(lookupService *service.LookupService) *LookupHandler {
	return &LookupHandler{lookupService: lookupService}
}

type lookupRequest struct {
	Code string `json:"mlb_code" binding:"required"`
}

// Lookup fetches a product by its MLB code, records it in the history and
// returns the simplified view.
func (h *LookupHandler) Lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, string(service.ErrorKindInput), "MLB code is required")
		return
	}

	record, lerr := h.lookupService.Lookup(c.Request.Context(), req.Code)
	if lerr != nil {
		status, message := httpStatusFor(lerr)
		utils.Error(c, status, string(lerr.Kind), message)
		return
	}

	utils.Success(c, 200, "Product retrieved successfully", service.Simplified(record))
}

// httpStatusFor maps a lookup error kind to the outward HTTP status and
// message. The mapping is a handler concern; the service only classifies.
func httpStatusFor(err *service.LookupError) (int, string) {
	switch err.Kind {
	case service.ErrorKindInput:
		return 400, "MLB code is required"
	case service.ErrorKindNotFound:
		return 404, "Product not found"
	case service.ErrorKindAccessDenied:
		return 403, "Access denied by the marketplace API - check credentials"
	case service.ErrorKindUpstream:
		return 502, fmt.Sprintf("Marketplace API returned status %d", err.Status)
	case service.ErrorKindTimeout:
		return 504, "Marketplace API request timed out"
	case service.ErrorKindConnection:
		return 502, "Could not reach the marketplace API"
	default:
		return 500, "Unexpected error during lookup"
	}
}
