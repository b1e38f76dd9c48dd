package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meliview/meli_api/internal/cache"
	"github.com/meliview/meli_api/internal/models"
	"github.com/meliview/meli_api/internal/service"
	"github.com/meliview/meli_api/internal/utils"
)

// ProductHandler serves projections of previously fetched records.
// All projections are read from the history; a fresh fetch goes through
// the lookup endpoint.
type ProductHandler struct {
	history *cache.HistoryCache
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(history *cache.HistoryCache) *ProductHandler {
	return &ProductHandler{history: history}
}

// GetSimplified returns the reduced field subset of a record.
func (h *ProductHandler) GetSimplified(c *gin.Context) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", service.Simplified(rec))
}

// GetFull returns the deep structured document without the shipping section.
func (h *ProductHandler) GetFull(c *gin.Context) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", service.Full(rec, false))
}

// GetFullShipping returns the deep structured document including the derived
// fulfillment classification.
func (h *ProductHandler) GetFullShipping(c *gin.Context) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	utils.Success(c, 200, "Product retrieved successfully", service.Full(rec, true))
}

// GetRaw returns the unmodified marketplace payload. With ?download=true the
// response is served as an attachment.
func (h *ProductHandler) GetRaw(c *gin.Context) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename(rec, "json")))
	}
	c.Data(200, "application/json; charset=utf-8", rec.RawPayload)
}

// GetCSV returns the two-column table of core scalar fields.
func (h *ProductHandler) GetCSV(c *gin.Context) {
	h.serveCSV(c, service.CSVOptions{})
}

// GetCSVAttributes returns the table extended with per-attribute and
// per-image rows.
func (h *ProductHandler) GetCSVAttributes(c *gin.Context) {
	h.serveCSV(c, service.CSVOptions{WithAttributes: true})
}

// GetCSVShipping returns the table extended with shipping classification rows.
func (h *ProductHandler) GetCSVShipping(c *gin.Context) {
	h.serveCSV(c, service.CSVOptions{WithShipping: true})
}

func (h *ProductHandler) serveCSV(c *gin.Context, opts service.CSVOptions) {
	rec, ok := h.record(c)
	if !ok {
		return
	}
	out, err := service.CSV(rec, opts)
	if err != nil {
		utils.Error(c, 500, "CSV_ERROR", "Failed to render CSV")
		return
	}
	if c.Query("download") == "true" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exportFilename(rec, "csv")))
	}
	c.Data(200, "text/csv; charset=utf-8", []byte(out))
}

// record resolves the :code parameter against the history, writing a 404
// when the product was never fetched (or already evicted).
func (h *ProductHandler) record(c *gin.Context) (models.ProductRecord, bool) {
	code := service.NormalizeCode(c.Param("code"))
	rec, ok := h.history.Lookup(code)
	if !ok {
		utils.Error(c, 404, "NOT_IN_HISTORY", "Product not found in history")
		return models.ProductRecord{}, false
	}
	return rec, true
}

func exportFilename(rec models.ProductRecord, ext string) string {
	return fmt.Sprintf("%s_%s.%s", rec.ID, time.Now().Format("20060102_150405"), ext)
}
