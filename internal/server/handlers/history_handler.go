package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/service/history"
	"github.com/mamadbah2/railtools/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HistoryHandler serves the saved calculations and their reports.
type HistoryHandler struct {
	history   *history.Service
	reporting *reporting.Service
	logger    *zap.Logger
}

// NewHistoryHandler constructs the HTTP handler adapter.
func NewHistoryHandler(historySvc *history.Service, reportingSvc *reporting.Service, logger *zap.Logger) *HistoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryHandler{history: historySvc, reporting: reportingSvc, logger: logger}
}

// List returns the history, newest first.
func (h *HistoryHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.history.List())
}

// Clear wipes the history.
func (h *HistoryHandler) Clear(c *gin.Context) {
	h.history.Clear(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// Summary returns the per-theme overview.
func (h *HistoryHandler) Summary(c *gin.Context) {
	c.JSON(http.StatusOK, h.reporting.Summarize())
}

// ExportWorkbook streams the history and stock as an XLSX file.
func (h *HistoryHandler) ExportWorkbook(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reporting.WriteWorkbook(&buf); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="railtools.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSheets triggers a Google Sheets export outside the schedule.
func (h *HistoryHandler) ExportSheets(c *gin.Context) {
	if !h.reporting.SheetsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "google sheets export is not configured"})
		return
	}
	result, err := h.reporting.ExportToSheets(c.Request.Context())
	if err != nil {
		h.logger.Error("manual sheets export failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sheets export failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
