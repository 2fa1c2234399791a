package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/soundbridge/soundbridge-backend/services"
)

// ExportHandler handles admin export HTTP requests
type ExportHandler struct {
	exportService *services.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportLedger handles GET /admin/ledger/export
func (h *ExportHandler) ExportLedger(c *gin.Context) {
	excelFile, filename, err := h.exportService.ExportLedgerToExcel()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export ledger: " + err.Error()})
		return
	}

	// Set headers for file download
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Header("Content-Transfer-Encoding", "binary")

	if err := excelFile.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file: " + err.Error()})
		return
	}
}
