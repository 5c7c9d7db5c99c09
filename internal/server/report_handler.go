package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/itswalshy/sbux.tipjar/internal/middleware"
	"github.com/itswalshy/sbux.tipjar/internal/models"
	"github.com/itswalshy/sbux.tipjar/internal/service"
	"github.com/itswalshy/sbux.tipjar/internal/storage"
)

// maxUploadBytes bounds an uploaded report image. Reports are single pages;
// anything larger is not a report photo.
const maxUploadBytes = 20 << 20

// ReportHandler serves extraction, distribution, and saved-report routes.
type ReportHandler struct {
	reports *service.ReportService
}

// NewReportHandler creates a ReportHandler backed by the given service.
func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type extractRequest struct {
	Text string `json:"text"`
}

// Extract converts pasted report text into a ParsedReport. Malformed text is
// not an error; it yields an empty report with warnings.
func (h *ReportHandler) Extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	c.JSON(http.StatusOK, h.reports.ExtractText(req.Text))
}

// Upload accepts a multipart document image, runs it through OCR, and returns
// the extracted ParsedReport with its mean word confidence.
func (h *ReportHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart field 'file' required"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	image, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	report, err := h.reports.IngestImage(c.Request.Context(), image)
	if err != nil {
		if errors.Is(err, service.ErrNoEngine) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		slog.Error("Upload OCR failed", "filename", file.Filename, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "ocr failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}

type distributeRequest struct {
	Partners           []models.Partner `json:"partners"`
	TotalPool          float64          `json:"total_pool"`
	RoundingMode       string           `json:"rounding_mode"`
	TotalHoursOverride *float64         `json:"total_hours_override,omitempty"`
}

// Distribute runs the allocation engine. The only client error is an unknown
// rounding mode; a zero hours basis degrades to zero payouts instead.
func (h *ReportHandler) Distribute(c *gin.Context) {
	var req distributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.RoundingMode == "" {
		req.RoundingMode = string(models.RoundNone)
	}

	result, err := h.reports.Distribute(req.Partners, req.TotalPool, req.RoundingMode, req.TotalHoursOverride)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create saves an edited report for the authenticated user.
func (h *ReportHandler) Create(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	report.ID = ""

	if err := h.reports.CreateReport(c.Request.Context(), middleware.GetUserID(c), &report); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// Get returns one of the user's saved reports.
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.reports.GetReport(c.Request.Context(), middleware.GetUserID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Update replaces one of the user's saved reports.
func (h *ReportHandler) Update(c *gin.Context) {
	var report models.Report
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	report.ID = c.Param("id")

	if err := h.reports.UpdateReport(c.Request.Context(), middleware.GetUserID(c), &report); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Delete removes one of the user's saved reports.
func (h *ReportHandler) Delete(c *gin.Context) {
	if err := h.reports.DeleteReport(c.Request.Context(), middleware.GetUserID(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// List returns the user's saved reports, newest first.
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.reports.ListReports(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if reports == nil {
		reports = []*models.Report{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// writeServiceError maps service errors onto HTTP statuses.
func (h *ReportHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrUnknownRoundingMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("Report operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
