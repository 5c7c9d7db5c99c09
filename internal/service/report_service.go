// Package service orchestrates the core pieces: OCR ingestion, text
// extraction, tip distribution, and persistence of edited reports.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itswalshy/sbux.tipjar/internal/calculator"
	"github.com/itswalshy/sbux.tipjar/internal/extractor"
	"github.com/itswalshy/sbux.tipjar/internal/models"
	"github.com/itswalshy/sbux.tipjar/internal/ocr"
	"github.com/itswalshy/sbux.tipjar/internal/storage"
)

var (
	// ErrForbidden is returned when a report exists but belongs to another
	// user.
	ErrForbidden = errors.New("report does not belong to this user")

	// ErrNoEngine is returned when an image upload arrives but no OCR
	// engine was configured at startup.
	ErrNoEngine = errors.New("no OCR engine configured")
)

var (
	reportsExtracted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipjar_reports_extracted_total",
		Help: "Reports run through the extractor.",
	})
	partnerRowsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipjar_partner_rows_parsed_total",
		Help: "Partner rows recovered by the extractor.",
	})
	distributionsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipjar_distributions_computed_total",
		Help: "Tip distribution runs.",
	})
)

// ReportService wires the extractor and calculator to the OCR boundary and
// the store. The extractor and calculator themselves stay pure; all I/O and
// state lives here.
type ReportService struct {
	store  storage.Store
	engine ocr.Engine
}

// NewReportService creates a ReportService. engine may be nil when the
// deployment has no OCR provider; image uploads then fail with ErrNoEngine
// while pasted-text extraction keeps working.
func NewReportService(store storage.Store, engine ocr.Engine) *ReportService {
	return &ReportService{store: store, engine: engine}
}

// ExtractText converts pasted report text into a structured report.
func (s *ReportService) ExtractText(text string) *models.ParsedReport {
	report := extractor.Extract(text)
	reportsExtracted.Inc()
	partnerRowsParsed.Add(float64(len(report.Partners)))
	slog.Debug("Extracted report",
		"partners", len(report.Partners),
		"warnings", len(report.Warnings),
		"store_number", report.StoreNumber,
	)
	return report
}

// IngestImage sends an uploaded document image through OCR and extracts the
// resulting transcript. One in-flight request per submission, no retry; OCR
// failures are the only error path, extraction itself cannot fail.
func (s *ReportService) IngestImage(ctx context.Context, image []byte) (*models.ParsedReport, error) {
	if s.engine == nil {
		return nil, ErrNoEngine
	}

	result, err := s.engine.Recognize(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("ocr recognize: %w", err)
	}
	slog.Info("OCR completed", "engine", s.engine.Name(), "words", len(result.Words), "chars", len(result.Text))

	report := s.ExtractText(result.Text)
	report.Confidence = ocr.MeanConfidence(result.Words)
	return report, nil
}

// Distribute runs the allocation engine over the given partners. mode is the
// raw token from the caller; an unknown token fails fast.
func (s *ReportService) Distribute(partners []models.Partner, totalPool float64, mode string, totalHoursOverride *float64) (*models.DistributeResult, error) {
	roundingMode, err := models.ParseRoundingMode(mode)
	if err != nil {
		return nil, err
	}
	result, err := calculator.Distribute(partners, totalPool, roundingMode, totalHoursOverride)
	if err != nil {
		return nil, err
	}
	distributionsComputed.Inc()
	return result, nil
}

// CreateReport saves an edited report for the given owner.
func (s *ReportService) CreateReport(ctx context.Context, ownerID string, report *models.Report) error {
	report.OwnerID = ownerID
	normalize(report)
	if _, err := models.ParseRoundingMode(string(report.RoundingMode)); err != nil {
		return err
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		slog.Error("CreateReport failed", "owner_id", ownerID, "error", err)
		return err
	}
	return nil
}

// GetReport retrieves one of the owner's reports.
func (s *ReportService) GetReport(ctx context.Context, ownerID, reportID string) (*models.Report, error) {
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return report, nil
}

// UpdateReport replaces one of the owner's reports.
func (s *ReportService) UpdateReport(ctx context.Context, ownerID string, report *models.Report) error {
	existing, err := s.store.GetReport(ctx, report.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	report.OwnerID = ownerID
	normalize(report)
	if _, err := models.ParseRoundingMode(string(report.RoundingMode)); err != nil {
		return err
	}
	if err := s.store.UpdateReport(ctx, report); err != nil {
		slog.Error("UpdateReport failed", "report_id", report.ID, "error", err)
		return err
	}
	return nil
}

// DeleteReport removes one of the owner's reports.
func (s *ReportService) DeleteReport(ctx context.Context, ownerID, reportID string) error {
	existing, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		return err
	}
	if existing.OwnerID != ownerID {
		return ErrForbidden
	}
	return s.store.DeleteReport(ctx, reportID)
}

// ListReports returns the owner's saved reports, newest first.
func (s *ReportService) ListReports(ctx context.Context, ownerID string) ([]*models.Report, error) {
	return s.store.ListReportsByOwner(ctx, ownerID)
}

// normalize keeps the stored shape consistent with the extractor contract:
// slices non-nil, default rounding mode filled in.
func normalize(report *models.Report) {
	if report.Partners == nil {
		report.Partners = []models.Partner{}
	}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	if report.RoundingMode == "" {
		report.RoundingMode = models.RoundNone
	}
}
