package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/itswalshy/sbux.tipjar/internal/models"
	"github.com/itswalshy/sbux.tipjar/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "tipjar-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	owner := models.NewUser("alex@example.com", "Alex", "hash")
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	t.Run("CreateReport generates ID and timestamps", func(t *testing.T) {
		report := newTestReport(owner.ID)

		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
		if report.ID == "" {
			t.Error("Expected report ID to be generated")
		}
		if report.CreatedAt == 0 || report.UpdatedAt == 0 {
			t.Error("Expected timestamps to be set")
		}
	})

	t.Run("GetReport round-trips partners in order", func(t *testing.T) {
		report := newTestReport(owner.ID)
		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		got, err := store.GetReport(ctx, report.ID)
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if len(got.Partners) != 2 {
			t.Fatalf("partners = %d, want 2", len(got.Partners))
		}
		if got.Partners[0].Name != "Smith, Alex J" || got.Partners[1].Name != "Doe, Jamie" {
			t.Errorf("partner order not preserved: %+v", got.Partners)
		}
		if got.TotalTippableHours == nil || *got.TotalTippableHours != 55.45 {
			t.Errorf("total_tippable_hours = %v, want 55.45", got.TotalTippableHours)
		}
		if got.RoundingMode != models.RoundQuarter {
			t.Errorf("rounding_mode = %q, want quarter", got.RoundingMode)
		}
		if got.Warnings == nil {
			t.Error("warnings must be non-nil after load")
		}
		if got.OwnerID != owner.ID {
			t.Errorf("owner_id = %q, want %q", got.OwnerID, owner.ID)
		}
	})

	t.Run("GetReport preserves nil confidence", func(t *testing.T) {
		report := newTestReport(owner.ID)
		report.Confidence = nil
		report.TotalTippableHours = nil
		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		got, err := store.GetReport(ctx, report.ID)
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if got.Confidence != nil {
			t.Errorf("confidence = %v, want nil", *got.Confidence)
		}
		if got.TotalTippableHours != nil {
			t.Errorf("total_tippable_hours = %v, want nil", *got.TotalTippableHours)
		}
	})

	t.Run("UpdateReport rewrites partner rows", func(t *testing.T) {
		report := newTestReport(owner.ID)
		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		report.Partners = []models.Partner{
			{PartnerNumber: "99999", Name: "New, Partner", PartnerGlobalID: "US55555555", Hours: 12},
		}
		report.TotalPool = 250
		report.RoundingMode = models.RoundDollar
		if err := store.UpdateReport(ctx, report); err != nil {
			t.Fatalf("UpdateReport failed: %v", err)
		}

		got, err := store.GetReport(ctx, report.ID)
		if err != nil {
			t.Fatalf("GetReport failed: %v", err)
		}
		if len(got.Partners) != 1 || got.Partners[0].Name != "New, Partner" {
			t.Errorf("partners = %+v, want replaced row", got.Partners)
		}
		if got.TotalPool != 250 || got.RoundingMode != models.RoundDollar {
			t.Errorf("pool/mode = %v/%q, want 250/dollar", got.TotalPool, got.RoundingMode)
		}
	})

	t.Run("UpdateReport on missing report returns ErrNotFound", func(t *testing.T) {
		report := newTestReport(owner.ID)
		report.ID = "missing"
		if err := store.UpdateReport(ctx, report); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("UpdateReport err = %v, want ErrNotFound", err)
		}
	})

	t.Run("DeleteReport removes report and rows", func(t *testing.T) {
		report := newTestReport(owner.ID)
		if err := store.CreateReport(ctx, report); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
		if err := store.DeleteReport(ctx, report.ID); err != nil {
			t.Fatalf("DeleteReport failed: %v", err)
		}
		if _, err := store.GetReport(ctx, report.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("GetReport after delete err = %v, want ErrNotFound", err)
		}
		if err := store.DeleteReport(ctx, report.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second DeleteReport err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ListReportsByOwner scopes to owner", func(t *testing.T) {
		other := models.NewUser("jamie@example.com", "Jamie", "hash")
		if err := store.CreateUser(ctx, other); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		otherReport := newTestReport(other.ID)
		if err := store.CreateReport(ctx, otherReport); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}

		reports, err := store.ListReportsByOwner(ctx, other.ID)
		if err != nil {
			t.Fatalf("ListReportsByOwner failed: %v", err)
		}
		if len(reports) != 1 {
			t.Fatalf("reports = %d, want 1", len(reports))
		}
		if reports[0].ID != otherReport.ID {
			t.Errorf("report ID = %q, want %q", reports[0].ID, otherReport.ID)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := models.NewUser("alex@example.com", "Other Alex", "hash2")
		if err := store.CreateUser(ctx, dup); err == nil {
			t.Error("expected duplicate email insert to fail")
		}
	})

	t.Run("GetUserByEmail", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "alex@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail failed: %v", err)
		}
		if got.ID != owner.ID {
			t.Errorf("user ID = %q, want %q", got.ID, owner.ID)
		}
		if _, err := store.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("missing user err = %v, want ErrNotFound", err)
		}
	})
}

func newTestReport(ownerID string) *models.Report {
	total := 55.45
	conf := 0.94
	return &models.Report{
		OwnerID: ownerID,
		ParsedReport: models.ParsedReport{
			StoreNumber:        "12345",
			TimePeriod:         "6/1/2026–6/14/2026",
			TotalTippableHours: &total,
			Confidence:         &conf,
			Partners: []models.Partner{
				{PartnerNumber: "12345", Name: "Smith, Alex J", PartnerGlobalID: "US98765432", Hours: 31.45},
				{PartnerNumber: "67890", Name: "Doe, Jamie", PartnerGlobalID: "US12345678", Hours: 24},
			},
			Warnings: []string{},
		},
		TotalPool:    100,
		RoundingMode: models.RoundQuarter,
	}
}
