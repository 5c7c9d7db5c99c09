package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/itswalshy/sbux.tipjar/internal/models"
	"github.com/itswalshy/sbux.tipjar/internal/storage"
)

// CreateReport persists a new report with its partner rows and warnings.
func (s *SQLiteStore) CreateReport(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if report.CreatedAt == 0 {
		report.CreatedAt = now
	}
	report.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reports (id, owner_id, store_number, time_period, total_tippable_hours,
		 confidence, total_pool, rounding_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.OwnerID, report.StoreNumber, report.TimePeriod,
		report.TotalTippableHours, report.Confidence, report.TotalPool,
		string(report.RoundingMode), report.CreatedAt, report.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	if err := insertRows(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReport retrieves a report by ID, including partner rows and warnings.
func (s *SQLiteStore) GetReport(ctx context.Context, reportID string) (*models.Report, error) {
	report := &models.Report{}
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, owner_id, store_number, time_period, total_tippable_hours,
		 confidence, total_pool, rounding_mode, created_at, updated_at
		 FROM reports WHERE id = ?`,
		reportID,
	).Scan(&report.ID, &report.OwnerID, &report.StoreNumber, &report.TimePeriod,
		&report.TotalTippableHours, &report.Confidence, &report.TotalPool,
		&mode, &report.CreatedAt, &report.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	report.RoundingMode = models.RoundingMode(mode)

	if err := s.loadRows(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

// UpdateReport replaces a report's contents. Partner rows and warnings are
// rewritten wholesale; they have no identity of their own.
func (s *SQLiteStore) UpdateReport(ctx context.Context, report *models.Report) error {
	report.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE reports SET store_number = ?, time_period = ?, total_tippable_hours = ?,
		 confidence = ?, total_pool = ?, rounding_mode = ?, updated_at = ?
		 WHERE id = ?`,
		report.StoreNumber, report.TimePeriod, report.TotalTippableHours,
		report.Confidence, report.TotalPool, string(report.RoundingMode),
		report.UpdatedAt, report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM report_partners WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("failed to clear partners: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM report_warnings WHERE report_id = ?", report.ID); err != nil {
		return fmt.Errorf("failed to clear warnings: %w", err)
	}
	if err := insertRows(ctx, tx, report); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteReport removes a report and its dependent rows.
func (s *SQLiteStore) DeleteReport(ctx context.Context, reportID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", reportID)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListReportsByOwner returns a user's reports, newest first.
func (s *SQLiteStore) ListReportsByOwner(ctx context.Context, ownerID string) ([]*models.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM reports WHERE owner_id = ? ORDER BY updated_at DESC, id",
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan report id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	reports := make([]*models.Report, 0, len(ids))
	for _, id := range ids {
		report, err := s.GetReport(ctx, id)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// insertRows writes partner rows and warnings for a report inside tx. Row
// position preserves the order of appearance, which must round-trip.
func insertRows(ctx context.Context, tx *sql.Tx, report *models.Report) error {
	for i, p := range report.Partners {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO report_partners (report_id, position, partner_number, name, partner_global_id, hours)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			report.ID, i, p.PartnerNumber, p.Name, p.PartnerGlobalID, p.Hours,
		)
		if err != nil {
			return fmt.Errorf("failed to insert partner row: %w", err)
		}
	}
	for i, w := range report.Warnings {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO report_warnings (report_id, position, message) VALUES (?, ?, ?)",
			report.ID, i, w,
		)
		if err != nil {
			return fmt.Errorf("failed to insert warning: %w", err)
		}
	}
	return nil
}

// loadRows populates Partners and Warnings in stored order. Both slices stay
// non-nil so the wire shape never carries null.
func (s *SQLiteStore) loadRows(ctx context.Context, report *models.Report) error {
	report.Partners = []models.Partner{}
	report.Warnings = []string{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT partner_number, name, partner_global_id, hours
		 FROM report_partners WHERE report_id = ? ORDER BY position`,
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get partners: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Partner
		if err := rows.Scan(&p.PartnerNumber, &p.Name, &p.PartnerGlobalID, &p.Hours); err != nil {
			return fmt.Errorf("failed to scan partner: %w", err)
		}
		report.Partners = append(report.Partners, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate partners: %w", err)
	}

	warnRows, err := s.db.QueryContext(ctx,
		"SELECT message FROM report_warnings WHERE report_id = ? ORDER BY position",
		report.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get warnings: %w", err)
	}
	defer warnRows.Close()

	for warnRows.Next() {
		var msg string
		if err := warnRows.Scan(&msg); err != nil {
			return fmt.Errorf("failed to scan warning: %w", err)
		}
		report.Warnings = append(report.Warnings, msg)
	}
	if err := warnRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate warnings: %w", err)
	}
	return nil
}
