// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/itswalshy/sbux.tipjar/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for report and user persistence. The
// abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateReport persists a new report and populates its ID and
	// timestamps.
	CreateReport(ctx context.Context, report *models.Report) error

	// GetReport retrieves a report with its partner rows and warnings.
	GetReport(ctx context.Context, reportID string) (*models.Report, error)

	// UpdateReport replaces an existing report's contents, including its
	// partner rows. Returns ErrNotFound if the report does not exist.
	UpdateReport(ctx context.Context, report *models.Report) error

	// DeleteReport removes a report. Returns ErrNotFound if it does not
	// exist.
	DeleteReport(ctx context.Context, reportID string) error

	// ListReportsByOwner returns all of a user's reports, newest first.
	ListReportsByOwner(ctx context.Context, ownerID string) ([]*models.Report, error)

	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
