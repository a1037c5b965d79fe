// Package database provides the data access layer for analysis history and
// user reports.
package database

import (
	"context"

	"github.com/credcheck/claimscope/internal/models"
)

// Capacity limits for the bounded, append-to-front lists. Oldest entries
// are evicted at the tail when a cap is exceeded.
const (
	HistoryCap = 100
	ReportsCap = 500
)

// Store defines the interface for persisting analysis summaries and user
// feedback. Implementations must serialize concurrent writes so that
// trimming to the cap never loses entries.
type Store interface {
	// History
	AppendHistory(ctx context.Context, entry models.HistoryEntry) error
	GetHistory(ctx context.Context) ([]models.HistoryEntry, error)

	// Reports
	AppendReport(ctx context.Context, report models.UserReport) (total int, err error)
	GetReports(ctx context.Context) ([]models.UserReport, error)

	// ClearAll removes all history entries and reports.
	ClearAll(ctx context.Context) error

	// Lifecycle
	Close() error
	Migrate() error
}
