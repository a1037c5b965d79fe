// Package database provides SQLite implementation of the Store interface.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/credcheck/claimscope/internal/models"
)

// SQLiteStore implements Store using SQLite. A write mutex enforces the
// single-writer discipline the bounded lists need: insert and trim run in
// one transaction with no interleaved writers.
type SQLiteStore struct {
	db      *sql.DB
	writeMu sync.Mutex
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS history (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL,
			timestamp DATETIME NOT NULL,
			domain TEXT NOT NULL,
			score INTEGER NOT NULL,
			recommendation TEXT NOT NULL,
			full_analysis TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS reports (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			claim_id TEXT NOT NULL,
			claim_text TEXT NOT NULL,
			domain TEXT NOT NULL,
			score INTEGER NOT NULL,
			user_verdict INTEGER NOT NULL,
			page_url TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// AppendHistory stores a history entry and evicts the oldest entries
// beyond the cap.
func (s *SQLiteStore) AppendHistory(ctx context.Context, entry models.HistoryEntry) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var fullJSON sql.NullString
	if entry.Full != nil {
		data, err := json.Marshal(entry.Full)
		if err != nil {
			return fmt.Errorf("failed to encode analysis: %w", err)
		}
		fullJSON = sql.NullString{String: string(data), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, domain, score, recommendation, full_analysis)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, entry.Domain, entry.Score, string(entry.Recommendation), fullJSON,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM history WHERE seq NOT IN (
			SELECT seq FROM history ORDER BY seq DESC LIMIT ?
		)`, HistoryCap)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetHistory returns history entries, newest first.
func (s *SQLiteStore) GetHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, domain, score, recommendation, full_analysis
		FROM history ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var entry models.HistoryEntry
		var recommendation string
		var fullJSON sql.NullString
		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Domain, &entry.Score, &recommendation, &fullJSON); err != nil {
			return nil, err
		}
		entry.Recommendation = models.RecommendationLevel(recommendation)
		if fullJSON.Valid {
			var full models.ClaimAnalysis
			if err := json.Unmarshal([]byte(fullJSON.String), &full); err == nil {
				entry.Full = &full
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AppendReport stores a user report, evicts beyond the cap, and returns
// the stored total.
func (s *SQLiteStore) AppendReport(ctx context.Context, report models.UserReport) (int, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	verdict := 0
	if report.UserVerdict {
		verdict = 1
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO reports (claim_id, claim_text, domain, score, user_verdict, page_url, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.ClaimID, models.Truncate(report.ClaimText, models.MaxReportClaimLen),
		report.Domain, report.Score, verdict, report.PageURL, report.Timestamp,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM reports WHERE seq NOT IN (
			SELECT seq FROM reports ORDER BY seq DESC LIMIT ?
		)`, ReportsCap)
	if err != nil {
		return 0, err
	}

	var total int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM reports`).Scan(&total); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

// GetReports returns user reports, newest first.
func (s *SQLiteStore) GetReports(ctx context.Context) ([]models.UserReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT claim_id, claim_text, domain, score, user_verdict, page_url, timestamp
		FROM reports ORDER BY seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []models.UserReport
	for rows.Next() {
		var report models.UserReport
		var verdict int
		if err := rows.Scan(&report.ClaimID, &report.ClaimText, &report.Domain, &report.Score, &verdict, &report.PageURL, &report.Timestamp); err != nil {
			return nil, err
		}
		report.UserVerdict = verdict == 1
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

// ClearAll removes all history and reports.
func (s *SQLiteStore) ClearAll(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM reports`); err != nil {
		return err
	}
	return tx.Commit()
}
