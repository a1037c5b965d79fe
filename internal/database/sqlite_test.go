package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credcheck/claimscope/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func historyEntry(i int) models.HistoryEntry {
	return models.HistoryEntry{
		ID:             fmt.Sprintf("id-%d", i),
		Timestamp:      time.Now().UTC(),
		Domain:         "example.com",
		Score:          i % 101,
		Recommendation: models.LevelUncertain,
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := models.HistoryEntry{
		ID:             "abc-123",
		Timestamp:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Domain:         "reuters.com",
		Score:          82,
		Recommendation: models.LevelCredible,
	}
	require.NoError(t, store.AppendHistory(ctx, entry))

	got, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc-123", got[0].ID)
	assert.Equal(t, "reuters.com", got[0].Domain)
	assert.Equal(t, 82, got[0].Score)
	assert.Equal(t, models.LevelCredible, got[0].Recommendation)
	assert.Nil(t, got[0].Full)
}

func TestHistory_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.AppendHistory(ctx, historyEntry(i)))
	}

	got, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "id-4", got[0].ID)
	assert.Equal(t, "id-0", got[4].ID)
}

func TestHistory_TrimsToCap(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < HistoryCap+20; i++ {
		require.NoError(t, store.AppendHistory(ctx, historyEntry(i)))
	}

	got, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, HistoryCap)

	// Newest survive, oldest are evicted.
	assert.Equal(t, fmt.Sprintf("id-%d", HistoryCap+19), got[0].ID)
	assert.Equal(t, "id-20", got[len(got)-1].ID)
}

func TestHistory_FullAnalysisRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	full := &models.ClaimAnalysis{
		ID:        "full-1",
		ClaimText: "some claim",
		Domain:    "example.com",
		Scores:    models.Scores{Overall: 64},
		Flags: []models.Flag{
			{Type: "sensational-language", Severity: models.SeverityMedium, Message: "m"},
		},
	}
	entry := historyEntry(0)
	entry.ID = "full-1"
	entry.Full = full
	require.NoError(t, store.AppendHistory(ctx, entry))

	got, err := store.GetHistory(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Full)
	assert.Equal(t, "some claim", got[0].Full.ClaimText)
	assert.Equal(t, 64, got[0].Full.Scores.Overall)
	require.Len(t, got[0].Full.Flags, 1)
	assert.Equal(t, "sensational-language", got[0].Full.Flags[0].Type)
}

func TestReports_RoundTripAndTotal(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := models.UserReport{
		ClaimID:     "claim-1",
		ClaimText:   "the sky is green",
		Domain:      "example.com",
		Score:       40,
		UserVerdict: false,
		PageURL:     "https://example.com/p",
		Timestamp:   time.Now().UTC(),
	}

	total, err := store.AppendReport(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	report.ClaimID = "claim-2"
	report.UserVerdict = true
	total, err = store.AppendReport(ctx, report)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	got, err := store.GetReports(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "claim-2", got[0].ClaimID)
	assert.True(t, got[0].UserVerdict)
	assert.Equal(t, "claim-1", got[1].ClaimID)
	assert.False(t, got[1].UserVerdict)
}

func TestReports_TruncatesClaimText(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := models.UserReport{
		ClaimID:   "claim-1",
		ClaimText: strings.Repeat("x", models.MaxReportClaimLen+50),
		Timestamp: time.Now().UTC(),
	}
	_, err := store.AppendReport(ctx, report)
	require.NoError(t, err)

	got, err := store.GetReports(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].ClaimText, models.MaxReportClaimLen)
}

func TestClearAll(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AppendHistory(ctx, historyEntry(0)))
	_, err := store.AppendReport(ctx, models.UserReport{ClaimID: "c", Timestamp: time.Now().UTC()})
	require.NoError(t, err)

	require.NoError(t, store.ClearAll(ctx))

	history, err := store.GetHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	reports, err := store.GetReports(ctx)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate())
	require.NoError(t, store.Migrate())
}
