// Package analyzer provides the claim analysis orchestrator.
package analyzer

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/credcheck/claimscope/internal/adapters"
	"github.com/credcheck/claimscope/internal/database"
	"github.com/credcheck/claimscope/internal/domaintrust"
	"github.com/credcheck/claimscope/internal/evidence"
	"github.com/credcheck/claimscope/internal/facts"
	"github.com/credcheck/claimscope/internal/heuristics"
	"github.com/credcheck/claimscope/internal/models"
)

// StructuredFactClient resolves structured queries for a claim.
type StructuredFactClient interface {
	Lookup(ctx context.Context, claimText string) models.StructuredFactResult
}

// AggregatorClient searches published fact-checks for a claim.
type AggregatorClient interface {
	Search(ctx context.Context, claimText string) models.AggregatorResult
}

// WorthinessClient scores how check-worthy a claim is.
type WorthinessClient interface {
	Score(ctx context.Context, claimText string) models.CheckWorthinessResult
}

// Engine orchestrates the scoring components into a single analysis. Any
// of the external clients and the store may be nil; a nil collaborator is
// treated as permanently unavailable.
type Engine struct {
	structured  StructuredFactClient
	aggregator  AggregatorClient
	worthiness  WorthinessClient
	store       database.Store
	privacyMode bool

	latest atomic.Pointer[models.ClaimAnalysis]

	subMu       sync.Mutex
	subscribers []chan *models.ClaimAnalysis
}

// Option configures an Engine.
type Option func(*Engine)

// WithStructuredFacts wires the structured-fact adapter.
func WithStructuredFacts(c StructuredFactClient) Option {
	return func(e *Engine) { e.structured = c }
}

// WithAggregator wires the fact-check aggregation adapter.
func WithAggregator(c AggregatorClient) Option {
	return func(e *Engine) { e.aggregator = c }
}

// WithWorthiness wires the check-worthiness adapter.
func WithWorthiness(c WorthinessClient) Option {
	return func(e *Engine) { e.worthiness = c }
}

// WithStore wires the history/report store.
func WithStore(s database.Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithPrivacyMode controls whether history keeps only the reduced
// projection of each analysis.
func WithPrivacyMode(on bool) Option {
	return func(e *Engine) { e.privacyMode = on }
}

// NewEngine creates a new analysis engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{privacyMode: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AnalyzeClaim runs the full pipeline for one claim. The analysis itself
// cannot fail: adapter problems are absorbed into sentinel values. The
// returned error reports persistence failure only; the analysis is valid
// either way.
func (e *Engine) AnalyzeClaim(ctx context.Context, text, pageURL, domain string) (*models.ClaimAnalysis, error) {
	start := time.Now()

	// The curated table is cheap and runs before everything else so the
	// precedence merge has its baseline.
	factCheck := facts.Match(text)

	// Independent components run concurrently; each goroutine owns its
	// result variable and nothing is read before Wait returns.
	var (
		heuristic   models.HeuristicResult
		domainTrust models.DomainTrustResult
		links       models.EvidenceLinks
		structured  models.StructuredFactResult
		aggregated  models.AggregatorResult
		worthiness  models.CheckWorthinessResult
	)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		heuristic = heuristics.Analyze(text)
	}()
	go func() {
		defer wg.Done()
		domainTrust = domaintrust.Evaluate(domain, pageURL)
	}()
	go func() {
		defer wg.Done()
		links = evidence.Generate(text)
	}()

	if e.structured != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			structured = e.structured.Lookup(ctx, text)
		}()
	}
	if e.aggregator != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			aggregated = e.aggregator.Search(ctx, text)
		}()
	}
	if e.worthiness != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worthiness = e.worthiness.Score(ctx, text)
		}()
	}
	wg.Wait()

	// Precedence merge: the structured-fact verdict overrides the curated
	// table; the aggregator verdict applies only while nothing has matched
	// yet.
	if verdict := adapters.Verdict(text, structured); verdict.Matched {
		factCheck = verdict
	}
	if !factCheck.Matched {
		if verdict := adapters.ReviewVerdict(aggregated); verdict.Matched {
			factCheck = verdict
		}
	}

	adjusted := applyFactCheck(heuristic, factCheck)
	overall := overallScore(adjusted, domainTrust)
	if factCheck.Matched && !factCheck.IsTrue && overall > 25 {
		// Hard ceiling for confirmed-false claims.
		overall = 25
	}

	analysis := &models.ClaimAnalysis{
		ID:        uuid.New().String(),
		Timestamp: start,
		ClaimText: models.Truncate(text, models.MaxStoredClaimLen),
		PageURL:   pageURL,
		Domain:    domain,
		Scores: models.Scores{
			Overall:     overall,
			Heuristic:   adjusted,
			DomainTrust: domainTrust,
		},
		EvidenceLinks:      links,
		FactCheck:          factCheck,
		ExternalFactChecks: aggregated.Claims,
		StructuredFact:     structured,
		CheckWorthiness:    worthiness,
		Flags:              adjusted.Flags,
		Recommendation:     recommend(overall, factCheck),
	}

	e.publish(analysis)

	log.Info().
		Str("id", analysis.ID).
		Str("domain", domain).
		Int("overall", overall).
		Str("level", string(analysis.Recommendation.Level)).
		Dur("duration", time.Since(start)).
		Msg("Claim analysis complete")

	if err := e.persist(ctx, analysis); err != nil {
		log.Error().Err(err).Str("id", analysis.ID).Msg("Failed to persist analysis")
		return analysis, err
	}
	return analysis, nil
}

// Latest returns the most recently completed analysis, or nil if none has
// run. Each completed analysis fully replaces the previous value.
func (e *Engine) Latest() *models.ClaimAnalysis {
	return e.latest.Load()
}

// Subscribe returns a channel receiving each completed analysis. Slow
// receivers miss updates rather than blocking the pipeline.
func (e *Engine) Subscribe() <-chan *models.ClaimAnalysis {
	ch := make(chan *models.ClaimAnalysis, 8)
	e.subMu.Lock()
	e.subscribers = append(e.subscribers, ch)
	e.subMu.Unlock()
	return ch
}

func (e *Engine) publish(analysis *models.ClaimAnalysis) {
	e.latest.Store(analysis)
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subscribers {
		select {
		case ch <- analysis:
		default:
		}
	}
}

func (e *Engine) persist(ctx context.Context, analysis *models.ClaimAnalysis) error {
	if e.store == nil {
		return nil
	}

	entry := models.HistoryEntry{
		ID:             analysis.ID,
		Timestamp:      analysis.Timestamp,
		Domain:         analysis.Domain,
		Score:          analysis.Scores.Overall,
		Recommendation: analysis.Recommendation.Level,
	}
	if !e.privacyMode {
		entry.Full = analysis
	}
	return e.store.AppendHistory(ctx, entry)
}

// applyFactCheck derives an adjusted heuristic result from a fact-check
// verdict. The input result is not mutated; override flags are prepended
// to a fresh flag list.
func applyFactCheck(heuristic models.HeuristicResult, factCheck models.FactCheckResult) models.HeuristicResult {
	if !factCheck.Matched {
		return heuristic
	}

	source := factCheck.Source
	if source == "" {
		source = "Internal database"
	}

	adjusted := heuristic
	if factCheck.IsTrue {
		adjusted.Score = heuristic.Score + 20
		if adjusted.Score > 100 {
			adjusted.Score = 100
		}
		adjusted.Flags = prepend(heuristic.Flags, models.Flag{
			Type:     "verified-true",
			Severity: models.SeverityPositive,
			Message:  "✓ Verified: " + factCheck.Fact,
			Source:   source,
		})
		return adjusted
	}

	adjusted.Score = heuristic.Score - 40
	if adjusted.Score > 30 {
		adjusted.Score = 30
	}
	if adjusted.Score < 0 {
		adjusted.Score = 0
	}
	overrides := []models.Flag{{
		Type:     "verified-false",
		Severity: models.SeverityCritical,
		Message:  "✗ FALSE: " + factCheck.Fact,
		Source:   source,
	}}
	if factCheck.Correction != "" {
		overrides = append(overrides, models.Flag{
			Type:     "correction",
			Severity: models.SeverityInfo,
			Message:  "Correction: " + factCheck.Correction,
		})
	}
	adjusted.Flags = append(overrides, heuristic.Flags...)
	return adjusted
}

// overallScore weights text analysis at 60% and domain trust at 40%.
func overallScore(heuristic models.HeuristicResult, domainTrust models.DomainTrustResult) int {
	return int(math.Round(float64(heuristic.Score)*0.6 + float64(domainTrust.Score)*0.4))
}

func recommend(overall int, factCheck models.FactCheckResult) models.Recommendation {
	if factCheck.Matched && !factCheck.IsTrue {
		return models.Recommendation{
			Level:   models.LevelFalse,
			Color:   "#dc2626",
			Message: "This claim has been fact-checked and found to be FALSE.",
			Icon:    "❌",
		}
	}
	if factCheck.Matched && factCheck.IsTrue {
		return models.Recommendation{
			Level:   models.LevelVerified,
			Color:   "#16a34a",
			Message: "This claim has been verified as accurate.",
			Icon:    "✅",
		}
	}

	switch {
	case overall >= 75:
		return models.Recommendation{
			Level:   models.LevelCredible,
			Color:   "#22c55e",
			Message: "This claim appears credible, but always verify important information.",
			Icon:    "✅",
		}
	case overall >= 50:
		return models.Recommendation{
			Level:   models.LevelUncertain,
			Color:   "#eab308",
			Message: "This claim has some red flags. Cross-reference with trusted sources.",
			Icon:    "⚠️",
		}
	default:
		return models.Recommendation{
			Level:   models.LevelSuspicious,
			Color:   "#ef4444",
			Message: "This claim shows multiple warning signs. Verify before sharing.",
			Icon:    "🚨",
		}
	}
}

func prepend(flags []models.Flag, flag models.Flag) []models.Flag {
	out := make([]models.Flag, 0, len(flags)+1)
	out = append(out, flag)
	return append(out, flags...)
}
