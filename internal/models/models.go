// Package models defines the core data structures used throughout the application.
package models

import (
	"time"
)

// Severity classifies how loudly a flag should be surfaced.
type Severity string

const (
	SeverityPositive Severity = "positive"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
	SeverityInfo     Severity = "info"
)

// Flag is a single scoring annotation. Flags accumulate into an ordered
// list; order matters because verification overrides are prepended and the
// UI renders flags in list order. Duplicates are permitted.
type Flag struct {
	Type     string   `json:"type"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Source   string   `json:"source,omitempty"`
}

// Confidence indicates whether the heuristic pass produced any findings.
type Confidence string

const (
	ConfidenceNeutral  Confidence = "neutral"
	ConfidenceAnalyzed Confidence = "analyzed"
)

// HeuristicResult is the output of the lexical heuristic analyzer.
type HeuristicResult struct {
	Score      int        `json:"score"`
	Flags      []Flag     `json:"flags"`
	Confidence Confidence `json:"confidence"`
}

// DomainTrustResult is the output of the domain trust evaluator.
type DomainTrustResult struct {
	Score         int    `json:"score"`
	Domain        string `json:"domain"`
	Flags         []Flag `json:"flags"`
	IsKnownSource bool   `json:"is_known_source"`
}

// FactCheckResult is a definitive true/false judgment from the curated
// table or an external verification service. At most one is active per
// analysis after precedence merging.
type FactCheckResult struct {
	Matched    bool   `json:"matched"`
	IsTrue     bool   `json:"is_true,omitempty"`
	Fact       string `json:"fact,omitempty"`
	Correction string `json:"correction,omitempty"`
	Source     string `json:"source,omitempty"`
	URL        string `json:"url,omitempty"`
}

// StructuredFactResult is the raw outcome of the structured-fact adapter.
// Available=false means the lookup failed; Found=false means it ran but
// recognized no query shape or got no rows. Neither is an error.
type StructuredFactResult struct {
	Available bool   `json:"available"`
	Found     bool   `json:"found"`
	QueryType string `json:"query_type,omitempty"`
	Fact      string `json:"fact,omitempty"`
	Entity    string `json:"entity,omitempty"`
	Reason    string `json:"reason,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ExternalReview is one professional fact-checker's verdict on a claim.
type ExternalReview struct {
	Publisher string `json:"publisher"`
	Rating    string `json:"rating"`
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
}

// ExternalFactCheck is one claim returned by the fact-check aggregator.
type ExternalFactCheck struct {
	Text     string           `json:"text"`
	Claimant string           `json:"claimant,omitempty"`
	Reviews  []ExternalReview `json:"reviews"`
}

// AggregatorResult is the raw outcome of the fact-check aggregation adapter.
type AggregatorResult struct {
	Available bool                `json:"available"`
	Found     bool                `json:"found"`
	Claims    []ExternalFactCheck `json:"claims,omitempty"`
	Reason    string              `json:"reason,omitempty"`
	Error     string              `json:"error,omitempty"`
}

// CheckWorthinessResult is the advisory output of the check-worthiness
// adapter. It never adjusts the score; it only tells the user whether the
// text is worth fact-checking at all.
type CheckWorthinessResult struct {
	Available      bool    `json:"available"`
	Score          float64 `json:"score,omitempty"`
	IsCheckWorthy  bool    `json:"is_check_worthy,omitempty"`
	Interpretation string  `json:"interpretation,omitempty"`
	Reason         string  `json:"reason,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// Link is a single outbound verification URL.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Icon string `json:"icon,omitempty"`
}

// EvidenceLinks is the fixed-shape bundle of outbound verification URLs
// generated fresh for each analysis.
type EvidenceLinks struct {
	Query              string `json:"query"`
	SearchEngines      []Link `json:"search_engines"`
	FactCheckers       []Link `json:"fact_checkers"`
	NewsSearch         string `json:"news_search"`
	ReverseImageSearch string `json:"reverse_image_search"`
}

// RecommendationLevel is the final categorical verdict.
type RecommendationLevel string

const (
	LevelCredible   RecommendationLevel = "credible"
	LevelUncertain  RecommendationLevel = "uncertain"
	LevelSuspicious RecommendationLevel = "suspicious"
	LevelVerified   RecommendationLevel = "verified"
	LevelFalse      RecommendationLevel = "false"
)

// Recommendation is the user-facing verdict derived from the final score
// and fact-check status. Color and icon are presentation tokens only.
type Recommendation struct {
	Level   RecommendationLevel `json:"level"`
	Message string              `json:"message"`
	Color   string              `json:"color"`
	Icon    string              `json:"icon"`
}

// Scores groups the component scores of an analysis.
type Scores struct {
	Overall     int               `json:"overall"`
	Heuristic   HeuristicResult   `json:"heuristic"`
	DomainTrust DomainTrustResult `json:"domain_trust"`
}

// ClaimAnalysis is the root aggregate produced by one analysis request.
// Immutable after construction.
type ClaimAnalysis struct {
	ID                 string                `json:"id"`
	Timestamp          time.Time             `json:"timestamp"`
	ClaimText          string                `json:"claim_text"`
	PageURL            string                `json:"page_url"`
	Domain             string                `json:"domain"`
	Scores             Scores                `json:"scores"`
	EvidenceLinks      EvidenceLinks         `json:"evidence_links"`
	FactCheck          FactCheckResult       `json:"fact_check"`
	ExternalFactChecks []ExternalFactCheck   `json:"external_fact_checks,omitempty"`
	StructuredFact     StructuredFactResult  `json:"structured_fact"`
	CheckWorthiness    CheckWorthinessResult `json:"check_worthiness"`
	Flags              []Flag                `json:"flags"`
	Recommendation     Recommendation        `json:"recommendation"`
}

// HistoryEntry is the privacy-reduced projection of an analysis. When
// privacy mode is off the full analysis is stored alongside it.
type HistoryEntry struct {
	ID             string              `json:"id"`
	Timestamp      time.Time           `json:"timestamp"`
	Domain         string              `json:"domain"`
	Score          int                 `json:"score"`
	Recommendation RecommendationLevel `json:"recommendation"`
	Full           *ClaimAnalysis      `json:"full,omitempty"`
}

// UserReport is a user's own verdict on an analyzed claim.
type UserReport struct {
	ClaimID     string    `json:"claim_id"`
	ClaimText   string    `json:"claim_text"`
	Domain      string    `json:"domain"`
	Score       int       `json:"score"`
	UserVerdict bool      `json:"user_verdict"`
	PageURL     string    `json:"page_url"`
	Timestamp   time.Time `json:"timestamp"`
}

// AnalyzeRequest is the request body for the analyze endpoint.
type AnalyzeRequest struct {
	Text    string `json:"text"`
	PageURL string `json:"page_url"`
	Domain  string `json:"domain"`
}

// ReportRequest is the request body for submitting a user report.
type ReportRequest struct {
	ClaimID     string `json:"claim_id"`
	ClaimText   string `json:"claim_text"`
	Domain      string `json:"domain"`
	Score       int    `json:"score"`
	UserVerdict bool   `json:"user_verdict"`
	PageURL     string `json:"page_url"`
}

// MaxStoredClaimLen caps claim text persisted with an analysis.
const MaxStoredClaimLen = 500

// MaxReportClaimLen caps claim text attached to a user report.
const MaxReportClaimLen = 200

// Truncate returns s cut to at most n bytes.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
