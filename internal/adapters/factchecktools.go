package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/credcheck/claimscope/internal/models"
)

const defaultFactCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// maxAggregatorQueryLen is the claim prefix sent to the aggregator.
const maxAggregatorQueryLen = 200

// maxAggregatorClaims caps how many external fact-checks are kept.
const maxAggregatorClaims = 3

// FactCheckAggregator queries a professional fact-check aggregation service
// (Google Fact Check Tools API shape). A credential is required; without
// one the adapter short-circuits before any network I/O.
type FactCheckAggregator struct {
	endpoint    string
	credentials Credentials
	httpClient  *http.Client
	cache       *gocache.Cache
	limiter     *rate.Limiter
}

// NewFactCheckAggregator creates the aggregation client.
func NewFactCheckAggregator(endpoint string, creds Credentials, opts Options) *FactCheckAggregator {
	if endpoint == "" {
		endpoint = defaultFactCheckEndpoint
	}
	return &FactCheckAggregator{
		endpoint:    endpoint,
		credentials: creds,
		httpClient:  newHTTPClient(opts),
		cache:       newCache(opts),
		limiter:     newLimiter(opts),
	}
}

// Name returns the source name.
func (c *FactCheckAggregator) Name() string {
	return "Fact Check Tools"
}

// Available reports whether a credential is configured.
func (c *FactCheckAggregator) Available() bool {
	_, ok := c.credentials.Credential(CredentialFactCheckAggregator)
	return ok
}

type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Publisher struct {
				Name string `json:"name"`
			} `json:"publisher"`
			TextualRating string `json:"textualRating"`
			URL           string `json:"url"`
			Title         string `json:"title"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Search queries the aggregator for published fact-checks of the claim.
// Missing credential, HTTP failure, and malformed payloads all come back
// as Available=false sentinels.
func (c *FactCheckAggregator) Search(ctx context.Context, claimText string) models.AggregatorResult {
	key, ok := c.credentials.Credential(CredentialFactCheckAggregator)
	if !ok {
		return models.AggregatorResult{Reason: "No API key configured"}
	}

	query := models.Truncate(claimText, maxAggregatorQueryLen)
	if c.cache != nil {
		if cached, found := c.cache.Get(query); found {
			return cached.(models.AggregatorResult)
		}
	}

	result := c.search(ctx, query, key)
	if c.cache != nil && result.Available {
		c.cache.SetDefault(query, result)
	}
	return result
}

func (c *FactCheckAggregator) search(ctx context.Context, query, key string) models.AggregatorResult {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.AggregatorResult{Error: err.Error()}
		}
	}

	reqURL := fmt.Sprintf("%s?query=%s&key=%s", c.endpoint, url.QueryEscape(query), url.QueryEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.AggregatorResult{Error: err.Error()}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Fact-check aggregator query failed")
		return models.AggregatorResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("Fact-check aggregator returned non-OK status")
		return models.AggregatorResult{Error: fmt.Sprintf("API error: %d", resp.StatusCode)}
	}

	var data factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.AggregatorResult{Error: err.Error()}
	}

	if len(data.Claims) == 0 {
		return models.AggregatorResult{Available: true}
	}

	claims := data.Claims
	if len(claims) > maxAggregatorClaims {
		claims = claims[:maxAggregatorClaims]
	}

	out := make([]models.ExternalFactCheck, 0, len(claims))
	for _, claim := range claims {
		reviews := make([]models.ExternalReview, 0, len(claim.ClaimReview))
		for _, review := range claim.ClaimReview {
			reviews = append(reviews, models.ExternalReview{
				Publisher: review.Publisher.Name,
				Rating:    review.TextualRating,
				URL:       review.URL,
				Title:     review.Title,
			})
		}
		out = append(out, models.ExternalFactCheck{
			Text:     claim.Text,
			Claimant: claim.Claimant,
			Reviews:  reviews,
		})
	}

	return models.AggregatorResult{Available: true, Found: true, Claims: out}
}

var (
	falseRatingKeywords = []string{"false", "pants on fire", "fake", "incorrect", "wrong", "misleading"}
	trueRatingKeywords  = []string{"true", "correct", "accurate", "verified"}
)

// ClassifyRating maps a reviewer's textual rating onto a boolean verdict.
// Unrecognized ratings return recognized=false and must not be applied.
// False keywords are checked first: "false" contains "true"-adjacent text
// in some publishers' phrasing ("mostly false, partly true").
func ClassifyRating(rating string) (isTrue, recognized bool) {
	lower := strings.ToLower(rating)
	for _, kw := range falseRatingKeywords {
		if strings.Contains(lower, kw) {
			return false, true
		}
	}
	for _, kw := range trueRatingKeywords {
		if strings.Contains(lower, kw) {
			return true, true
		}
	}
	return false, false
}

// ReviewVerdict derives a fact-check result from the first external
// reviewer's rating, if that rating is classifiable.
func ReviewVerdict(result models.AggregatorResult) models.FactCheckResult {
	if !result.Found || len(result.Claims) == 0 || len(result.Claims[0].Reviews) == 0 {
		return models.FactCheckResult{}
	}

	review := result.Claims[0].Reviews[0]
	isTrue, recognized := ClassifyRating(review.Rating)
	if !recognized {
		return models.FactCheckResult{}
	}

	return models.FactCheckResult{
		Matched: true,
		IsTrue:  isTrue,
		Fact:    fmt.Sprintf("Rated %q by %s", review.Rating, review.Publisher),
		Source:  review.Publisher,
		URL:     review.URL,
	}
}
