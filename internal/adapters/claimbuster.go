package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/credcheck/claimscope/internal/models"
)

const defaultClaimBusterEndpoint = "https://idir.uta.edu/claimbuster/api/v2/score/text/"

// ClaimBuster scores how check-worthy a piece of text is. The score is
// advisory: it is carried on the analysis but never adjusts credibility.
type ClaimBuster struct {
	endpoint    string
	credentials Credentials
	httpClient  *http.Client
	cache       *gocache.Cache
	limiter     *rate.Limiter
}

// NewClaimBuster creates the check-worthiness client.
func NewClaimBuster(endpoint string, creds Credentials, opts Options) *ClaimBuster {
	if endpoint == "" {
		endpoint = defaultClaimBusterEndpoint
	}
	return &ClaimBuster{
		endpoint:    endpoint,
		credentials: creds,
		httpClient:  newHTTPClient(opts),
		cache:       newCache(opts),
		limiter:     newLimiter(opts),
	}
}

// Name returns the source name.
func (c *ClaimBuster) Name() string {
	return "ClaimBuster"
}

type claimBusterResponse struct {
	Results []struct {
		Score float64 `json:"score"`
	} `json:"results"`
}

// Score fetches the check-worthiness of the claim. All failure modes
// degrade to Available=false.
func (c *ClaimBuster) Score(ctx context.Context, claimText string) models.CheckWorthinessResult {
	key, ok := c.credentials.Credential(CredentialClaimBuster)
	if !ok {
		return models.CheckWorthinessResult{Reason: "No API key configured"}
	}

	if c.cache != nil {
		if cached, found := c.cache.Get(claimText); found {
			return cached.(models.CheckWorthinessResult)
		}
	}

	result := c.score(ctx, claimText, key)
	if c.cache != nil && result.Available {
		c.cache.SetDefault(claimText, result)
	}
	return result
}

func (c *ClaimBuster) score(ctx context.Context, claimText, key string) models.CheckWorthinessResult {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.CheckWorthinessResult{Error: err.Error()}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+url.PathEscape(claimText), nil)
	if err != nil {
		return models.CheckWorthinessResult{Error: err.Error()}
	}
	req.Header.Set("x-api-key", key)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("ClaimBuster query failed")
		return models.CheckWorthinessResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("ClaimBuster returned non-OK status")
		return models.CheckWorthinessResult{Error: fmt.Sprintf("ClaimBuster error: %d", resp.StatusCode)}
	}

	var data claimBusterResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.CheckWorthinessResult{Error: err.Error()}
	}

	if len(data.Results) == 0 {
		return models.CheckWorthinessResult{Available: true, Reason: "No score returned"}
	}

	score := data.Results[0].Score
	return models.CheckWorthinessResult{
		Available:      true,
		Score:          score,
		IsCheckWorthy:  score > 0.5,
		Interpretation: interpretCheckWorthiness(score),
	}
}

func interpretCheckWorthiness(score float64) string {
	switch {
	case score > 0.7:
		return "Highly check-worthy claim"
	case score > 0.5:
		return "Moderately check-worthy"
	case score > 0.3:
		return "Low priority for fact-checking"
	default:
		return "Likely not a factual claim"
	}
}
