package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/credcheck/claimscope/internal/models"
)

const defaultWikidataEndpoint = "https://query.wikidata.org/sparql"

// Wikidata resolves a small set of structured query shapes against the
// Wikidata SPARQL endpoint. No credential is required.
type Wikidata struct {
	endpoint   string
	httpClient *http.Client
	cache      *gocache.Cache
	limiter    *rate.Limiter
}

// NewWikidata creates the structured-fact client.
func NewWikidata(endpoint string, opts Options) *Wikidata {
	if endpoint == "" {
		endpoint = defaultWikidataEndpoint
	}
	return &Wikidata{
		endpoint:   endpoint,
		httpClient: newHTTPClient(opts),
		cache:      newCache(opts),
		limiter:    newLimiter(opts),
	}
}

// Name returns the source name.
func (c *Wikidata) Name() string {
	return "Wikidata"
}

var (
	worldCupYearFirst = regexp.MustCompile(`(?i)(\d{4}).*(?:world cup|fifa)`)
	worldCupYearLast  = regexp.MustCompile(`(?i)(?:world cup|fifa).*(\d{4})`)
	presidentPattern  = regexp.MustCompile(`(?i)president.*(?:united states|us|usa|america)|(?:united states|us|usa|america).*president`)
)

const (
	queryTypeWorldCup    = "world_cup"
	queryTypeUSPresident = "us_president"
)

type sparqlResponse struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// Lookup recognizes the claim's query shape, runs the SPARQL query, and
// returns the canonical fact. Unrecognized shapes and empty result sets
// come back as Found=false; transport and parse failures as
// Available=false. Neither raises an error.
func (c *Wikidata) Lookup(ctx context.Context, claimText string) models.StructuredFactResult {
	queryType, sparql := buildStructuredQuery(claimText)
	if sparql == "" {
		return models.StructuredFactResult{
			Available: true,
			Reason:    "No structured query available for this claim type",
		}
	}

	if c.cache != nil {
		if cached, found := c.cache.Get(queryType + "|" + claimText); found {
			return cached.(models.StructuredFactResult)
		}
	}

	result := c.run(ctx, queryType, sparql)
	if c.cache != nil && result.Available {
		c.cache.SetDefault(queryType+"|"+claimText, result)
	}
	return result
}

func (c *Wikidata) run(ctx context.Context, queryType, sparql string) models.StructuredFactResult {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return models.StructuredFactResult{Error: err.Error()}
		}
	}

	reqURL := fmt.Sprintf("%s?query=%s&format=json", c.endpoint, url.QueryEscape(sparql))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.StructuredFactResult{Error: err.Error()}
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Wikidata query failed")
		return models.StructuredFactResult{Error: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("Wikidata returned non-OK status")
		return models.StructuredFactResult{Error: fmt.Sprintf("Wikidata error: %d", resp.StatusCode)}
	}

	var data sparqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return models.StructuredFactResult{Error: err.Error()}
	}

	bindings := data.Results.Bindings
	if len(bindings) == 0 {
		return models.StructuredFactResult{Available: true, QueryType: queryType}
	}

	row := bindings[0]
	switch queryType {
	case queryTypeWorldCup:
		winner := row["winnerLabel"].Value
		event := row["eventLabel"].Value
		if winner == "" {
			return models.StructuredFactResult{Available: true, QueryType: queryType}
		}
		return models.StructuredFactResult{
			Available: true,
			Found:     true,
			QueryType: queryType,
			Fact:      fmt.Sprintf("%s won the %s", winner, event),
			Entity:    winner,
		}
	case queryTypeUSPresident:
		president := row["presidentLabel"].Value
		if president == "" {
			return models.StructuredFactResult{Available: true, QueryType: queryType}
		}
		return models.StructuredFactResult{
			Available: true,
			Found:     true,
			QueryType: queryType,
			Fact:      fmt.Sprintf("The current President of the United States is %s", president),
			Entity:    president,
		}
	}
	return models.StructuredFactResult{Available: true, QueryType: queryType}
}

func buildStructuredQuery(claimText string) (queryType, sparql string) {
	lower := strings.ToLower(claimText)

	if m := firstSubmatch(worldCupYearFirst, lower, worldCupYearLast); m != "" {
		return queryTypeWorldCup, fmt.Sprintf(`
			SELECT ?winner ?winnerLabel ?eventLabel WHERE {
			  ?event wdt:P31 wd:Q19317;
			         wdt:P580 ?startDate;
			         wdt:P1346 ?winner.
			  FILTER(YEAR(?startDate) = %s)
			  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
			} LIMIT 1`, m)
	}

	if presidentPattern.MatchString(lower) {
		return queryTypeUSPresident, `
			SELECT ?president ?presidentLabel ?startDate WHERE {
			  ?president wdt:P39 wd:Q11696.
			  ?president p:P39 ?statement.
			  ?statement ps:P39 wd:Q11696.
			  OPTIONAL { ?statement pq:P580 ?startDate. }
			  OPTIONAL { ?statement pq:P582 ?endDate. }
			  FILTER(!BOUND(?endDate))
			  SERVICE wikibase:label { bd:serviceParam wikibase:language "en". }
			} LIMIT 1`
	}

	return "", ""
}

func firstSubmatch(primary *regexp.Regexp, text string, fallback *regexp.Regexp) string {
	if m := primary.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	if m := fallback.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	return ""
}

// worldCupContenders are the specific entities checked when deciding
// whether a claim asserts a wrong winner.
var worldCupContenders = []string{
	"argentina", "france", "germany", "brazil", "spain", "italy", "england",
}

// Verdict compares a structured lookup result against the claim text. A
// claim naming the canonical entity verifies true; a claim asserting a
// different specific entity for the same event verifies false with a
// correction. Anything else produces no verdict.
func Verdict(claimText string, result models.StructuredFactResult) models.FactCheckResult {
	if !result.Found || result.Fact == "" {
		return models.FactCheckResult{}
	}

	claimLower := strings.ToLower(claimText)
	entity := strings.ToLower(result.Entity)

	if entityMatches(claimLower, entity) {
		return models.FactCheckResult{
			Matched: true,
			IsTrue:  true,
			Fact:    result.Fact,
			Source:  "Wikidata",
		}
	}

	if result.QueryType == queryTypeWorldCup && strings.Contains(claimLower, "won") {
		for _, team := range worldCupContenders {
			if team != entity && strings.Contains(claimLower, team) {
				return models.FactCheckResult{
					Matched:    true,
					IsTrue:     false,
					Fact:       fmt.Sprintf("This claim appears incorrect. %s", result.Fact),
					Correction: result.Fact,
					Source:     "Wikidata",
				}
			}
		}
	}

	return models.FactCheckResult{}
}

// entityMatches reports whether the claim names the canonical entity. For
// multi-word entities ("Joe Biden") the surname alone is accepted.
func entityMatches(claimLower, entity string) bool {
	if entity == "" {
		return false
	}
	if strings.Contains(claimLower, entity) {
		return true
	}
	parts := strings.Fields(entity)
	if len(parts) > 1 {
		last := parts[len(parts)-1]
		return len(last) > 3 && strings.Contains(claimLower, last)
	}
	return false
}
