// Package evidence builds outbound search and fact-checker URLs for manual
// verification of a claim. Generation is pure; no network access.
package evidence

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/credcheck/claimscope/internal/models"
)

// maxQueryLen is the claim prefix length substituted into link templates.
const maxQueryLen = 150

type factCheckSite struct {
	name string
	base string
}

var factCheckSites = []factCheckSite{
	{name: "Snopes", base: "https://www.snopes.com/search/"},
	{name: "PolitiFact", base: "https://www.politifact.com/search/?q="},
	{name: "FactCheck.org", base: "https://www.factcheck.org/?s="},
	{name: "Full Fact", base: "https://fullfact.org/search/?q="},
}

// Generate builds the fixed link bundle for a claim. The same text always
// yields an identical bundle.
func Generate(text string) models.EvidenceLinks {
	refined := RefineQuery(text)
	query := url.QueryEscape(models.Truncate(text, maxQueryLen))

	checkers := make([]models.Link, 0, len(factCheckSites))
	for _, site := range factCheckSites {
		checkers = append(checkers, models.Link{
			Name: site.name,
			URL:  site.base + query,
			Icon: "✓",
		})
	}

	return models.EvidenceLinks{
		Query: refined,
		SearchEngines: []models.Link{
			{Name: "Google", URL: "https://www.google.com/search?q=" + query, Icon: "🔍"},
			{Name: "DuckDuckGo", URL: "https://duckduckgo.com/?q=" + query, Icon: "🦆"},
			{Name: "Bing", URL: "https://www.bing.com/search?q=" + query, Icon: "🅱️"},
		},
		FactCheckers:       checkers,
		NewsSearch:         "https://news.google.com/search?q=" + query,
		ReverseImageSearch: "https://images.google.com/searchbyimage?image_url=",
	}
}

var (
	hearsayPrefix = regexp.MustCompile(`(?i)^(i heard that|someone said|apparently|supposedly|they say)\s*`)
	bangRuns      = regexp.MustCompile(`[!?]+`)
)

type eventPattern struct {
	pattern *regexp.Regexp
	suffix  string
}

var eventPatterns = []eventPattern{
	{regexp.MustCompile(`(?i)won the (.*?)(world cup|championship|election|award)`), " winner"},
	{regexp.MustCompile(`(?i)died|passed away`), " death confirmed"},
	{regexp.MustCompile(`(?i)announced|confirmed|revealed`), " official"},
}

// RefineQuery strips hearsay prefixes and shouting punctuation from a
// claim and appends a verification keyword when the claim is about a
// recognizable event, producing a query better suited to web search.
func RefineQuery(text string) string {
	query := hearsayPrefix.ReplaceAllString(text, "")
	query = strings.TrimSpace(bangRuns.ReplaceAllString(query, ""))

	for _, ep := range eventPatterns {
		if ep.pattern.MatchString(query) {
			query = models.Truncate(query, 100) + ep.suffix
			break
		}
	}

	return models.Truncate(query, maxQueryLen)
}
