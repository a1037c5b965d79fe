// Package facts matches claim text against a small curated table of
// verified true/false statements. This is a deliberately explicit
// allow/deny list, not a general knowledge base.
package facts

import (
	"regexp"

	"github.com/credcheck/claimscope/internal/models"
)

type entry struct {
	patterns   []*regexp.Regexp
	isTrue     bool
	fact       string
	correction string
}

// knownFacts is ordered; the first entry with any matching pattern wins.
var knownFacts = []entry{
	{
		patterns: compile(`argentina.*won.*world cup.*2022`, `argentina.*won.*2022.*world cup`, `2022.*world cup.*argentina`),
		isTrue:   true,
		fact:     "Argentina won the 2022 FIFA World Cup, defeating France in the final.",
	},
	{
		patterns:   compile(`france.*won.*world cup.*2022`, `france.*won.*2022.*world cup`, `2022.*world cup.*france.*won`),
		isTrue:     false,
		fact:       "France did NOT win the 2022 World Cup. Argentina won, defeating France in the final.",
		correction: "Argentina won the 2022 FIFA World Cup.",
	},
	{
		patterns: compile(`france.*won.*world cup.*2018`, `france.*won.*2018.*world cup`, `2018.*world cup.*france`),
		isTrue:   true,
		fact:     "France won the 2018 FIFA World Cup in Russia.",
	},
	{
		patterns:   compile(`earth.*flat`, `flat.*earth`),
		isTrue:     false,
		fact:       "The Earth is not flat. It is an oblate spheroid.",
		correction: "Scientific consensus confirms Earth is roughly spherical.",
	},
	{
		patterns:   compile(`covid.*5g`, `5g.*covid|5g.*corona`),
		isTrue:     false,
		fact:       "There is no connection between 5G and COVID-19. This is a debunked conspiracy theory.",
		correction: "COVID-19 is caused by the SARS-CoV-2 virus, not 5G technology.",
	},
	{
		patterns:   compile(`vaccines.*cause.*autism`, `autism.*caused.*vaccine`),
		isTrue:     false,
		fact:       "Vaccines do not cause autism. This claim has been thoroughly debunked.",
		correction: "Multiple large studies have found no link between vaccines and autism.",
	},
	{
		patterns:   compile(`trump.*won.*2020`, `2020.*election.*stolen`),
		isTrue:     false,
		fact:       "Joe Biden won the 2020 US Presidential Election. Claims of widespread fraud were rejected by courts.",
		correction: "Biden won 306 electoral votes to Trump's 232.",
	},
	{
		patterns: compile(`biden.*won.*2020`, `biden.*president.*2020`),
		isTrue:   true,
		fact:     "Joe Biden won the 2020 US Presidential Election.",
	},
	{
		patterns: compile(`trump.*won.*2024`, `trump.*president.*2024`),
		isTrue:   true,
		fact:     "Donald Trump won the 2024 US Presidential Election.",
	},
}

// Match checks text against the table, first match wins. An unmatched
// result has Matched=false and nothing else set.
func Match(text string) models.FactCheckResult {
	for _, e := range knownFacts {
		for _, p := range e.patterns {
			if p.MatchString(text) {
				return models.FactCheckResult{
					Matched:    true,
					IsTrue:     e.isTrue,
					Fact:       e.fact,
					Correction: e.correction,
				}
			}
		}
	}
	return models.FactCheckResult{}
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(`(?i)`+p))
	}
	return out
}
