// Package heuristics scores raw claim text using phrase and pattern
// matching. The analyzer is a pure function of the text; it performs no
// I/O and never fails.
package heuristics

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/credcheck/claimscope/internal/models"
)

const baselineScore = 70

// Analyze scores text for markers of sensationalism vs. sourcing and
// returns a 0-100 score with ordered flags. Context bonuses and booster
// credits are flagged before penalties; the orchestrator later prepends
// verification overrides, so flag order is part of the contract.
func Analyze(text string) models.HeuristicResult {
	var flags []models.Flag
	score := baselineScore

	educational := IsEducationalContext(text)
	sports := IsSportsContext(text)
	scientific := IsScienceContext(text)
	credibleContext := educational || sports || scientific

	if educational {
		score += 10
		flags = append(flags, models.Flag{
			Type:     "educational",
			Severity: models.SeverityPositive,
			Message:  "Educational/definitional content",
		})
	}
	if sports {
		score += 8
		flags = append(flags, models.Flag{
			Type:     "sports",
			Severity: models.SeverityPositive,
			Message:  "Sports/competition context detected",
		})
	}
	if scientific {
		score += 10
		flags = append(flags, models.Flag{
			Type:     "scientific",
			Severity: models.SeverityPositive,
			Message:  "Scientific/research context",
		})
	}

	if n := CountBoosters(text); n > 0 {
		boost := n * 6
		if boost > 25 {
			boost = 25
		}
		score += boost
		flags = append(flags, models.Flag{
			Type:     "credible-context",
			Severity: models.SeverityPositive,
			Message:  fmt.Sprintf("Contains %d credibility indicator(s)", n),
		})
	}

	if matches := SensationalMatches(text); len(matches) > 0 {
		score -= len(matches) * 10
		severity := models.SeverityMedium
		if len(matches) > 2 {
			severity = models.SeverityHigh
		}
		flags = append(flags, models.Flag{
			Type:     "sensational",
			Severity: severity,
			Message:  fmt.Sprintf("Contains sensational phrase(s): %q", matches[0]),
		})
	}

	if HasExcessiveCaps(text) {
		score -= 12
		flags = append(flags, models.Flag{
			Type:     "caps",
			Severity: models.SeverityMedium,
			Message:  "Excessive capitalization detected",
		})
	}

	if HasExcessivePunctuation(text) {
		score -= 8
		flags = append(flags, models.Flag{
			Type:     "punctuation",
			Severity: models.SeverityLow,
			Message:  "Excessive punctuation (!!, ???)",
		})
	}

	if HasUnsourcedStatistics(text) && !credibleContext {
		score -= 8
		flags = append(flags, models.Flag{
			Type:     "stats",
			Severity: models.SeverityMedium,
			Message:  "Statistics without apparent source",
		})
	}

	if !credibleContext && HasSuspiciousAbsolutes(text) {
		score -= 6
		flags = append(flags, models.Flag{
			Type:     "absolute",
			Severity: models.SeverityLow,
			Message:  "Generalizing language in opinion context",
		})
	}

	if HasEmotionalTriggers(text) {
		score -= 15
		flags = append(flags, models.Flag{
			Type:     "emotional",
			Severity: models.SeverityHigh,
			Message:  "Clickbait/manipulation pattern detected",
		})
	}

	if HasFearMongering(text) {
		score -= 12
		flags = append(flags, models.Flag{
			Type:     "fear",
			Severity: models.SeverityHigh,
			Message:  "Fear-based urgency language",
		})
	}

	confidence := models.ConfidenceNeutral
	if len(flags) > 0 {
		confidence = models.ConfidenceAnalyzed
	}

	return models.HeuristicResult{
		Score:      clamp(score),
		Flags:      flags,
		Confidence: confidence,
	}
}

// IsEducationalContext reports whether the text reads as definitional or
// educational material.
func IsEducationalContext(text string) bool {
	return educationalContext.MatchString(text)
}

// IsSportsContext reports whether the text is about sports or competition.
func IsSportsContext(text string) bool {
	return sportsContext.MatchString(text)
}

// IsScienceContext reports whether the text references scientific work.
func IsScienceContext(text string) bool {
	return scienceContext.MatchString(text)
}

// CountBoosters counts credibility-booster phrases occurring in the text.
// Each phrase counts once regardless of repetition.
func CountBoosters(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, phrase := range credibilityBoosters {
		if strings.Contains(lower, phrase) {
			count++
		}
	}
	return count
}

// SensationalMatches returns the sensational phrases found in the text, in
// list order.
func SensationalMatches(text string) []string {
	lower := strings.ToLower(text)
	var matches []string
	for _, phrase := range sensationalPhrases {
		if strings.Contains(lower, phrase) {
			matches = append(matches, phrase)
		}
	}
	return matches
}

// HasExcessiveCaps reports whether more than 30% of the words are all-caps
// shouting. Short texts and acronyms are excluded: a word only counts if it
// is longer than three characters and contains at least one letter, and the
// check requires more than five words total.
func HasExcessiveCaps(text string) bool {
	words := strings.Fields(text)
	if len(words) <= 5 {
		return false
	}
	allCaps := 0
	for _, w := range words {
		if len(w) > 3 && w == strings.ToUpper(w) && containsLetter(w) {
			allCaps++
		}
	}
	return float64(allCaps)/float64(len(words)) > 0.3
}

// HasExcessivePunctuation reports runs of !! or ??? or mixed !? pairs.
func HasExcessivePunctuation(text string) bool {
	return excessivePunctuation.MatchString(text)
}

// HasUnsourcedStatistics reports a percentage or large-quantity phrase with
// no sourcing cue anywhere in the text.
func HasUnsourcedStatistics(text string) bool {
	return unsourcedStatistics.MatchString(text) && !statisticsSourceCue.MatchString(text)
}

// HasSuspiciousAbsolutes reports generalizing absolute language of the
// "everyone knows" variety.
func HasSuspiciousAbsolutes(text string) bool {
	return suspiciousAbsolutes.MatchString(text)
}

// HasEmotionalTriggers reports narrow clickbait manipulation patterns.
func HasEmotionalTriggers(text string) bool {
	return emotionalTriggers.MatchString(text)
}

// HasFearMongering reports fear-based urgency language.
func HasFearMongering(text string) bool {
	return fearMongering.MatchString(text)
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
