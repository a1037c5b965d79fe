package heuristics

import "regexp"

// sensationalPhrases are clickbait, manipulative-marketing, and conspiracy
// markers. Matching is case-insensitive substring containment.
var sensationalPhrases = []string{
	// Clickbait phrases (high confidence misinformation markers)
	"they don't want you to know", "exposed truth", "what they're hiding",
	"mainstream media won't tell", "wake up sheeple", "exposed", "exposed!",

	// Manipulative marketing
	"doctors hate", "one weird trick", "you won't believe",
	"miracle cure", "secret they", "banned by",

	// Conspiracy markers
	"hoax", "false flag", "cover-up", "coverup", "deep state",
	"plandemic", "scamdemic",

	// Extreme sensationalism
	"bombshell", "earth-shattering", "mind-blowing",
}

// credibilityBoosters reduce suspicion; they indicate sourced, factual, or
// educational content.
var credibilityBoosters = []string{
	"according to", "study shows", "research indicates", "published in",
	"peer-reviewed", "data shows", "statistics from", "reported by",
	"university", "journal", "scientific", "evidence suggests",
	"definition", "defined as", "refers to", "is called", "known as",
	"mathematically", "theorem", "formula", "equation", "proof",
	"historically", "in history", "championship", "tournament", "final",
	"won the", "defeated", "victory", "score was", "world cup", "olympic",
}

// Context patterns. Absolute language is acceptable in these contexts, so
// a positive match suppresses the absolutes and unsourced-stats penalties.
var (
	educationalContext = regexp.MustCompile(`(?i)definition|theorem|law of|principle|formula|mathematics|physics|chemistry|biology|always (equals|results|produces|means|refers)|by definition`)
	sportsContext      = regexp.MustCompile(`(?i)world cup|championship|tournament|olympic|final|semi-final|quarter-final|match|game|team|player|coach|season|league|cup|trophy|medal|won|defeated|victory|score`)
	scienceContext     = regexp.MustCompile(`(?i)scientific|study|research|university|professor|journal|published|peer-reviewed|experiment|hypothesis|theory|evidence|data|analysis`)
)

var (
	excessivePunctuation = regexp.MustCompile(`[!]{2,}|[?]{3,}|[!?]{2,}`)
	unsourcedStatistics  = regexp.MustCompile(`(?i)\d+%|millions of|billions of|thousands of`)
	statisticsSourceCue  = regexp.MustCompile(`(?i)according to|study|research|survey|report|data|census|official`)
	suspiciousAbsolutes  = regexp.MustCompile(`(?i)everyone knows|exposed|they always|always lying|never trust|all of them are|none of them`)
	emotionalTriggers    = regexp.MustCompile(`(?i)you won't believe what|they don't want you to|exposed:|exposed!|the truth about.*exposed|what.*doesn't want you to know`)
	fearMongering        = regexp.MustCompile(`(?i)terrifying truth|scary fact no one|before it's too late|spread this before`)
)
