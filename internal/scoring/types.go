package scoring

import "strings"

// Bounds holds the batch-wide min/max values the score normalization draws
// from. Bounds are always computed over the same population being scored, so
// every normalized value lands in [0,1].
type Bounds struct {
	MinAmount   float64
	MaxAmount   float64
	MinRank     float64
	MaxRank     float64
	MaxArticles float64
	MaxRounds   float64
}

// WithFloors applies the degenerate-batch fallbacks: a single record or an
// all-zero column must not make normalization divide by zero.
func (b Bounds) WithFloors() Bounds {
	if b.MaxAmount < 1 {
		b.MaxAmount = 1
	}
	if b.MaxRank < 100000 {
		b.MaxRank = 100000
	}
	if b.MaxArticles < 1 {
		b.MaxArticles = 1
	}
	if b.MaxRounds < 1 {
		b.MaxRounds = 1
	}
	return b
}

// ComponentWeights holds the weighting of every score component. Values are
// fixed for the product; the struct exists so tests can pin them and the
// formulas read as named terms instead of bare constants.
type ComponentWeights struct {
	// funding score
	FundingAmount float64
	FundingRounds float64

	// operations score
	Headcount float64
	Activity  float64

	// brand/trend score
	RankInverse float64
	Articles    float64
	ThemeBonus  float64

	// potential score
	Stage          float64
	PotentialFund  float64
	PotentialBrand float64
}

// DefaultWeights returns the production weighting.
func DefaultWeights() ComponentWeights {
	return ComponentWeights{
		FundingAmount:  0.7,
		FundingRounds:  0.3,
		Headcount:      0.6,
		Activity:       0.4,
		RankInverse:    0.5,
		Articles:       0.3,
		ThemeBonus:     0.2,
		Stage:          0.4,
		PotentialFund:  0.3,
		PotentialBrand: 0.3,
	}
}

// headcountCap caps the employee median's contribution to the operations
// score; anything at or above this counts as a full-sized operation.
const headcountCap = 500

// keywordBonus is added (scaled by the ThemeBonus weight) when any theme
// flag is set.
const keywordBonus = 0.2

// stageRule maps a funding-stage substring to a maturity score. Rules are
// evaluated in order; the first match wins.
type stageRule struct {
	substr string
	score  float64
}

var stageRules = []stageRule{
	{"series a", 0.7},
	{"series b", 0.9},
	{"series c", 0.9},
	{"ipo", 0.5},
	{"acquired", 0.5},
}

// defaultStageScore applies when no rule matches, including an absent label.
const defaultStageScore = 0.3

// StageScore looks up the maturity score for a funding-stage label using a
// case-insensitive substring match.
func StageScore(label string) float64 {
	folded := strings.ToLower(label)
	for _, rule := range stageRules {
		if strings.Contains(folded, rule.substr) {
			return rule.score
		}
	}
	return defaultStageScore
}
