package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturescope/pkg/contracts/domain"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name             string
		value, min, max  float64
		want             float64
	}{
		{"midpoint", 50, 0, 100, 0.5},
		{"at min", 0, 0, 100, 0},
		{"at max", 100, 0, 100, 1},
		{"degenerate range", 42, 42, 42, 0},
		{"shifted range", 15, 10, 20, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.value, tt.min, tt.max))
		})
	}
}

func TestStageScore(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"Series A", 0.7},
		{"series a - ii", 0.7},
		{"Series B", 0.9},
		{"Series C", 0.9},
		{"IPO", 0.5},
		{"Acquired", 0.5},
		{"Seed", 0.3},
		{"Pre-Seed", 0.3},
		{"", 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, StageScore(tt.label))
		})
	}
}

func TestBoundsWithFloors(t *testing.T) {
	b := Bounds{MaxAmount: 0, MaxRank: 500, MaxArticles: 0, MaxRounds: 0}.WithFloors()

	assert.Equal(t, 1.0, b.MaxAmount)
	assert.Equal(t, 100000.0, b.MaxRank)
	assert.Equal(t, 1.0, b.MaxArticles)
	assert.Equal(t, 1.0, b.MaxRounds)

	// Values above the floors pass through untouched.
	b = Bounds{MaxAmount: 5e6, MaxRank: 2e5, MaxArticles: 40, MaxRounds: 8}.WithFloors()
	assert.Equal(t, 5e6, b.MaxAmount)
	assert.Equal(t, 2e5, b.MaxRank)
}

func TestScoreKnownValues(t *testing.T) {
	calc := NewCalculator(DefaultWeights(), nil)

	companies := []domain.ScoredCompany{{
		Name:             "Acme",
		FundingAmountUSD: 500000,
		FundingRounds:    2,
		EmployeeMedian:   250,
		OperatingStatus:  "Active",
		Rank:             10,
		ArticleCount:     0,
		FundingStage:     "Series A",
	}}
	bounds := Bounds{
		MinAmount: 0, MaxAmount: 1000000,
		MinRank: 10, MaxRank: 100000,
		MaxArticles: 1, MaxRounds: 4,
	}

	scored := calc.Score(context.Background(), companies, bounds)
	require.Len(t, scored, 1)
	s := scored[0].Scores

	// funding = 100 * (0.7*0.5 + 0.3*0.5)
	assert.InDelta(t, 50.0, s.Funding, 1e-9)
	// operations = 100 * (0.6*(250/500) + 0.4*1)
	assert.InDelta(t, 70.0, s.Operations, 1e-9)
	// brand = 100 * (0.5*(1-0) + 0.3*0 + 0.2*0)
	assert.InDelta(t, 50.0, s.BrandTrend, 1e-9)
	// potential = 100 * (0.4*0.7 + 0.3*0.5 + 0.3*0.5)
	assert.InDelta(t, 58.0, s.Potential, 1e-9)
	assert.InDelta(t, 57.0, s.Comprehensive, 1e-9)
}

func TestScoreRanges(t *testing.T) {
	calc := NewCalculator(DefaultWeights(), nil)

	companies := []domain.ScoredCompany{
		{Name: "min", OperatingStatus: "Closed", Rank: 100000},
		{
			Name:             "max",
			FundingAmountUSD: 1e8,
			FundingRounds:    10,
			EmployeeMedian:   5000,
			OperatingStatus:  "Active",
			Rank:             1,
			ArticleCount:     500,
			FundingStage:     "Series B",
			Themes:           domain.ThemeSet{AI: true},
		},
	}
	bounds := Bounds{
		MinAmount: 0, MaxAmount: 1e8,
		MinRank: 1, MaxRank: 100000,
		MaxArticles: 500, MaxRounds: 10,
	}

	scored := calc.Score(context.Background(), companies, bounds)
	for _, c := range scored {
		for _, cat := range []domain.ScoreCategory{
			domain.ScoreFunding, domain.ScoreOperations, domain.ScoreBrandTrend,
			domain.ScorePotential, domain.ScoreComprehensive,
		} {
			v, ok := c.Scores.ByCategory(cat)
			require.True(t, ok)
			assert.GreaterOrEqual(t, v, 0.0, "%s %s", c.Name, cat)
			assert.LessOrEqual(t, v, 100.0, "%s %s", c.Name, cat)
		}
	}

	// Comprehensive is the plain mean of the four components.
	s := scored[1].Scores
	assert.InDelta(t, (s.Funding+s.Operations+s.BrandTrend+s.Potential)/4, s.Comprehensive, 1e-9)
}

func TestScoreThemeBonus(t *testing.T) {
	calc := NewCalculator(DefaultWeights(), nil)

	companies := []domain.ScoredCompany{
		{Name: "tagged", Rank: 1, ArticleCount: 100, Themes: domain.ThemeSet{SaaS: true}},
		{Name: "untagged", Rank: 1, ArticleCount: 100},
	}
	bounds := Bounds{MinRank: 1, MaxRank: 100000, MaxArticles: 100, MaxAmount: 1, MaxRounds: 1}

	scored := calc.Score(context.Background(), companies, bounds)

	// Best rank and article count put brand at 80; any theme flag adds the
	// weighted bonus of 4 on top.
	assert.InDelta(t, 84.0, scored[0].Scores.BrandTrend, 1e-9)
	assert.InDelta(t, 80.0, scored[1].Scores.BrandTrend, 1e-9)
}

func TestScoreEmployeeCapAndInactive(t *testing.T) {
	calc := NewCalculator(DefaultWeights(), nil)

	companies := []domain.ScoredCompany{
		{Name: "huge", EmployeeMedian: 100000, OperatingStatus: "Active"},
		{Name: "inactive", EmployeeMedian: 500, OperatingStatus: "Closed"},
	}
	bounds := Bounds{}.WithFloors()

	scored := calc.Score(context.Background(), companies, bounds)

	// Headcount saturates at the cap: 0.6*1 + 0.4*1.
	assert.InDelta(t, 100.0, scored[0].Scores.Operations, 1e-9)
	// Full headcount but no activity term.
	assert.InDelta(t, 60.0, scored[1].Scores.Operations, 1e-9)
}
