package scoring

import (
	"context"
	"log/slog"

	"venturescope/pkg/contracts/domain"
)

// Calculator computes the five 0-100 company scores for a batch. It is
// stateless across batches; the bounds passed to Score carry all batch-wide
// context.
type Calculator struct {
	weights ComponentWeights
	logger  *slog.Logger
}

// NewCalculator creates a calculator with the given component weights.
func NewCalculator(weights ComponentWeights, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{weights: weights, logger: logger}
}

// Normalize maps value into [0,1] relative to [min,max]. A degenerate range
// yields 0 rather than dividing by zero.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (value - min) / (max - min)
}

// Score fills the Scores field of every company in place over the slice it
// returns. Theme flags must already be set, since the brand/trend score
// carries a keyword bonus.
func (c *Calculator) Score(ctx context.Context, companies []domain.ScoredCompany, bounds Bounds) []domain.ScoredCompany {
	bounds = bounds.WithFloors()

	for i := range companies {
		companies[i].Scores = c.scoreOne(&companies[i], bounds)
	}

	c.logger.InfoContext(ctx, "scored batch",
		slog.Int("companies", len(companies)),
		slog.Float64("max_amount", bounds.MaxAmount),
		slog.Float64("max_rank", bounds.MaxRank))
	return companies
}

func (c *Calculator) scoreOne(company *domain.ScoredCompany, b Bounds) domain.Scores {
	w := c.weights

	funding := 100 * (w.FundingAmount*Normalize(company.FundingAmountUSD, b.MinAmount, b.MaxAmount) +
		w.FundingRounds*Normalize(float64(company.FundingRounds), 0, b.MaxRounds))

	headcount := company.EmployeeMedian
	if headcount > headcountCap {
		headcount = headcountCap
	}
	active := 0.0
	if company.OperatingStatus == "Active" {
		active = 1.0
	}
	operations := 100 * (w.Headcount*(headcount/headcountCap) + w.Activity*active)

	bonus := 0.0
	if company.Themes.Any() {
		bonus = keywordBonus
	}
	// Lower rank numbers are better, hence the inversion.
	brand := w.RankInverse*(1-Normalize(float64(company.Rank), b.MinRank, b.MaxRank)) +
		w.Articles*Normalize(float64(company.ArticleCount), 0, b.MaxArticles) +
		w.ThemeBonus*bonus
	if brand > 1 {
		brand = 1
	}
	brandTrend := 100 * brand

	potential := 100 * (w.Stage*StageScore(company.FundingStage) +
		w.PotentialFund*(funding/100) +
		w.PotentialBrand*(brandTrend/100))

	return domain.Scores{
		Funding:       funding,
		Operations:    operations,
		BrandTrend:    brandTrend,
		Potential:     potential,
		Comprehensive: (funding + operations + brandTrend + potential) / 4,
	}
}
