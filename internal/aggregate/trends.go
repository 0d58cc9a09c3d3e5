// Package aggregate builds the batch-wide rollups: thematic market share by
// founding year and financing-entity activity. Both passes use transient
// local accumulators scoped to one call — nothing leaks between batches.
package aggregate

import (
	"math"
	"sort"
	"time"

	"venturescope/pkg/contracts/domain"
)

// trendFloorYear is exclusive: only companies founded after it enter the
// trend aggregation. Companies outside the range stay in every other output.
const trendFloorYear = 1990

// Trends buckets classified companies by founding year and computes the
// percentage of each bucket carrying each theme, rounded to one decimal.
// Buckets are emitted ascending by year; gap years are not synthesized.
func Trends(companies []domain.ScoredCompany, now time.Time) []domain.ThemeTrend {
	currentYear := now.Year()

	buckets := make(map[int][]domain.ThemeSet)
	for _, c := range companies {
		if c.FoundedYear <= trendFloorYear || c.FoundedYear > currentYear {
			continue
		}
		buckets[c.FoundedYear] = append(buckets[c.FoundedYear], c.Themes)
	}

	years := make([]int, 0, len(buckets))
	for year := range buckets {
		years = append(years, year)
	}
	sort.Ints(years)

	trends := make([]domain.ThemeTrend, 0, len(years))
	for _, year := range years {
		sets := buckets[year]
		trend := domain.ThemeTrend{Year: year}
		for _, theme := range domain.ThemeOrder {
			matching := 0
			for _, set := range sets {
				if set.Has(theme) {
					matching++
				}
			}
			trend.SetPercent(theme, round1(100*float64(matching)/float64(len(sets))))
		}
		trends = append(trends, trend)
	}
	return trends
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
