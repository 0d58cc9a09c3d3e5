package aggregate

import (
	"sort"
	"strings"

	"venturescope/pkg/contracts/domain"
)

// The three differently-sourced financing-entity columns, concatenated per
// company before splitting.
var investorColumns = [][]string{
	{"top 5 investors"},
	{"lead investors"},
	{"investors", "investor names"},
}

const (
	minInvestorNameLen = 3
	maxInvestors       = 50
	maxTopThemes       = 3
)

// investorAccumulator is the per-call mutable state for one aggregation
// pass. It is constructed and discarded inside Investors.
type investorAccumulator struct {
	counts      map[string]int
	themeTally  map[string]map[domain.Theme]int
	portfolio   map[string][]domain.PortfolioEntry
	inPortfolio map[string]map[string]bool
	order       []string
}

// Investors rolls financing-entity activity up across the batch: per-entity
// deal counts, a deduplicated portfolio, and the top themes by occurrence.
// The result is sorted by count descending and capped to the 50 most active
// entities.
func Investors(companies []domain.ScoredCompany) []domain.InvestorStat {
	acc := &investorAccumulator{
		counts:      make(map[string]int),
		themeTally:  make(map[string]map[domain.Theme]int),
		portfolio:   make(map[string][]domain.PortfolioEntry),
		inPortfolio: make(map[string]map[string]bool),
	}

	for _, c := range companies {
		for _, name := range extractInvestorNames(c.Raw) {
			acc.record(name, c)
		}
	}

	stats := make([]domain.InvestorStat, 0, len(acc.order))
	for _, name := range acc.order {
		stats = append(stats, domain.InvestorStat{
			Name:      name,
			Count:     acc.counts[name],
			TopThemes: topThemes(acc.themeTally[name]),
			Portfolio: acc.portfolio[name],
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})
	if len(stats) > maxInvestors {
		stats = stats[:maxInvestors]
	}
	return stats
}

// record books one deal for an entity: the global count, the company into
// the portfolio (once per company name), and the company's themes into the
// entity's tally.
func (acc *investorAccumulator) record(name string, c domain.ScoredCompany) {
	if _, seen := acc.counts[name]; !seen {
		acc.order = append(acc.order, name)
		acc.themeTally[name] = make(map[domain.Theme]int)
		acc.inPortfolio[name] = make(map[string]bool)
	}
	acc.counts[name]++

	if !acc.inPortfolio[name][c.Name] {
		acc.inPortfolio[name][c.Name] = true
		acc.portfolio[name] = append(acc.portfolio[name], domain.PortfolioEntry{
			CompanyName: c.Name,
			Themes:      c.Themes.Active(),
		})
	}
	for _, theme := range c.Themes.Active() {
		acc.themeTally[name][theme]++
	}
}

// extractInvestorNames concatenates the three financing-entity fields,
// splits on commas, cleans each candidate and deduplicates within the one
// company. A record with no financing fields yields an empty contribution.
func extractInvestorNames(rec domain.RawRecord) []string {
	var parts []string
	for _, candidates := range investorColumns {
		if v := rec.Lookup(candidates...); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, raw := range strings.Split(strings.Join(parts, ","), ",") {
		name := strings.Trim(strings.TrimSpace(raw), `"`)
		name = strings.TrimSpace(name)
		if len(name) < minInvestorNameLen {
			continue
		}
		if strings.Contains(strings.ToLower(name), "undisclosed") {
			continue
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// topThemes returns the themes with nonzero tally, most frequent first,
// ties broken by the fixed category priority order, truncated to three.
func topThemes(tally map[domain.Theme]int) []domain.Theme {
	var themes []domain.Theme
	for _, theme := range domain.ThemeOrder {
		if tally[theme] > 0 {
			themes = append(themes, theme)
		}
	}
	// ThemeOrder pre-sorts ties; a stable sort on tally keeps that order.
	sort.SliceStable(themes, func(i, j int) bool {
		return tally[themes[i]] > tally[themes[j]]
	})
	if len(themes) > maxTopThemes {
		themes = themes[:maxTopThemes]
	}
	return themes
}
