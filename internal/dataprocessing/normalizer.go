package dataprocessing

import (
	"strconv"
	"strings"
	"time"

	"venturescope/internal/scoring"
	"venturescope/pkg/contracts/domain"
)

// Candidate column names for the known optional fields. Uploaded datasets
// vary in header wording, so each field resolves against a short preference
// list (exact match first, then substring — see domain.RawRecord.Lookup).
var (
	colsName        = []string{"organization name", "company name", "name"}
	colsDescription = []string{"description", "full description", "about"}
	colsFounded     = []string{"founded date", "founded", "founding date"}
	colsEmployees   = []string{"number of employees", "employees", "employee count", "headcount"}
	colsAmount      = []string{"total funding amount", "total funding amount (in usd)", "funding amount", "total funding"}
	colsRounds      = []string{"number of funding rounds", "funding rounds"}
	colsStatus      = []string{"operating status", "status"}
	colsStage       = []string{"last funding type", "funding stage", "stage"}
	colsRank        = []string{"cb rank (company)", "cb rank", "rank"}
	colsArticles    = []string{"number of articles", "articles", "article count"}
)

// defaultWorstRank is assigned when the rank field is absent or unparseable.
// Lower rank numbers are better, so the default sorts last.
const defaultWorstRank = 100000

// NormalizeRecord derives the typed numeric and date fields from one raw
// record. Every parse failure falls back to a documented default; nothing
// here returns an error.
func NormalizeRecord(rec domain.RawRecord) domain.ScoredCompany {
	shortDesc := rec.Lookup("description")
	longDesc := rec.Lookup("full description")
	desc := strings.TrimSpace(shortDesc)
	if longDesc != "" && longDesc != shortDesc {
		if desc != "" {
			desc += " "
		}
		desc += longDesc
	}
	if desc == "" {
		desc = rec.Lookup(colsDescription...)
	}

	status := rec.Lookup(colsStatus...)
	if status == "" {
		status = "Active"
	}

	return domain.ScoredCompany{
		Raw:              rec,
		Name:             rec.Lookup(colsName...),
		Description:      desc,
		FundingAmountUSD: parseAmount(rec.Lookup(colsAmount...)),
		ArticleCount:     parseIntDefault(rec.Lookup(colsArticles...), 0),
		Rank:             parseIntDefault(rec.Lookup(colsRank...), defaultWorstRank),
		FundingRounds:    parseIntDefault(rec.Lookup(colsRounds...), 1),
		EmployeeMedian:   parseEmployeeRange(rec.Lookup(colsEmployees...)),
		FoundedYear:      parseFoundedYear(rec.Lookup(colsFounded...)),
		OperatingStatus:  status,
		FundingStage:     rec.Lookup(colsStage...),
	}
}

// NormalizeBatch normalizes every record and reduces the batch-wide bounds
// used by score normalization.
func NormalizeBatch(records []domain.RawRecord) ([]domain.ScoredCompany, scoring.Bounds) {
	companies := make([]domain.ScoredCompany, 0, len(records))
	for _, rec := range records {
		companies = append(companies, NormalizeRecord(rec))
	}
	return companies, computeBounds(companies)
}

// computeBounds reduces min/max over the derived numerics, with floors so
// normalization never divides by zero on a degenerate batch.
func computeBounds(companies []domain.ScoredCompany) scoring.Bounds {
	b := scoring.Bounds{
		MinRank: defaultWorstRank,
	}
	first := true
	for _, c := range companies {
		if first {
			b.MinAmount = c.FundingAmountUSD
			b.MinRank = float64(c.Rank)
			first = false
		}
		b.MinAmount = minf(b.MinAmount, c.FundingAmountUSD)
		b.MaxAmount = maxf(b.MaxAmount, c.FundingAmountUSD)
		b.MinRank = minf(b.MinRank, float64(c.Rank))
		b.MaxRank = maxf(b.MaxRank, float64(c.Rank))
		b.MaxArticles = maxf(b.MaxArticles, float64(c.ArticleCount))
		b.MaxRounds = maxf(b.MaxRounds, float64(c.FundingRounds))
	}
	return b.WithFloors()
}

// parseAmount parses a funding amount, tolerating currency symbols and
// digit grouping. Defaults to 0.
func parseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return val
}

// parseIntDefault parses a possibly comma-grouped integer field.
func parseIntDefault(s string, def int) int {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return def
	}
	val, err := strconv.Atoi(cleaned)
	if err != nil {
		return def
	}
	return val
}

// parseEmployeeRange derives a headcount median from a range string:
// "1000+" yields 1010, "11-50" yields 30.5, a bare number parses directly,
// and absence yields 0.
func parseEmployeeRange(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	if strings.HasSuffix(s, "+") {
		base, err := strconv.ParseFloat(strings.TrimSuffix(s, "+"), 64)
		if err != nil {
			return 0
		}
		return base + 10
	}
	if lo, hi, ok := strings.Cut(s, "-"); ok {
		low, errLo := strconv.ParseFloat(strings.TrimSpace(lo), 64)
		high, errHi := strconv.ParseFloat(strings.TrimSpace(hi), 64)
		if errLo != nil || errHi != nil {
			return 0
		}
		return (low + high) / 2
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val
}

// foundedLayouts are tried in order when parsing a founding date.
var foundedLayouts = []string{
	"2006-01-02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"01/02/2006",
	"Jan 2006",
	"2006",
}

// parseFoundedYear extracts a founding year, or 0 when no date can be read.
func parseFoundedYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	for _, layout := range foundedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	// Last resort: any plausible four-digit year in the string.
	for i := 0; i+4 <= len(s); i++ {
		if (strings.HasPrefix(s[i:], "19") || strings.HasPrefix(s[i:], "20")) && isDigits(s[i:i+4]) {
			if i+4 == len(s) || !isDigit(s[i+4]) {
				year, _ := strconv.Atoi(s[i : i+4])
				return year
			}
		}
	}
	return 0
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
