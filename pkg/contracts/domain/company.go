package domain

import (
	"strings"
	"time"
)

// RawRecord is one parsed row of an uploaded dataset: an insertion-ordered
// mapping from column name to raw string value. The schema is open — unknown
// columns are preserved untouched for export passthrough.
type RawRecord struct {
	Columns []string          `json:"columns"`
	Fields  map[string]string `json:"fields"`
}

// NewRawRecord creates an empty record with capacity for n columns.
func NewRawRecord(n int) RawRecord {
	return RawRecord{
		Columns: make([]string, 0, n),
		Fields:  make(map[string]string, n),
	}
}

// Get returns the value for a column, or "" when the column is absent.
func (r RawRecord) Get(column string) string {
	return r.Fields[column]
}

// Set stores a value, appending the column to the order on first write.
func (r *RawRecord) Set(column, value string) {
	if _, exists := r.Fields[column]; !exists {
		r.Columns = append(r.Columns, column)
	}
	r.Fields[column] = value
}

// Clone returns an independent copy of the record.
func (r RawRecord) Clone() RawRecord {
	out := RawRecord{
		Columns: make([]string, len(r.Columns)),
		Fields:  make(map[string]string, len(r.Fields)),
	}
	copy(out.Columns, r.Columns)
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Lookup returns the trimmed value of the first column matching one of the
// candidate names. Candidates are lower case; an exact (case-insensitive)
// column name match is preferred, then a substring match, so "organization
// name" still resolves against a "Organization Name URL"-style header only
// when nothing better exists.
func (r RawRecord) Lookup(candidates ...string) string {
	for _, cand := range candidates {
		for _, col := range r.Columns {
			if strings.ToLower(strings.TrimSpace(col)) == cand {
				return strings.TrimSpace(r.Fields[col])
			}
		}
	}
	for _, cand := range candidates {
		for _, col := range r.Columns {
			if strings.Contains(strings.ToLower(col), cand) {
				return strings.TrimSpace(r.Fields[col])
			}
		}
	}
	return ""
}

// ScoreCategory identifies one of the five company score dimensions.
type ScoreCategory string

const (
	ScoreFunding       ScoreCategory = "funding"
	ScoreOperations    ScoreCategory = "operations"
	ScoreBrandTrend    ScoreCategory = "brand_trend"
	ScorePotential     ScoreCategory = "potential"
	ScoreComprehensive ScoreCategory = "comprehensive"
)

// Scores holds the five 0-100 company scores.
type Scores struct {
	Funding       float64 `json:"funding"`
	Operations    float64 `json:"operations"`
	BrandTrend    float64 `json:"brand_trend"`
	Potential     float64 `json:"potential"`
	Comprehensive float64 `json:"comprehensive"`
}

// ByCategory looks up a score by category name. The second return value is
// false for an unknown category.
func (s Scores) ByCategory(c ScoreCategory) (float64, bool) {
	switch c {
	case ScoreFunding:
		return s.Funding, true
	case ScoreOperations:
		return s.Operations, true
	case ScoreBrandTrend:
		return s.BrandTrend, true
	case ScorePotential:
		return s.Potential, true
	case ScoreComprehensive:
		return s.Comprehensive, true
	default:
		return 0, false
	}
}

// Theme is one of the six fixed sector tags.
type Theme string

const (
	ThemeAI         Theme = "ai"
	ThemeClimate    Theme = "climate"
	ThemeFintech    Theme = "fintech"
	ThemeHealthcare Theme = "healthcare"
	ThemeSaaS       Theme = "saas"
	ThemeConsumer   Theme = "consumer"
)

// ThemeOrder is the fixed category priority order used for tie-breaking.
var ThemeOrder = [...]Theme{
	ThemeAI, ThemeClimate, ThemeFintech, ThemeHealthcare, ThemeSaaS, ThemeConsumer,
}

// ThemeSet holds the six independent theme flags for a company. Multiple
// flags may be set; none set is valid.
type ThemeSet struct {
	AI         bool `json:"ai"`
	Climate    bool `json:"climate"`
	Fintech    bool `json:"fintech"`
	Healthcare bool `json:"healthcare"`
	SaaS       bool `json:"saas"`
	Consumer   bool `json:"consumer"`
}

// Has reports whether the given theme flag is set.
func (t ThemeSet) Has(theme Theme) bool {
	switch theme {
	case ThemeAI:
		return t.AI
	case ThemeClimate:
		return t.Climate
	case ThemeFintech:
		return t.Fintech
	case ThemeHealthcare:
		return t.Healthcare
	case ThemeSaaS:
		return t.SaaS
	case ThemeConsumer:
		return t.Consumer
	default:
		return false
	}
}

// Set turns the given theme flag on.
func (t *ThemeSet) Set(theme Theme) {
	switch theme {
	case ThemeAI:
		t.AI = true
	case ThemeClimate:
		t.Climate = true
	case ThemeFintech:
		t.Fintech = true
	case ThemeHealthcare:
		t.Healthcare = true
	case ThemeSaaS:
		t.SaaS = true
	case ThemeConsumer:
		t.Consumer = true
	}
}

// Active returns the set themes in the fixed priority order.
func (t ThemeSet) Active() []Theme {
	var out []Theme
	for _, theme := range ThemeOrder {
		if t.Has(theme) {
			out = append(out, theme)
		}
	}
	return out
}

// Any reports whether at least one theme flag is set.
func (t ThemeSet) Any() bool {
	return t.AI || t.Climate || t.Fintech || t.Healthcare || t.SaaS || t.Consumer
}

// StatusColor tags an acquisition status for display.
type StatusColor string

const (
	StatusColorRed   StatusColor = "red"   // closed
	StatusColorAmber StatusColor = "amber" // acquired
)

// AcquisitionStatus flags a company that has been acquired or has closed.
type AcquisitionStatus struct {
	IsAcquiredOrClosed bool        `json:"is_acquired_or_closed"`
	Label              string      `json:"label"`
	Color              StatusColor `json:"color"`
}

// ScoredCompany is one fully processed company: the raw row plus the typed
// fields derived from it during normalization, scoring and classification.
type ScoredCompany struct {
	ID  string    `json:"id" validate:"required,uuid"`
	Raw RawRecord `json:"raw"`

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Normalized numerics, defaulted when the raw field is absent or
	// unparseable.
	FundingAmountUSD float64 `json:"funding_amount_usd"`
	ArticleCount     int     `json:"article_count"`
	Rank             int     `json:"rank"`
	FundingRounds    int     `json:"funding_rounds"`
	EmployeeMedian   float64 `json:"employee_median"`
	FoundedYear      int     `json:"founded_year,omitempty"` // 0 when unknown
	OperatingStatus  string  `json:"operating_status"`
	FundingStage     string  `json:"funding_stage,omitempty"`

	Scores      Scores             `json:"scores"`
	Themes      ThemeSet           `json:"themes"`
	Acquisition *AcquisitionStatus `json:"acquisition,omitempty"`
}

// AnalysisResult is the full output of one batch run. A new batch replaces
// the prior result set entirely; nothing here is shared between runs.
type AnalysisResult struct {
	ID          string          `json:"id" validate:"required,uuid"`
	GeneratedAt time.Time       `json:"generated_at"`
	Companies   []ScoredCompany `json:"companies"`
	Trends      []ThemeTrend    `json:"trends"`
	Investors   []InvestorStat  `json:"investors"`

	// RowsDropped counts input rows discarded for a header/field count
	// mismatch. Diagnostic only, never an error.
	RowsDropped int `json:"rows_dropped"`
}
