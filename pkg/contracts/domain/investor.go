package domain

// PortfolioEntry records one company backed by a financing entity, with the
// theme tags the company carries.
type PortfolioEntry struct {
	CompanyName string  `json:"company_name"`
	Themes      []Theme `json:"themes,omitempty"`
}

// InvestorStat is the batch-wide rollup for one financing entity.
type InvestorStat struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1"`

	// TopThemes lists up to three themes with nonzero occurrence across
	// the portfolio, most frequent first; ties resolve in ThemeOrder.
	TopThemes []Theme `json:"top_themes,omitempty"`

	Portfolio []PortfolioEntry `json:"portfolio"`
}
