package domain

// CompanyNarrative is the free-text elaboration produced for one company by
// the external generative-text collaborator. The core treats all three
// fields as opaque text.
type CompanyNarrative struct {
	ExecutiveSummary  string `json:"executive_summary"`
	InvestmentVerdict string `json:"investment_verdict"`
	CompetitiveEdge   string `json:"competitive_edge"`
}

// InvestorNarrative is the generative elaboration for one financing entity.
type InvestorNarrative struct {
	InvestmentThesis     string `json:"investment_thesis"`
	PortfolioComposition string `json:"portfolio_composition"`
	StrategicFocus       string `json:"strategic_focus"`
}

// ResearchContext tags a research request with the kind of entity it names.
type ResearchContext string

const (
	ResearchContextCompany  ResearchContext = "company"
	ResearchContextInvestor ResearchContext = "investor"
)

// Citation is one source link returned by the research collaborator.
type Citation struct {
	Title     string `json:"title"`
	SourceURI string `json:"source_uri"`
}

// ResearchResult is free text plus the sources backing it.
type ResearchResult struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}
