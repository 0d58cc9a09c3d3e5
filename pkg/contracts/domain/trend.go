package domain

// ThemeTrend holds per-theme market share for one founding year: the
// percentage of companies founded that year carrying each theme tag.
// Themes are non-exclusive, so the six values need not total 100.
type ThemeTrend struct {
	Year       int     `json:"year"`
	AI         float64 `json:"ai"`
	Climate    float64 `json:"climate"`
	Fintech    float64 `json:"fintech"`
	Healthcare float64 `json:"healthcare"`
	SaaS       float64 `json:"saas"`
	Consumer   float64 `json:"consumer"`
}

// Percent returns the percentage for a theme, or 0 for an unknown theme.
func (t ThemeTrend) Percent(theme Theme) float64 {
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
		return 0
	}
}

// SetPercent stores the percentage for a theme.
func (t *ThemeTrend) SetPercent(theme Theme, pct float64) {
	switch theme {
	case ThemeAI:
		t.AI = pct
	case ThemeClimate:
		t.Climate = pct
	case ThemeFintech:
		t.Fintech = pct
	case ThemeHealthcare:
		t.Healthcare = pct
	case ThemeSaaS:
		t.SaaS = pct
	case ThemeConsumer:
		t.Consumer = pct
	}
}
