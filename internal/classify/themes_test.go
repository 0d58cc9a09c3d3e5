package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"venturescope/pkg/contracts/domain"
)

func TestThemes(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        domain.ThemeSet
	}{
		{
			name:        "ai and saas",
			description: "An AI-powered SaaS platform for supply chains.",
			want:        domain.ThemeSet{AI: true, SaaS: true},
		},
		{
			name:        "short token not matched inside a word",
			description: "Sustainable packaging for retailers.",
			want:        domain.ThemeSet{Climate: true, Consumer: true},
		},
		{
			name:        "prefix match on long terms",
			description: "Digital healthcare and payments infrastructure.",
			want:        domain.ThemeSet{Healthcare: true, Fintech: true},
		},
		{
			name:        "case insensitive",
			description: "MACHINE LEARNING for CLINICAL trials",
			want:        domain.ThemeSet{AI: true, Healthcare: true},
		},
		{
			name:        "no matches",
			description: "Industrial welding equipment manufacturer.",
			want:        domain.ThemeSet{},
		},
		{
			name:        "empty description",
			description: "",
			want:        domain.ThemeSet{},
		},
		{
			name:        "crypto and marketplace",
			description: "A crypto marketplace for digital art.",
			want:        domain.ThemeSet{Fintech: true, Consumer: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Themes(tt.description))
		})
	}
}

func TestContainsTerm(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"token at start", "ai for finance", "ai", true},
		{"token after hyphen", "an ai-first product", "ai", true},
		{"short term inside a word", "sustainable", "ai", false},
		{"short term at word end", "bonsai trees", "ai", false},
		{"long term as prefix", "healthcare records", "health", true},
		{"long term inside a word", "unhealthy habits", "health", false},
		{"exact at end of text", "powered by ai", "ai", true},
		{"absent", "logistics software", "ai", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsTerm(tt.text, tt.term))
		})
	}
}

func TestClassifyAll(t *testing.T) {
	companies := []domain.ScoredCompany{
		{Description: "Generative AI assistants"},
		{Description: "Solar panel installer"},
	}

	ClassifyAll(companies)

	assert.True(t, companies[0].Themes.AI)
	assert.False(t, companies[0].Themes.Climate)
	assert.True(t, companies[1].Themes.Climate)
	assert.False(t, companies[1].Themes.AI)
}
