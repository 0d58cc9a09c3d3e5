// Package classify assigns thematic sector tags and acquisition status to
// normalized companies. Both passes are pure keyword/field inspection over
// one company at a time; they never fail.
package classify

import (
	"strings"

	"venturescope/pkg/contracts/domain"
)

// themeTerms lists the fixed keyword set per theme. Matching is
// case-insensitive; short terms (under four characters) match whole tokens
// only, longer terms also match as token prefixes so "payment" covers
// "payments" and "health" covers "healthcare".
var themeTerms = map[domain.Theme][]string{
	domain.ThemeAI: {
		"ai", "artificial intelligence", "machine learning", "deep learning",
		"llm", "nlp", "neural network", "computer vision", "generative",
	},
	domain.ThemeClimate: {
		"climate", "clean energy", "renewable", "solar", "carbon",
		"sustainable", "sustainability", "green energy", "decarbon",
	},
	domain.ThemeFintech: {
		"fintech", "payment", "banking", "lending", "insurtech", "insurance",
		"crypto", "blockchain", "wealth management", "neobank",
	},
	domain.ThemeHealthcare: {
		"health", "medical", "biotech", "pharma", "clinical", "therapeutic",
		"diagnostic", "telemedicine", "patient",
	},
	domain.ThemeSaaS: {
		"saas", "software as a service", "software-as-a-service",
		"cloud platform", "enterprise software", "subscription software",
		"workflow automation",
	},
	domain.ThemeConsumer: {
		"consumer", "e-commerce", "ecommerce", "retail", "marketplace",
		"d2c", "social media", "gaming", "mobile app",
	},
}

// Themes evaluates the six independent keyword predicates over the combined
// description text. Matches are not mutually exclusive; zero matches is
// valid.
func Themes(description string) domain.ThemeSet {
	text := strings.ToLower(description)

	var set domain.ThemeSet
	for _, theme := range domain.ThemeOrder {
		for _, term := range themeTerms[theme] {
			if containsTerm(text, term) {
				set.Set(theme)
				break
			}
		}
	}
	return set
}

// ClassifyAll tags every company in place.
func ClassifyAll(companies []domain.ScoredCompany) {
	for i := range companies {
		companies[i].Themes = Themes(companies[i].Description)
	}
}

// containsTerm reports whether term occurs in text at a token boundary.
// The character before a match must be a non-letter; short terms also
// require a non-letter after the match, so "ai" matches "ai-powered" but
// not "sustainable".
func containsTerm(text, term string) bool {
	for idx := 0; idx <= len(text)-len(term); {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := len(term) >= 4 || end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
	return false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
