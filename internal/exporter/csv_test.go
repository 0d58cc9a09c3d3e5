package exporter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturescope/internal/dataprocessing"
	"venturescope/pkg/contracts/domain"
)

func exportCompany(name string, comprehensive float64) domain.ScoredCompany {
	rec := domain.NewRawRecord(3)
	rec.Set("Headquarters Location", "Berlin, Germany")
	rec.Set("Industries", "Software, AI")
	rec.Set("Website", "https://example.com")
	return domain.ScoredCompany{
		Name:        name,
		Description: "Builds things.",
		Raw:         rec,
		Scores: domain.Scores{
			Funding:       10,
			Operations:    20,
			BrandTrend:    30,
			Potential:     40,
			Comprehensive: comprehensive,
		},
	}
}

func TestMarshalHeader(t *testing.T) {
	out := Marshal(nil)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t,
		"Rank,Company Name,Comprehensive Score,Funding Score,Operations Score,Brand Trend Score,Potential Score,Location,Industries,Description,Website",
		lines[0])
}

func TestMarshalRow(t *testing.T) {
	out := Marshal([]domain.ScoredCompany{exportCompany("Acme", 25.0)})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)

	assert.Equal(t,
		`1,"Acme",25.00,10.00,20.00,30.00,40.00,"Berlin, Germany","Software, AI","Builds things.","https://example.com"`,
		lines[1])
}

func TestMarshalRankFollowsOrder(t *testing.T) {
	out := Marshal([]domain.ScoredCompany{
		exportCompany("First", 90),
		exportCompany("Second", 50),
		exportCompany("Third", 10),
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], `1,"First"`))
	assert.True(t, strings.HasPrefix(lines[2], `2,"Second"`))
	assert.True(t, strings.HasPrefix(lines[3], `3,"Third"`))
}

func TestMarshalQuoting(t *testing.T) {
	c := exportCompany(`Acme "The Best" Inc`, 1)
	out := Marshal([]domain.ScoredCompany{c})

	assert.Contains(t, out, `"Acme ""The Best"" Inc"`)
}

func TestMarshalTruncatesDescription(t *testing.T) {
	c := exportCompany("Acme", 1)
	c.Description = strings.Repeat("ü", 1500)
	out := Marshal([]domain.ScoredCompany{c})

	assert.Contains(t, out, `"`+strings.Repeat("ü", 1000)+`"`)
	assert.NotContains(t, out, strings.Repeat("ü", 1001))
}

// The export must survive a round trip through the upload parser: same row
// count, company names intact despite embedded commas and quotes.
func TestMarshalRoundTrip(t *testing.T) {
	companies := []domain.ScoredCompany{
		exportCompany("Acme, Inc", 90),
		exportCompany(`Globex "Global"`, 50),
	}

	result := dataprocessing.ParseText(Marshal(companies))
	require.Len(t, result.Records, 2)
	assert.Equal(t, 0, result.RowsDropped)
	assert.Equal(t, "Acme, Inc", result.Records[0].Get("Company Name"))
	assert.Equal(t, "25.00", result.Records[0].Get("Comprehensive Score"))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "13.40", formatScore(13.4))
	assert.Equal(t, "0.00", formatScore(0))
	assert.Equal(t, "100.00", formatScore(100))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "üü", truncate("üüü", 2))
}

func TestDefaultFileName(t *testing.T) {
	assert.Equal(t, "venturescope_analysis.csv", DefaultFileName("venturescope"))
}

func TestCSVWriterWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exports", "out.csv")

	w := NewCSVWriter(nil)
	err := w.WriteFile(path, []domain.ScoredCompany{exportCompany("Acme", 40)})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
	assert.Contains(t, string(data), `"Acme"`)

	w.BOMPrefix = false
	require.NoError(t, w.WriteFile(path, nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(string(data), "\xEF\xBB\xBF"))
}
