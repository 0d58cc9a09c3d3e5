// Package exporter serializes scored companies back to delimited text. The
// column order and encoding are a hard compatibility contract for any
// downstream tool consuming the export.
package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"venturescope/pkg/contracts/domain"
)

// header is the fixed 11-column export layout.
var header = []string{
	"Rank",
	"Company Name",
	"Comprehensive Score",
	"Funding Score",
	"Operations Score",
	"Brand Trend Score",
	"Potential Score",
	"Location",
	"Industries",
	"Description",
	"Website",
}

var (
	colsLocation   = []string{"headquarters location", "headquarters", "location"}
	colsIndustries = []string{"industries", "industry", "categories"}
	colsWebsite    = []string{"website", "homepage url", "url"}
)

// DefaultFileName is the download name convention for the export.
func DefaultFileName(product string) string {
	return product + "_analysis.csv"
}

// Marshal renders the export text. Row order follows the input sequence,
// which the pipeline has already sorted by comprehensive score — the row
// position is the exported rank.
func Marshal(companies []domain.ScoredCompany) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')

	for i, c := range companies {
		fields := []string{
			strconv.Itoa(i + 1),
			quoteField(c.Name),
			formatScore(c.Scores.Comprehensive),
			formatScore(c.Scores.Funding),
			formatScore(c.Scores.Operations),
			formatScore(c.Scores.BrandTrend),
			formatScore(c.Scores.Potential),
			quoteField(c.Raw.Lookup(colsLocation...)),
			quoteField(c.Raw.Lookup(colsIndustries...)),
			quoteField(truncate(c.Description, maxDescriptionLen)),
			quoteField(c.Raw.Lookup(colsWebsite...)),
		}
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// CSVWriter writes export files to disk.
type CSVWriter struct {
	logger *slog.Logger

	// BOMPrefix adds a UTF-8 BOM so Excel recognizes the encoding.
	BOMPrefix bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger, BOMPrefix: true}
}

// WriteFile renders the export and writes it to path, creating parent
// directories as needed.
func (w *CSVWriter) WriteFile(path string, companies []domain.ScoredCompany) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	content := Marshal(companies)
	if w.BOMPrefix {
		content = "\xEF\xBB\xBF" + content
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	w.logger.Info("wrote export file",
		slog.String("path", path),
		slog.Int("companies", len(companies)))
	return nil
}
