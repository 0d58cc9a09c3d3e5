package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"venturescope/pkg/contracts/domain"
)

// ParseResult holds the records parsed from one or more text blobs plus the
// count of rows discarded for a field-count mismatch.
type ParseResult struct {
	Records     []domain.RawRecord
	RowsDropped int
}

// ParseText parses one raw delimited text blob into an ordered sequence of
// records. The first non-blank line is the header row. Data rows whose field
// count does not match the header are silently discarded; only the dropped
// count is surfaced. Malformed input never produces an error.
func ParseText(data string) ParseResult {
	var result ParseResult

	lines := make([]string, 0, strings.Count(data, "\n")+1)
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) < 2 {
		return result
	}

	header := splitLine(lines[0])
	for _, line := range lines[1:] {
		fields := splitLine(line)
		if len(fields) != len(header) {
			result.RowsDropped++
			continue
		}
		rec := domain.NewRawRecord(len(header))
		for i, col := range header {
			rec.Set(col, fields[i])
		}
		result.Records = append(result.Records, rec)
	}
	return result
}

// splitLine scans one line character by character, tracking quote state so a
// comma inside an open quote stays part of the field.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			fields = append(fields, cleanField(current.String()))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	fields = append(fields, cleanField(current.String()))
	return fields
}

// cleanField trims whitespace and strips a single pair of wrapping quotes.
func cleanField(field string) string {
	field = strings.TrimSpace(field)
	if len(field) >= 2 && strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`) {
		field = field[1 : len(field)-1]
	}
	return strings.TrimSpace(field)
}

// ParseFiles parses multiple uploaded blobs concurrently and concatenates
// their record sequences in input order. Each parse is pure and file-local,
// so scheduling never changes the output.
func ParseFiles(ctx context.Context, logger *slog.Logger, blobs []string) ParseResult {
	var merged ParseResult
	for _, r := range parsePerFile(ctx, logger, blobs) {
		merged.Records = append(merged.Records, r.Records...)
		merged.RowsDropped += r.RowsDropped
	}
	return merged
}

// parsePerFile runs one goroutine per blob and returns the per-file results
// in input order.
func parsePerFile(ctx context.Context, logger *slog.Logger, blobs []string) []ParseResult {
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]ParseResult, len(blobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, blob := range blobs {
		g.Go(func() error {
			results[i] = ParseText(blob)
			return nil
		})
	}
	// Parsing is total; the group exists only for scheduling.
	_ = g.Wait()

	for i, r := range results {
		logger.DebugContext(gctx, "parsed upload",
			slog.Int("file_index", i),
			slog.Int("records", len(r.Records)),
			slog.Int("rows_dropped", r.RowsDropped))
	}
	return results
}
