package dataprocessing

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"venturescope/internal/aggregate"
	"venturescope/internal/classify"
	"venturescope/internal/scoring"
	"venturescope/pkg/contracts/domain"
)

// Input is one uploaded dataset: raw delimited text or an .xlsx workbook.
type Input struct {
	Name string
	Data []byte
}

// StageFunc receives pipeline stage notifications. Progress display is the
// caller's concern; the pipeline only reports where it is.
type StageFunc func(stage string)

// Processor runs the full batch pipeline: parse, normalize, classify, score,
// rank and aggregate. Each call is independent and stateless; a new batch
// fully replaces any prior result.
type Processor struct {
	calculator *scoring.Calculator
	logger     *slog.Logger
	now        func() time.Time
	onStage    StageFunc
}

// NewProcessor creates a processor scoring with the given weights.
func NewProcessor(weights scoring.ComponentWeights, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		calculator: scoring.NewCalculator(weights, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// SetStageFunc registers a stage notification callback.
func (p *Processor) SetStageFunc(fn StageFunc) { p.onStage = fn }

// SetClock overrides the clock, for tests that pin the current year.
func (p *Processor) SetClock(now func() time.Time) { p.now = now }

// Process runs one batch through the whole pipeline. Malformed data never
// fails the run — bad rows are dropped and counted, bad fields default.
func (p *Processor) Process(ctx context.Context, inputs []Input) *domain.AnalysisResult {
	start := p.now()

	p.stage("parse")
	parsed := p.parseInputs(ctx, inputs)

	p.stage("normalize")
	companies, bounds := NormalizeBatch(parsed.Records)

	p.stage("classify")
	classify.ClassifyAll(companies)

	p.stage("score")
	companies = p.calculator.Score(ctx, companies, bounds)
	classify.DetectAll(companies)

	// The comprehensive-score ordering defines "rank" everywhere
	// downstream: table display and export alike.
	sort.SliceStable(companies, func(i, j int) bool {
		return companies[i].Scores.Comprehensive > companies[j].Scores.Comprehensive
	})
	for i := range companies {
		companies[i].ID = uuid.NewString()
	}

	p.stage("aggregate")
	result := &domain.AnalysisResult{
		ID:          uuid.NewString(),
		GeneratedAt: p.now(),
		Companies:   companies,
		Trends:      aggregate.Trends(companies, p.now()),
		Investors:   aggregate.Investors(companies),
		RowsDropped: parsed.RowsDropped,
	}

	p.logger.InfoContext(ctx, "batch processed",
		slog.String("batch_id", result.ID),
		slog.Int("companies", len(result.Companies)),
		slog.Int("trend_years", len(result.Trends)),
		slog.Int("investors", len(result.Investors)),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Duration("elapsed", p.now().Sub(start)))
	return result
}

// parseInputs parses every upload and concatenates the record sequences in
// input order. Text blobs parse concurrently via ParseFiles; a workbook
// that cannot be opened is logged and skipped rather than failing the batch.
func (p *Processor) parseInputs(ctx context.Context, inputs []Input) ParseResult {
	perInput := make([]ParseResult, len(inputs))

	var texts []string
	var textIdx []int
	for i, in := range inputs {
		if !isWorkbook(in) {
			texts = append(texts, string(in.Data))
			textIdx = append(textIdx, i)
			continue
		}
		r, err := ParseWorkbook(strings.NewReader(string(in.Data)))
		if err != nil {
			p.logger.WarnContext(ctx, "skipping unreadable workbook",
				slog.String("file", in.Name),
				slog.String("error", err.Error()))
			continue
		}
		perInput[i] = r
	}

	textResult := parsePerFile(ctx, p.logger, texts)
	for j, i := range textIdx {
		perInput[i] = textResult[j]
	}

	var merged ParseResult
	for _, r := range perInput {
		merged.Records = append(merged.Records, r.Records...)
		merged.RowsDropped += r.RowsDropped
	}
	return merged
}

func isWorkbook(in Input) bool {
	if strings.HasSuffix(strings.ToLower(in.Name), ".xlsx") {
		return true
	}
	// Zip container magic, for uploads without a useful file name.
	return len(in.Data) >= 2 && in.Data[0] == 'P' && in.Data[1] == 'K'
}

func (p *Processor) stage(name string) {
	if p.onStage != nil {
		p.onStage(name)
	}
}
