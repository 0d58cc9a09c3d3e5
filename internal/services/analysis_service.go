// Package services implements the application service layer between the
// HTTP transport and the processing pipeline, plus the boundaries to the
// external generative-text collaborators.
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"venturescope/internal/dataprocessing"
	"venturescope/internal/exporter"
	"venturescope/internal/infrastructure"
	"venturescope/internal/scoring"
	"venturescope/pkg/contracts/domain"
)

// AnalysisService owns the pipeline and the current batch result. A new
// batch fully replaces the prior one; nothing persists between restarts.
type AnalysisService struct {
	processor *dataprocessing.Processor
	metrics   *infrastructure.BusinessMetrics
	logger    *slog.Logger

	mu      sync.RWMutex
	current *domain.AnalysisResult
}

// NewAnalysisService creates the analysis service with default scoring
// weights. Metrics may be nil.
func NewAnalysisService(logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		processor: dataprocessing.NewProcessor(scoring.DefaultWeights(), logger),
		metrics:   metrics,
		logger:    logger,
	}
}

// SetStageFunc forwards pipeline stage notifications, e.g. to a progress
// broadcaster.
func (s *AnalysisService) SetStageFunc(fn dataprocessing.StageFunc) {
	s.processor.SetStageFunc(fn)
}

// Analyze runs one batch through the pipeline and stores it as the current
// result.
func (s *AnalysisService) Analyze(ctx context.Context, inputs []dataprocessing.Input) *domain.AnalysisResult {
	start := time.Now()
	result := s.processor.Process(ctx, inputs)

	s.mu.Lock()
	s.current = result
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.BatchesProcessed.Add(ctx, 1)
		s.metrics.BatchRowsDropped.Add(ctx, int64(result.RowsDropped))
		s.metrics.BatchDuration.Record(ctx, time.Since(start).Seconds())
	}
	return result
}

// Result returns the current batch when its ID matches.
func (s *AnalysisService) Result(id string) (*domain.AnalysisResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || s.current.ID != id {
		return nil, false
	}
	return s.current, true
}

// Company looks a company up in the current batch.
func (s *AnalysisService) Company(batchID, companyID string) (domain.ScoredCompany, bool) {
	result, ok := s.Result(batchID)
	if !ok {
		return domain.ScoredCompany{}, false
	}
	for _, c := range result.Companies {
		if c.ID == companyID {
			return c, true
		}
	}
	return domain.ScoredCompany{}, false
}

// Investor looks a financing entity up in the current batch.
func (s *AnalysisService) Investor(batchID, name string) (domain.InvestorStat, bool) {
	result, ok := s.Result(batchID)
	if !ok {
		return domain.InvestorStat{}, false
	}
	for _, inv := range result.Investors {
		if inv.Name == name {
			return inv, true
		}
	}
	return domain.InvestorStat{}, false
}

// Export renders the current batch as the fixed-layout CSV export.
func (s *AnalysisService) Export(id string) (string, bool) {
	result, ok := s.Result(id)
	if !ok {
		return "", false
	}
	return exporter.Marshal(result.Companies), true
}
