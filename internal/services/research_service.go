package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"venturescope/internal/config"
	"venturescope/pkg/contracts/domain"
)

// PlaceholderResearch is returned when the research collaborator is not
// configured or fails.
var PlaceholderResearch = domain.ResearchResult{
	Text: "Live research is currently unavailable.",
}

const maxResearchResults = 5

// ResearchService is the boundary to the citation-backed research
// collaborator: given an entity name and a context tag, it returns free
// text plus a list of sources. Like the narrative boundary, it never
// returns an error to the caller.
type ResearchService struct {
	cfg    config.ResearchConfig
	svc    *customsearch.Service
	logger *slog.Logger
}

// NewResearchService creates the research boundary. A missing API key is
// not an error: the service degrades to the placeholder payload.
func NewResearchService(cfg config.ResearchConfig, logger *slog.Logger) *ResearchService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &ResearchService{cfg: cfg, logger: logger}

	if cfg.APIKey != "" && cfg.EngineID != "" {
		svc, err := customsearch.NewService(context.Background(), option.WithAPIKey(cfg.APIKey))
		if err != nil {
			logger.Warn("research collaborator unavailable", slog.String("error", err.Error()))
		} else {
			s.svc = svc
		}
	}
	return s
}

// Research looks the entity up and returns text plus citations.
func (s *ResearchService) Research(ctx context.Context, name string, rctx domain.ResearchContext) domain.ResearchResult {
	if s.svc == nil {
		return PlaceholderResearch
	}

	query := name
	switch rctx {
	case domain.ResearchContextInvestor:
		query = fmt.Sprintf("%s venture capital investor", name)
	default:
		query = fmt.Sprintf("%s company startup", name)
	}

	resp, err := s.svc.Cse.List().
		Q(query).
		Cx(s.cfg.EngineID).
		Num(maxResearchResults).
		Context(ctx).
		Do()
	if err != nil {
		s.logger.WarnContext(ctx, "research lookup failed",
			slog.String("name", name),
			slog.String("context", string(rctx)),
			slog.String("error", err.Error()))
		return PlaceholderResearch
	}
	if len(resp.Items) == 0 {
		return PlaceholderResearch
	}

	var snippets []string
	citations := make([]domain.Citation, 0, len(resp.Items))
	for _, item := range resp.Items {
		if snippet := strings.TrimSpace(item.Snippet); snippet != "" {
			snippets = append(snippets, snippet)
		}
		citations = append(citations, domain.Citation{
			Title:     item.Title,
			SourceURI: item.Link,
		})
	}
	return domain.ResearchResult{
		Text:      strings.Join(snippets, " "),
		Citations: citations,
	}
}
