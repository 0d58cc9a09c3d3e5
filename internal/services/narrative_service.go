package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"venturescope/internal/config"
	"venturescope/internal/infrastructure"
	"venturescope/pkg/contracts/domain"
)

// Placeholder payloads returned when the generative collaborator is not
// configured or misbehaves. A collaborator failure must never propagate
// into the pipeline or block companies unrelated to the failed request.
var (
	PlaceholderCompanyNarrative = domain.CompanyNarrative{
		ExecutiveSummary:  "Narrative analysis is currently unavailable for this company.",
		InvestmentVerdict: "No verdict available.",
		CompetitiveEdge:   "No competitive assessment available.",
	}
	PlaceholderInvestorNarrative = domain.InvestorNarrative{
		InvestmentThesis:     "Narrative analysis is currently unavailable for this investor.",
		PortfolioComposition: "No portfolio summary available.",
		StrategicFocus:       "No strategic assessment available.",
	}
)

// NarrativeService is the boundary to the external generative-text
// collaborator. Its methods never return an error: every failure mode is
// caught here and converted into a fixed placeholder payload.
type NarrativeService struct {
	cfg     config.NarrativeConfig
	client  *http.Client
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// NewNarrativeService creates the narrative boundary. Metrics may be nil.
func NewNarrativeService(cfg config.NarrativeConfig, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) *NarrativeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NarrativeService{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		metrics: metrics,
		logger:  logger,
	}
}

// CompanyNarrative requests the three company narrative fields: executive
// summary, investment verdict and competitive-edge assessment.
func (s *NarrativeService) CompanyNarrative(ctx context.Context, c domain.ScoredCompany) domain.CompanyNarrative {
	prompt := companyPrompt(c)

	var out domain.CompanyNarrative
	if err := s.generateJSON(ctx, prompt, &out); err != nil {
		s.logger.WarnContext(ctx, "company narrative unavailable",
			slog.String("company", c.Name),
			slog.String("error", err.Error()))
		return PlaceholderCompanyNarrative
	}
	if out.ExecutiveSummary == "" {
		return PlaceholderCompanyNarrative
	}
	return out
}

// InvestorNarrative requests the three investor narrative fields:
// investment thesis, portfolio composition and strategic focus.
func (s *NarrativeService) InvestorNarrative(ctx context.Context, inv domain.InvestorStat) domain.InvestorNarrative {
	prompt := investorPrompt(inv)

	var out domain.InvestorNarrative
	if err := s.generateJSON(ctx, prompt, &out); err != nil {
		s.logger.WarnContext(ctx, "investor narrative unavailable",
			slog.String("investor", inv.Name),
			slog.String("error", err.Error()))
		return PlaceholderInvestorNarrative
	}
	if out.InvestmentThesis == "" {
		return PlaceholderInvestorNarrative
	}
	return out
}

// generateJSON sends one prompt and decodes the model's JSON reply into v.
func (s *NarrativeService) generateJSON(ctx context.Context, prompt string, v any) error {
	if s.metrics != nil {
		s.metrics.NarrativeRequests.Add(ctx, 1)
	}
	if s.cfg.APIKey == "" {
		return fmt.Errorf("narrative API key not configured")
	}

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), v); err != nil {
		return fmt.Errorf("malformed narrative response: %w", err)
	}
	return nil
}

// The request/response types mirror the generative endpoint's wire format.
type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
}

func (s *NarrativeService) generate(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimSuffix(s.cfg.BaseURL, "/"), s.cfg.Model, url.QueryEscape(s.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call collaborator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("collaborator returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty collaborator response")
	}
	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty collaborator response")
	}
	return text, nil
}

// companyPrompt builds the well-formed collaborator input from the fields
// the contract names: scores, stage, industry text and description.
func companyPrompt(c domain.ScoredCompany) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the startup %q.\n", c.Name)
	fmt.Fprintf(&b, "Scores (0-100): comprehensive %.1f, funding %.1f, operations %.1f, brand/trend %.1f, potential %.1f.\n",
		c.Scores.Comprehensive, c.Scores.Funding, c.Scores.Operations, c.Scores.BrandTrend, c.Scores.Potential)
	if c.FundingStage != "" {
		fmt.Fprintf(&b, "Funding stage: %s.\n", c.FundingStage)
	}
	if industries := c.Raw.Lookup("industries", "industry", "categories"); industries != "" {
		fmt.Fprintf(&b, "Industries: %s.\n", industries)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", c.Description)
	}
	b.WriteString(`Reply with JSON only: {"executive_summary": string, "investment_verdict": string, "competitive_edge": string}`)
	return b.String()
}

// investorPrompt builds the collaborator input from the investor rollup:
// deal count, top themes and portfolio listing.
func investorPrompt(inv domain.InvestorStat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the investor %q with %d deals in this dataset.\n", inv.Name, inv.Count)
	if len(inv.TopThemes) > 0 {
		themes := make([]string, len(inv.TopThemes))
		for i, t := range inv.TopThemes {
			themes[i] = string(t)
		}
		fmt.Fprintf(&b, "Top themes: %s.\n", strings.Join(themes, ", "))
	}
	if len(inv.Portfolio) > 0 {
		b.WriteString("Portfolio: ")
		for i, p := range inv.Portfolio {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.CompanyName)
		}
		b.WriteString(".\n")
	}
	b.WriteString(`Reply with JSON only: {"investment_thesis": string, "portfolio_composition": string, "strategic_focus": string}`)
	return b.String()
}

// stripCodeFence removes a markdown code fence the model sometimes wraps
// its JSON in.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
