package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "venturescope/internal/errors"
	"venturescope/internal/services"
	"venturescope/pkg/contracts/domain"
)

// NarrativeHandler fronts the generative-text and research collaborators.
// The services behind it never fail; a misconfigured or broken collaborator
// yields fixed placeholder payloads, so these handlers always return 200
// once the request itself validates.
type NarrativeHandler struct {
	analysis  *services.AnalysisService
	narrative *services.NarrativeService
	research  *services.ResearchService
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewNarrativeHandler creates a narrative handler.
func NewNarrativeHandler(analysis *services.AnalysisService, narrative *services.NarrativeService, research *services.ResearchService, logger *slog.Logger) *NarrativeHandler {
	return &NarrativeHandler{
		analysis:  analysis,
		narrative: narrative,
		research:  research,
		validate:  validator.New(),
		logger:    logger.With(slog.String("handler", "narrative")),
	}
}

// CompanyNarrativeRequest asks for narrative elaboration of one company in
// the current batch.
type CompanyNarrativeRequest struct {
	BatchID   string `json:"batch_id" validate:"required,uuid"`
	CompanyID string `json:"company_id" validate:"required,uuid"`
}

// InvestorNarrativeRequest asks for narrative elaboration of one financing
// entity in the current batch.
type InvestorNarrativeRequest struct {
	BatchID string `json:"batch_id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required"`
}

// ResearchRequest asks the research collaborator about a named entity.
type ResearchRequest struct {
	Name    string `json:"name" validate:"required"`
	Context string `json:"context" validate:"required,oneof=company investor"`
}

// Company handles POST /api/narrative/company.
func (h *NarrativeHandler) Company(w http.ResponseWriter, r *http.Request) {
	var req CompanyNarrativeRequest
	if !h.decode(w, r, &req) {
		return
	}

	company, ok := h.analysis.Company(req.BatchID, req.CompanyID)
	if !ok {
		render.Render(w, r, apierrors.NotFoundError("company"))
		return
	}
	render.JSON(w, r, h.narrative.CompanyNarrative(r.Context(), company))
}

// Investor handles POST /api/narrative/investor.
func (h *NarrativeHandler) Investor(w http.ResponseWriter, r *http.Request) {
	var req InvestorNarrativeRequest
	if !h.decode(w, r, &req) {
		return
	}

	investor, ok := h.analysis.Investor(req.BatchID, req.Name)
	if !ok {
		render.Render(w, r, apierrors.NotFoundError("investor"))
		return
	}
	render.JSON(w, r, h.narrative.InvestorNarrative(r.Context(), investor))
}

// Research handles POST /api/research.
func (h *NarrativeHandler) Research(w http.ResponseWriter, r *http.Request) {
	var req ResearchRequest
	if !h.decode(w, r, &req) {
		return
	}
	render.JSON(w, r, h.research.Research(r.Context(), req.Name, domain.ResearchContext(req.Context)))
}

// decode binds and validates a JSON request body, rendering the error
// response itself on failure.
func (h *NarrativeHandler) decode(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		render.Render(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"VALIDATION_FAILED", "Request validation failed", err.Error()))
		return false
	}
	return true
}
