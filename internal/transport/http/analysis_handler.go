// Package http provides the HTTP transport layer: thin chi handlers over
// the service layer. No scoring or aggregation logic lives here.
package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"venturescope/internal/dataprocessing"
	apierrors "venturescope/internal/errors"
	"venturescope/internal/exporter"
	"venturescope/internal/services"
)

// AnalysisHandler handles dataset upload, result retrieval and export.
type AnalysisHandler struct {
	service        *services.AnalysisService
	logger         *slog.Logger
	product        string
	maxUploadBytes int64
}

// NewAnalysisHandler creates an analysis handler.
func NewAnalysisHandler(service *services.AnalysisService, logger *slog.Logger, product string, maxUploadBytes int64) *AnalysisHandler {
	return &AnalysisHandler{
		service:        service,
		logger:         logger.With(slog.String("handler", "analysis")),
		product:        product,
		maxUploadBytes: maxUploadBytes,
	}
}

// Create handles POST /api/analysis: one or more uploaded dataset files as
// multipart form field "files".
func (h *AnalysisHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		if err.Error() == "http: request body too large" {
			render.Render(w, r, apierrors.ErrUploadTooLarge)
			return
		}
		render.Render(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		render.Render(w, r, apierrors.ErrEmptyUpload)
		return
	}

	inputs := make([]dataprocessing.Input, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			render.Render(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			render.Render(w, r, apierrors.InvalidRequestWithError(err))
			return
		}
		inputs = append(inputs, dataprocessing.Input{Name: fh.Filename, Data: data})
	}

	result := h.service.Analyze(r.Context(), inputs)
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, result)
}

// Get handles GET /api/analysis/{id}.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	result, ok := h.service.Result(chi.URLParam(r, "id"))
	if !ok {
		render.Render(w, r, apierrors.ErrAnalysisNotFound)
		return
	}
	render.JSON(w, r, result)
}

// Export handles GET /api/analysis/{id}/export: the fixed 11-column CSV
// download.
func (h *AnalysisHandler) Export(w http.ResponseWriter, r *http.Request) {
	content, ok := h.service.Export(chi.URLParam(r, "id"))
	if !ok {
		render.Render(w, r, apierrors.ErrAnalysisNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exporter.DefaultFileName(h.product)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(content))
}
