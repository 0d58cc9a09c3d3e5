package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venturescope/internal/config"
	"venturescope/internal/dataprocessing"
	"venturescope/internal/services"
	"venturescope/pkg/contracts/domain"
)

func uploadInputs(content string) []dataprocessing.Input {
	return []dataprocessing.Input{{Name: "upload.csv", Data: []byte(content)}}
}

const handlerUpload = `Organization Name,Description,Total Funding Amount,Operating Status,Investors
Acme,"AI logistics","$5,000,000",Active,"Alpha Ventures"
Globex,"Retail analytics",$100,Active,"Alpha Ventures, Beta Capital"
`

func testRouter(t *testing.T) (http.Handler, *services.AnalysisService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	analysis := services.NewAnalysisService(logger, nil)
	narrative := services.NewNarrativeService(config.NarrativeConfig{}, logger, nil)
	research := services.NewResearchService(config.ResearchConfig{}, logger)

	router := NewRouter(Dependencies{
		Analysis:  analysis,
		Narrative: narrative,
		Research:  research,
		Logger:    logger,
		Server: config.ServerConfig{
			MaxUploadBytes: 1 << 20,
		},
		Export: config.ExportConfig{Product: "venturescope"},
	})
	return router, analysis
}

func multipartUpload(t *testing.T, field string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestAnalysisCreate(t *testing.T) {
	router, _ := testRouter(t)

	body, contentType := multipartUpload(t, "files", map[string]string{
		"companies.csv": handlerUpload,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var result domain.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.NotEmpty(t, result.ID)
	assert.Len(t, result.Companies, 2)
	assert.NotEmpty(t, result.Investors)
}

func TestAnalysisCreateNoFiles(t *testing.T) {
	router, _ := testRouter(t)

	body, contentType := multipartUpload(t, "other_field", map[string]string{
		"companies.csv": handlerUpload,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_UPLOAD")
}

func TestAnalysisGet(t *testing.T) {
	router, analysis := testRouter(t)
	result := analysis.Analyze(httptest.NewRequest("GET", "/", nil).Context(),
		uploadInputs(handlerUpload))

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/"+result.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/analysis/not-there", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalysisExport(t *testing.T) {
	router, analysis := testRouter(t)
	result := analysis.Analyze(httptest.NewRequest("GET", "/", nil).Context(),
		uploadInputs(handlerUpload))

	req := httptest.NewRequest(http.MethodGet, "/api/analysis/"+result.ID+"/export", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "venturescope_analysis.csv")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Rank,Company Name,"))
}

func TestNarrativeCompanyPlaceholder(t *testing.T) {
	router, analysis := testRouter(t)
	result := analysis.Analyze(httptest.NewRequest("GET", "/", nil).Context(),
		uploadInputs(handlerUpload))

	payload, _ := json.Marshal(CompanyNarrativeRequest{
		BatchID:   result.ID,
		CompanyID: result.Companies[0].ID,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/narrative/company", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// No collaborator key configured: the placeholder still returns 200.
	require.Equal(t, http.StatusOK, rec.Code)
	var narrative domain.CompanyNarrative
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &narrative))
	assert.Equal(t, services.PlaceholderCompanyNarrative, narrative)
}

func TestNarrativeCompanyValidation(t *testing.T) {
	router, _ := testRouter(t)

	payload, _ := json.Marshal(CompanyNarrativeRequest{BatchID: "not-a-uuid", CompanyID: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/narrative/company", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResearchValidation(t *testing.T) {
	router, _ := testRouter(t)

	payload, _ := json.Marshal(ResearchRequest{Name: "Acme", Context: "galaxy"})
	req := httptest.NewRequest(http.MethodPost, "/api/research", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndVersion(t *testing.T) {
	router, _ := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
