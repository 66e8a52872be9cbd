package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/finlens/internal/analysis"
	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/narrative"
	"github.com/wonny/finlens/pkg/logger"
)

// FinancialsHandler serves the JSON API
// ⭐ SSOT: 재무 분석 JSON API 핸들러는 이 구조체에서만
type FinancialsHandler struct {
	analysis      *analysis.Service
	renderer      *narrative.Renderer
	defaultAPIKey string
	logger        *logger.Logger
}

// NewFinancialsHandler creates a new JSON API handler
func NewFinancialsHandler(svc *analysis.Service, renderer *narrative.Renderer, defaultAPIKey string, log *logger.Logger) *FinancialsHandler {
	return &FinancialsHandler{
		analysis:      svc,
		renderer:      renderer,
		defaultAPIKey: defaultAPIKey,
		logger:        log,
	}
}

// GetReport returns the normalized series and growth metrics for a ticker
// GET /api/financials/{symbol}
func (h *FinancialsHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	report, err := h.analysis.Analyze(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Analysis request failed")
		respondError(w, statusFor(err), userMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetStatements returns the raw quarterly tables from the provider
// GET /api/financials/{symbol}/statements
func (h *FinancialsHandler) GetStatements(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	fin, err := h.analysis.Statements(r.Context(), symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", symbol).Warn("Statements request failed")
		respondError(w, statusFor(err), userMessage(err))
		return
	}

	respondJSON(w, http.StatusOK, fin)
}

// NarrativeRequest is the body of POST /api/narrative
type NarrativeRequest struct {
	Symbol string `json:"symbol" validate:"required,max=32"`
	APIKey string `json:"api_key" validate:"max=256"`
}

// NarrativeResponse is the answer of POST /api/narrative
type NarrativeResponse struct {
	Symbol    string `json:"symbol"`
	Company   string `json:"company"`
	Narrative string `json:"narrative"`
	HTML      string `json:"html"`
}

// PostNarrative analyzes a ticker and asks the provider to interpret it
// POST /api/narrative
func (h *FinancialsHandler) PostNarrative(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req NarrativeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Symbol = strings.TrimSpace(req.Symbol)
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, contracts.ErrMissingSymbol.Error())
		return
	}

	apiKey := req.APIKey
	if apiKey == "" {
		apiKey = h.defaultAPIKey
	}
	if apiKey == "" {
		respondError(w, http.StatusBadRequest, contracts.ErrMissingCredential.Error())
		return
	}

	report, err := h.analysis.Analyze(ctx, req.Symbol)
	if err != nil {
		respondError(w, statusFor(err), userMessage(err))
		return
	}

	text, err := h.analysis.Narrate(ctx, apiKey, report)
	if err != nil {
		respondError(w, statusFor(err), userMessage(err))
		return
	}

	html, err := h.renderer.Render(text)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to render narrative markdown")
	}

	respondJSON(w, http.StatusOK, NarrativeResponse{
		Symbol:    report.Profile.Symbol,
		Company:   report.CompanyName(),
		Narrative: text,
		HTML:      string(html),
	})
}
