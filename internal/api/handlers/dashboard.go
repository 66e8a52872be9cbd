package handlers

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"github.com/wonny/finlens/internal/analysis"
	"github.com/wonny/finlens/internal/contracts"
	"github.com/wonny/finlens/internal/narrative"
	"github.com/wonny/finlens/internal/presentation"
	"github.com/wonny/finlens/internal/session"
	"github.com/wonny/finlens/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// defaultSymbol pre-fills the ticker input of a fresh session
const defaultSymbol = "RELIANCE.NS"

// DashboardHandler serves the server-rendered dashboard
// ⭐ SSOT: 대시보드 UI 핸들러는 이 구조체에서만
type DashboardHandler struct {
	analysis      *analysis.Service
	sessions      *session.Store
	renderer      *narrative.Renderer
	defaultAPIKey string
	logger        *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	svc *analysis.Service,
	sessions *session.Store,
	renderer *narrative.Renderer,
	defaultAPIKey string,
	log *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		analysis:      svc,
		sessions:      sessions,
		renderer:      renderer,
		defaultAPIKey: defaultAPIKey,
		logger:        log,
	}
}

type chartView struct {
	ID     string
	Title  string
	Config template.JS
}

type dashboardView struct {
	Symbol         string
	HasCredential  bool
	Warning        string
	Error          string
	Report         *contracts.Report
	CompanyName    string
	Rows           []presentation.DisplayRow
	Growth         []presentation.GrowthRow
	ChartsTitle    string
	Charts         []chartView
	Narrative      template.HTML
	NarrativeError string
}

// AnalyzeForm is the body of POST /analyze
type AnalyzeForm struct {
	Symbol string `validate:"required,max=32"`
}

// CredentialForm is the body of POST /credential
type CredentialForm struct {
	APIKey string `validate:"required,max=256"`
}

// Index renders the dashboard with whatever the session last showed
// GET /
func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Resolve(w, r)
	h.render(w, h.viewFor(st))
}

// Analyze fetches a ticker and renders its report
// POST /analyze
func (h *DashboardHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Resolve(w, r)

	form := AnalyzeForm{Symbol: strings.TrimSpace(r.FormValue("symbol"))}
	if err := validate.Struct(form); err != nil {
		view := h.viewFor(st)
		view.Symbol = form.Symbol
		view.Warning = "Please enter a stock symbol."
		h.render(w, view)
		return
	}

	report, err := h.analysis.Analyze(r.Context(), form.Symbol)
	if err != nil {
		h.logger.WithError(err).WithField("symbol", form.Symbol).Warn("Dashboard analysis failed")

		// a failed analysis clears the previous report
		st = h.sessions.Update(st.ID, func(s *session.State) {
			s.Symbol = form.Symbol
			s.Report = nil
			s.Narrative = ""
		})
		view := h.viewFor(st)
		view.Error = userMessage(err)
		h.render(w, view)
		return
	}

	st = h.sessions.Update(st.ID, func(s *session.State) {
		s.Symbol = form.Symbol
		s.Report = report
		s.Narrative = ""
	})
	h.render(w, h.viewFor(st))
}

// Narrative generates the AI analysis for the session's current report.
// A failure is shown inline below the report, which stays on screen.
// POST /narrative
func (h *DashboardHandler) Narrative(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Resolve(w, r)
	view := h.viewFor(st)

	if st.Report == nil {
		view.Warning = "Analyze a stock before generating analysis."
		h.render(w, view)
		return
	}

	apiKey := st.APIKey
	if apiKey == "" {
		apiKey = h.defaultAPIKey
	}

	text, err := h.analysis.Narrate(r.Context(), apiKey, st.Report)
	if err != nil {
		view.Narrative = ""
		view.NarrativeError = userMessage(err)
		h.render(w, view)
		return
	}

	st = h.sessions.Update(st.ID, func(s *session.State) {
		s.Narrative = text
	})
	h.render(w, h.viewFor(st))
}

// Credential stores the narrative API key for this session
// POST /credential
func (h *DashboardHandler) Credential(w http.ResponseWriter, r *http.Request) {
	st := h.sessions.Resolve(w, r)

	form := CredentialForm{APIKey: strings.TrimSpace(r.FormValue("api_key"))}
	if err := validate.Struct(form); err != nil {
		view := h.viewFor(st)
		view.Warning = contracts.ErrMissingCredential.Error()
		h.render(w, view)
		return
	}

	h.sessions.Update(st.ID, func(s *session.State) {
		s.APIKey = form.APIKey
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// viewFor builds the page model from session state
func (h *DashboardHandler) viewFor(st session.State) *dashboardView {
	view := &dashboardView{
		Symbol:        st.Symbol,
		HasCredential: st.HasCredential() || h.defaultAPIKey != "",
	}
	if view.Symbol == "" {
		view.Symbol = defaultSymbol
	}

	if st.Report == nil {
		return view
	}

	report := st.Report
	view.Report = report
	view.CompanyName = report.CompanyName()
	view.Rows = presentation.DisplayTable(report.Series)
	view.Growth = presentation.GrowthTable(report.Growth)
	view.ChartsTitle = presentation.ChartsTitle(view.CompanyName, len(report.Series))

	for _, c := range presentation.Charts(report.Series) {
		cfg, err := json.Marshal(c)
		if err != nil {
			h.logger.WithError(err).WithField("chart", c.ID).Warn("Failed to encode chart")
			continue
		}
		view.Charts = append(view.Charts, chartView{ID: c.ID, Title: c.Title, Config: template.JS(cfg)})
	}

	if st.Narrative != "" {
		html, err := h.renderer.Render(st.Narrative)
		if err != nil {
			h.logger.WithError(err).Warn("Failed to render narrative markdown")
			html = template.HTML(template.HTMLEscapeString(st.Narrative))
		}
		view.Narrative = html
	}

	return view
}

func (h *DashboardHandler) render(w http.ResponseWriter, view *dashboardView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTmpl.Execute(w, view); err != nil {
		h.logger.WithError(err).Error("Failed to render dashboard")
	}
}
