package server

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"seasonalDashboard/internal/finance"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = s.locale
	}
	if !finance.SupportedLocale(locale) {
		s.renderError(w, r, newAPIError(http.StatusBadRequest, "INVALID_PARAMETER", "unsupported locale "+locale))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"locale":  strings.ToLower(locale),
		"choices": finance.MonthChoices(locale),
	})
}

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.dashboard.Assets(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"assets": assets})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	info, err := s.dashboard.Years(r.Context(), chi.URLParam(r, "asset"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, info)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(chi.URLParam(r, "asset"), r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.dashboard.Snapshot(r.Context(), q)
	s.metrics.observeSnapshot(err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	switch kind {
	case finance.ChartPrice, finance.ChartVolatility, finance.ChartAnnual, finance.ChartSeasonal:
	default:
		s.renderError(w, r, newAPIError(http.StatusNotFound, "NOT_FOUND", "unknown chart "+kind))
		return
	}

	q, err := parseQuery(chi.URLParam(r, "asset"), r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.dashboard.Snapshot(r.Context(), q)
	s.metrics.observeSnapshot(err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	img, err := s.charts.Render(kind, snap, cacheKey(q))
	s.metrics.observeChart(kind, err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(img)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(chi.URLParam(r, "asset"), r.URL.Query())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	snap, err := s.dashboard.Snapshot(r.Context(), q)
	s.metrics.observeSnapshot(err)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var buf bytes.Buffer
	if err := finance.WriteWorkbook(&buf, snap, s.locale); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+snap.Asset+`.xlsx"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	assets, err := s.dashboard.Assets(r.Context())
	if err != nil && !errors.Is(err, finance.ErrFileNotFound) {
		s.fail(w, r, err)
		return
	}
	data := pageData{
		Assets:  assets,
		Months:  finance.MonthChoices(s.locale),
		Windows: finance.VolatilityWindows,
	}
	if err != nil {
		// the page still renders so the user sees why nothing is drawn
		data.Error = "Arquivo de dados não encontrado."
		if strings.EqualFold(s.locale, "en") {
			data.Error = "Data file not found."
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.render(w, data); err != nil {
		s.log.Error().Err(err).Msg("failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// fail logs err at a level matching its severity and writes the API error.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	e := apiError(err)
	ev := s.log.Warn()
	if e.StatusCode >= http.StatusInternalServerError {
		ev = s.log.Error()
	}
	ev.Err(err).
		Str("path", r.URL.Path).
		Str("error_code", e.ErrorCode).
		Msg("request failed")
	s.renderError(w, r, e)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, e *APIError) {
	if err := render.Render(w, r, e); err != nil {
		http.Error(w, e.Message, e.StatusCode)
	}
}
