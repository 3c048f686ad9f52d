package http

import (
	"net/http"

	"tally/internal/analysis"
)

// handleTrendChart renders the monthly spending trend as a PNG.
func (s *Server) handleTrendChart(w http.ResponseWriter, r *http.Request) {
	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := s.charts.MonthlyTrend(analysis.MonthlyTotals(records))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if png == nil {
		writeError(w, http.StatusUnprocessableEntity, "not enough data to plot a trend")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// handleCategoryChart renders the per-category distribution as a PNG pie.
func (s *Server) handleCategoryChart(w http.ResponseWriter, r *http.Request) {
	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	png, err := s.charts.CategoryDistribution(analysis.CategoryTotals(records))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if png == nil {
		writeError(w, http.StatusUnprocessableEntity, "no expense data to plot")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
