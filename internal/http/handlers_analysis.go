package http

import (
	"net/http"
	"strings"

	"tally/internal/analysis"
	"tally/internal/core"
)

type monthlyAnalysisResponse struct {
	CurrentMonth       string  `json:"current_month"`
	CurrentMonthCents  int64   `json:"current_month_cents"`
	PreviousMonth      string  `json:"previous_month"`
	PreviousMonthCents int64   `json:"previous_month_cents"`
	PercentChange      float64 `json:"percent_change"`
	PercentDisplay     string  `json:"percent_display"`
}

func (s *Server) handleMonthlyAnalysis(w http.ResponseWriter, r *http.Request) {
	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	m, ok := s.analyzer.AnalyzeMonthlySpending(records)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "no expense data to analyze")
		return
	}

	writeJSON(w, http.StatusOK, monthlyAnalysisResponse{
		CurrentMonth:       m.CurrentMonth.String(),
		CurrentMonthCents:  m.CurrentMonth.Cents,
		PreviousMonth:      m.PreviousMonth.String(),
		PreviousMonthCents: m.PreviousMonth.Cents,
		PercentChange:      m.PercentChange,
		PercentDisplay:     core.FormatPercent(m.PercentChange),
	})
}

type forecastResponse struct {
	Prediction      *string `json:"prediction"`
	PredictionCents *int64  `json:"prediction_cents"`
	Available       bool    `json:"available"`
}

// handleForecast reports the next-month projection. Insufficient history
// is a normal outcome, not an error: the prediction is simply null.
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	prediction, ok := s.analyzer.PredictNextMonth(records)
	resp := forecastResponse{Available: ok}
	if ok {
		formatted := prediction.String()
		resp.Prediction = &formatted
		resp.PredictionCents = &prediction.Cents
	}
	writeJSON(w, http.StatusOK, resp)
}

type insightResponse struct {
	Kind     string `json:"kind"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Previous string `json:"previous,omitempty"`
	Message  string `json:"message"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	insights := s.analyzer.DetectInsights(records)
	out := make([]insightResponse, 0, len(insights))
	for _, in := range insights {
		item := insightResponse{
			Kind:     string(in.Kind),
			Category: string(in.Category),
			Amount:   in.Amount.String(),
			Message:  in.Message,
		}
		if in.Kind == analysis.IncreasingTrend {
			item.Previous = in.Previous.String()
		}
		out = append(out, item)
	}
	writeJSON(w, http.StatusOK, out)
}

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Intent  string            `json:"intent"`
	Amount  string            `json:"amount"`
	Details string            `json:"details"`
	Matches []expenseResponse `json:"matches"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	result, err := s.analyzer.AnswerQuery(req.Question, records)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, queryResponse{
		Intent:  string(result.Intent),
		Amount:  result.Amount.String(),
		Details: result.Details,
		Matches: toExpenseResponses(result.Matches),
	})
}

type summaryResponse struct {
	Year       int                    `json:"year"`
	Month      int                    `json:"month"`
	Total      string                 `json:"total"`
	TotalCents int64                  `json:"total_cents"`
	Count      int                    `json:"count"`
	Average    string                 `json:"average"`
	Categories []categoryBreakdownDTO `json:"categories"`
}

type categoryBreakdownDTO struct {
	Category string `json:"category"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	year, month := parseYearMonth(r)

	key := monthKey(year, month)
	summary, ok := s.summaryCache.Get(key)
	if !ok {
		var err error
		summary, err = s.service.Summarize(r.Context(), year, month)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.summaryCache.Set(key, summary)
	}

	resp := summaryResponse{
		Year:       year,
		Month:      month,
		Total:      summary.Total.String(),
		TotalCents: summary.Total.Cents,
		Count:      summary.Count,
		Average:    summary.Average.String(),
		Categories: make([]categoryBreakdownDTO, 0, len(summary.Categories)),
	}
	for _, b := range summary.Categories {
		resp.Categories = append(resp.Categories, categoryBreakdownDTO{
			Category: string(b.Category),
			Total:    b.Amount.String(),
			Count:    b.Count,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
