package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tally/internal/core"
)

type expenseRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
}

type expenseResponse struct {
	ID                int64  `json:"id"`
	Description       string `json:"description"`
	Amount            string `json:"amount"`
	AmountCents       int64  `json:"amount_cents"`
	Category          string `json:"category"`
	Date              string `json:"date"`
	CreatedAt         string `json:"created_at,omitempty"`
	SuggestedCategory string `json:"suggested_category,omitempty"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		AmountCents: e.Amount.Cents,
		Category:    string(e.Category),
		Date:        e.Date.ISO(),
	}
	if !e.CreatedAt.IsZero() {
		resp.CreatedAt = e.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

// parseExpenseRequest turns a request body into a domain expense. The
// returned suggestion is the keyword match for the description, used
// when the client omits the category.
func (s *Server) parseExpenseRequest(req expenseRequest) (core.Expense, core.Category, error) {
	cents, err := core.ParseDecimalToCents(strings.TrimSpace(req.Amount))
	if err != nil {
		return core.Expense{}, "", err
	}

	date := core.DateOf(time.Now())
	if strings.TrimSpace(req.Date) != "" {
		date, err = core.ParseDate(req.Date)
		if err != nil {
			return core.Expense{}, "", err
		}
	}

	suggested := s.analyzer.Categorize(req.Description)
	category := core.Category(strings.TrimSpace(req.Category))
	if category == "" {
		category = suggested
	}

	return core.Expense{
		Description: req.Description,
		Amount:      core.Money{Cents: cents},
		Category:    category,
		Date:        date,
	}, suggested, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exp, suggested, err := s.parseExpenseRequest(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.service.CreateExpense(r.Context(), exp)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidate()

	slog.InfoContext(r.Context(), "Expense created",
		"id", created.ID,
		"amount_cents", created.Amount.Cents,
		"category", created.Category)

	resp := toExpenseResponse(created)
	resp.SuggestedCategory = string(suggested)
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exp, err := s.service.GetExpense(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toExpenseResponse(exp))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if cat := strings.TrimSpace(q.Get("category")); cat != "" {
		category := core.Category(cat)
		if !category.IsValid() {
			writeError(w, http.StatusUnprocessableEntity, "unknown category: "+cat)
			return
		}
		records, err := s.service.ListByCategory(r.Context(), category)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toExpenseResponses(records))
		return
	}

	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if from != "" || to != "" {
		start, end, err := parseDateRange(from, to)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		records, err := s.service.ListByDateRange(r.Context(), start, end)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toExpenseResponses(records))
		return
	}

	records, err := s.snapshot(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponses(records))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req expenseRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	exp, _, err := s.parseExpenseRequest(req)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	exp.ID = id

	if err := s.service.UpdateExpense(r.Context(), exp); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidate()
	writeJSON(w, http.StatusOK, toExpenseResponse(exp))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.service.DeleteExpense(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	s.invalidate()
	w.WriteHeader(http.StatusNoContent)
}

// handleCategorize previews the keyword match without storing anything.
func (s *Server) handleCategorize(w http.ResponseWriter, r *http.Request) {
	description := r.URL.Query().Get("description")
	category := s.analyzer.Categorize(description)
	writeJSON(w, http.StatusOK, map[string]string{
		"description": description,
		"category":    string(category),
	})
}

func toExpenseResponses(records []core.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(records))
	for _, e := range records {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

// parseDateRange builds an inclusive range; an empty bound defaults to
// the distant past or today respectively.
func parseDateRange(from, to string) (core.Date, core.Date, error) {
	start := core.NewDate(1970, 1, 1)
	end := core.DateOf(time.Now())

	var err error
	if from != "" {
		start, err = core.ParseDate(from)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	if to != "" {
		end, err = core.ParseDate(to)
		if err != nil {
			return core.Date{}, core.Date{}, err
		}
	}
	return start, end, nil
}
