package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"spendtrack/internal/core"
	"spendtrack/internal/dates"
	"spendtrack/internal/storage"
)

// maxBodyBytes bounds request bodies; expense payloads are tiny.
const maxBodyBytes = 1 << 20

type createExpenseRequest struct {
	Amount      core.Money `json:"amount"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
}

type updateExpenseRequest struct {
	Amount      *core.Money `json:"amount"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	Date        *string     `json:"date"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e := core.NewExpense{
		Amount:      req.Amount,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Date:        sanitizeInput(req.Date),
	}

	id, err := s.commands.Add(r.Context(), e)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to add expense", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add expense")
		return
	}
	s.invalidateDerived()

	created, err := s.queries.GetByID(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load created expense", "expense_id", id, "error", err)
		writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseJSON(created))
}

// handleListExpenses serves the list queries. Filters are mutually
// exclusive; the first recognized one wins: q, category, start+end,
// year+month. With no filter the full collection is returned in id
// order.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	var (
		expenses []core.Expense
		err      error
	)
	switch {
	case q.Get("q") != "":
		expenses, err = s.queries.Search(ctx, q.Get("q"))
	case q.Get("category") != "":
		expenses, err = s.queries.GetByCategory(ctx, q.Get("category"))
	case q.Get("start") != "" || q.Get("end") != "":
		if q.Get("start") == "" || q.Get("end") == "" {
			writeError(w, http.StatusUnprocessableEntity, "start and end must be given together")
			return
		}
		expenses, err = s.queries.GetByDateRange(ctx, q.Get("start"), q.Get("end"))
	case q.Get("year") != "" || q.Get("month") != "":
		year, month, ok := parseYearMonth(w, q.Get("year"), q.Get("month"))
		if !ok {
			return
		}
		expenses, err = s.queries.GetByMonth(ctx, year, month)
	default:
		expenses, err = s.queries.GetAll(ctx)
	}

	if err != nil {
		if errors.Is(err, dates.ErrUnparseable) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(ctx, "Failed to list expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list expenses")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseList(expenses))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	e, err := s.queries.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Failed to get expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get expense")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u := core.ExpenseUpdate{Amount: req.Amount}
	if req.Description != nil {
		v := sanitizeInput(*req.Description)
		u.Description = &v
	}
	if req.Category != nil {
		v := sanitizeInput(*req.Category)
		u.Category = &v
	}
	if req.Date != nil {
		v := sanitizeInput(*req.Date)
		u.Date = &v
	}

	if u.IsEmpty() {
		writeError(w, http.StatusUnprocessableEntity, "no fields to update")
		return
	}

	updated, err := s.commands.Update(r.Context(), id, u)
	if err != nil {
		if isValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		slog.ErrorContext(r.Context(), "Failed to update expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update expense")
		return
	}
	if !updated {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.invalidateDerived()

	e, err := s.queries.GetByID(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load updated expense", "expense_id", id, "error", err)
		writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
		return
	}
	writeJSON(w, http.StatusOK, toExpenseJSON(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	deleted, err := s.commands.Delete(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete expense", "expense_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete expense")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "expense not found")
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecentExpenses(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusUnprocessableEntity, "invalid limit")
			return
		}
		limit = n
	}

	expenses, err := s.stats.Recent(r.Context(), limit)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load recent expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recent expenses")
		return
	}
	writeJSON(w, http.StatusOK, toExpenseList(expenses))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.stats.AvailableCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load categories", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"categories": categories})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		// A malformed amount surfaces at decode time but is a
		// validation failure, not a malformed request.
		if errors.Is(err, core.ErrInvalidAmount) {
			writeError(w, http.StatusUnprocessableEntity, core.ErrInvalidAmount.Error())
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusUnprocessableEntity, "invalid expense id")
		return 0, false
	}
	return id, true
}

func parseYearMonth(w http.ResponseWriter, yearStr, monthStr string) (year, month int, ok bool) {
	if yearStr == "" || monthStr == "" {
		writeError(w, http.StatusUnprocessableEntity, "year and month must be given together")
		return 0, 0, false
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid year")
		return 0, 0, false
	}
	month, err = strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusUnprocessableEntity, "invalid month")
		return 0, 0, false
	}
	return year, month, true
}

func isValidationError(err error) bool {
	return errors.Is(err, core.ErrInvalidAmount) ||
		errors.Is(err, core.ErrEmptyDescription) ||
		errors.Is(err, dates.ErrUnparseable)
}
