package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	total, err := s.stats.TotalAmount(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute total", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute total")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"total": total})
}

func (s *Server) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.getCategorySummary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute category summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute category summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.getMonthlySummary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute monthly summary", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute monthly summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := s.getStatistics(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute statistics", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleImportSampleData(w http.ResponseWriter, r *http.Request) {
	imported, err := s.commands.ImportSampleData(r.Context())
	if imported > 0 {
		s.invalidateDerived()
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Sample data import incomplete", "imported", imported, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":    "sample data import incomplete",
			"imported": imported,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"imported": imported})
}

type exportRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if r.Body != nil && r.ContentLength != 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	path, err := s.commands.ExportCSV(r.Context(), sanitizeInput(req.Path))
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to export expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export expenses")
		return
	}
	if path == "" {
		writeJSON(w, http.StatusOK, map[string]string{"path": "", "message": "no expenses to export"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.commands.ClearAll(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Failed to clear expenses", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear expenses")
		return
	}
	s.invalidateDerived()
	w.WriteHeader(http.StatusNoContent)
}
