package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tokenfolio/swapdesk/internal/domain"
	"github.com/tokenfolio/swapdesk/internal/export"
	"github.com/tokenfolio/swapdesk/internal/snapshot"
	"github.com/tokenfolio/swapdesk/internal/swap"
)

// entitySlug identifies the single portfolio entity this deployment serves.
const entitySlug = "main"

// PortfolioProvider exposes the latest in-memory portfolio snapshot.
type PortfolioProvider interface {
	Latest() (domain.PortfolioData, bool)
}

// QuoteService answers swap quote requests.
type QuoteService interface {
	Quote(req swap.QuoteRequest) (swap.QuoteResult, error)
}

// Handler provides the HTTP endpoints of the portfolio API.
type Handler struct {
	portfolio PortfolioProvider
	quoter    QuoteService
	snapshots *snapshot.Service
}

// NewHandler creates a new API handler.
func NewHandler(portfolio PortfolioProvider, quoter QuoteService, snapshots *snapshot.Service) *Handler {
	return &Handler{portfolio: portfolio, quoter: quoter, snapshots: snapshots}
}

// GetPortfolio handles GET /api/v1/portfolio. While the first feed fetch is
// outstanding the service is loading and must not serve partial data.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	data, ok := h.portfolio.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "portfolio not ready")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// PostQuote handles POST /api/v1/quote.
func (h *Handler) PostQuote(w http.ResponseWriter, r *http.Request) {
	var req swap.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.quoter.Quote(req)
	if err != nil {
		var vErr *swap.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, swap.ErrRateUnavailable):
			writeError(w, http.StatusConflict, "conversion rate unavailable")
		default:
			slog.Error("quote failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// ExportPortfolio handles GET /api/v1/portfolio/export, serving the current
// portfolio as an xlsx download.
func (h *Handler) ExportPortfolio(w http.ResponseWriter, r *http.Request) {
	data, ok := h.portfolio.Latest()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "portfolio not ready")
		return
	}

	workbook, err := export.BuildWorkbook(export.PortfolioValues(data))
	if err != nil {
		slog.Error("failed to build workbook", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolio.xlsx"`)
	if err := workbook.Write(w); err != nil {
		slog.Warn("failed to write workbook response", "error", err)
	}
}

// GetLatestSnapshot handles GET /api/v1/snapshots/latest.
func (h *Handler) GetLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	s, err := h.snapshots.GetLatest(r.Context(), entitySlug)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no snapshots found")
			return
		}
		slog.Error("failed to get latest snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// GetSnapshotByDate handles GET /api/v1/snapshots/{date}.
func (h *Handler) GetSnapshotByDate(w http.ResponseWriter, r *http.Request) {
	dateStr := r.PathValue("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	s, err := h.snapshots.GetByDate(r.Context(), entitySlug, date)
	if err != nil {
		if errors.Is(err, snapshot.ErrNotFound) {
			writeError(w, http.StatusNotFound, "snapshot not found for date")
			return
		}
		slog.Error("failed to get snapshot by date", "date", dateStr, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// ListSnapshots handles GET /api/v1/snapshots.
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	const maxLimit = 365
	limit := 30
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = min(n, maxLimit)
		}
	}

	snapshots, err := h.snapshots.List(r.Context(), entitySlug, limit)
	if err != nil {
		slog.Error("failed to list snapshots", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snapshots)
}

// GenerateSnapshot handles POST /api/v1/snapshots/generate.
func (h *Handler) GenerateSnapshot(w http.ResponseWriter, r *http.Request) {
	data, err := h.snapshots.Generate(r.Context(), entitySlug, time.Now().UTC().Truncate(24*time.Hour))
	if err != nil {
		slog.Error("failed to generate snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate snapshot")
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
