package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appanalyses "github.com/i32sevit/analiza-tu-pc/internal/application/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/advice"
	domain "github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/middleware"
)

type Router struct {
	svc            *appanalyses.Service
	publishEnabled bool
}

func NewRouter(svc *appanalyses.Service, publishEnabled bool, health http.HandlerFunc) http.Handler {
	r := &Router{svc: svc, publishEnabled: publishEnabled}
	mux := chi.NewRouter()

	if health == nil {
		health = middleware.LivenessHandler
	}
	mux.Get("/health", health)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/analyze", r.handleAnalyze)
		rt.Get("/analyses", r.wrap(r.handleHistory))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Delete("/analyses/{id}", r.wrap(r.handleDelete))
		rt.Get("/stats", r.wrap(r.handleStats))
		rt.Get("/stats/global", r.wrap(r.handleGlobalStats))
	})

	return mux
}

var errUnauthorized = errors.New("authentication required")

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound), errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, errUnauthorized):
				http.Error(w, "authentication required", http.StatusUnauthorized)
			case errors.Is(err, advice.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// requireOwner returns the authenticated owner or errUnauthorized;
// record endpoints have no guest mode.
func requireOwner(req *http.Request) (string, error) {
	owner := middleware.OwnerFromContext(req.Context())
	if owner == "" {
		return "", errUnauthorized
	}
	return owner, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// POST /v1/analyze
// Guests are welcome: without an API key the analysis is computed and
// published but never persisted.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	var in hardware.Input
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := middleware.ValidateHardwareInput(in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	owner := middleware.OwnerFromContext(req.Context())
	middleware.IncrementAnalyses()
	if owner == "" {
		middleware.IncrementGuestAnalyses()
	}

	result, err := r.svc.Analyze(req.Context(), appanalyses.AnalyzeCommand{Owner: owner, Input: in})
	if err != nil {
		// fatal pipeline error: report it together with whatever was
		// computed, so the client is not left with nothing
		middleware.IncrementAnalysesFailed()
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"status":      appanalyses.StatusError,
			"error":       err.Error(),
			"analysis_id": result.AnalysisID,
			"result":      result.Result,
			"is_guest":    result.IsGuest,
		})
		return
	}

	if r.publishEnabled && (result.PDFURL == nil || result.JSONURL == nil) {
		middleware.IncrementPublishFailed()
	}

	writeJSON(w, http.StatusOK, result)
}

// GET /v1/analyses?page=&page_size=
func (r *Router) handleHistory(w http.ResponseWriter, req *http.Request) error {
	owner, err := requireOwner(req)
	if err != nil {
		return err
	}
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))
	size = middleware.ValidatePageSize(size)

	list, err := r.svc.History(req.Context(), owner, page, size)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, list)
	return nil
}

// GET /v1/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	owner, err := requireOwner(req)
	if err != nil {
		return err
	}
	id, err := parseID(chi.URLParam(req, "id"))
	if err != nil {
		return domain.ErrNotFound
	}

	a, err := r.svc.Get(req.Context(), owner, id)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, a)
	return nil
}

// DELETE /v1/analyses/{id}
func (r *Router) handleDelete(w http.ResponseWriter, req *http.Request) error {
	owner, err := requireOwner(req)
	if err != nil {
		return err
	}
	id, err := parseID(chi.URLParam(req, "id"))
	if err != nil {
		return domain.ErrNotFound
	}

	deleted, err := r.svc.Delete(req.Context(), owner, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "deleted", "analysis_id": id})
	return nil
}

// GET /v1/stats
func (r *Router) handleStats(w http.ResponseWriter, req *http.Request) error {
	owner, err := requireOwner(req)
	if err != nil {
		return err
	}
	st, err := r.svc.Stats(req.Context(), owner)
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, st)
	return nil
}

// GET /v1/stats/global
func (r *Router) handleGlobalStats(w http.ResponseWriter, req *http.Request) error {
	st, err := r.svc.GlobalStats(req.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, st)
	return nil
}

func parseID(raw string) (domain.AnalysisID, error) {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid analysis id")
	}
	return domain.AnalysisID(n), nil
}
