package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/relist-app/relist/internal/db"
	"github.com/relist-app/relist/internal/domain"
	domlisting "github.com/relist-app/relist/internal/domain/listing"
	"github.com/relist-app/relist/internal/domain/search/request"
	"github.com/relist-app/relist/internal/domain/search/result"
	healthuc "github.com/relist-app/relist/internal/usecase/health"
	listinguc "github.com/relist-app/relist/internal/usecase/listing"
	searchuc "github.com/relist-app/relist/internal/usecase/search"
)

// Error codes returned to clients.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeListingNotFound  = "listing_not_found"
	codeStoreUnavailable = "store_unavailable"
	codeInternalError    = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server wires the HTTP API to the usecase services.
type Server struct {
	search        *searchuc.Service
	listings      *listinguc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	listings *listinguc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:   search,
		listings: listings,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrListingNotFound, http.StatusNotFound, codeListingNotFound),
		sentinelHandler(domain.ErrInvalidListing, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusServiceUnavailable, codeStoreUnavailable),
		dbErrorHandler,
	}
	return s
}

// RegisterRoutes mounts all API routes on the router.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/search", s.Search)
	r.Post("/api/v1/listings", s.CreateListing)
	r.Put("/api/v1/listings/{id}", s.UpsertListing)
	r.Get("/api/v1/listings/{id}", s.GetListing)
	r.Delete("/api/v1/listings/{id}", s.DeleteListing)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

// searchResponse is the page envelope for GET /api/v1/search.
type searchResponse struct {
	Items       []searchItem `json:"items"`
	Limit       int          `json:"limit"`
	NextCursor  *string      `json:"next_cursor"`
	HasNextPage bool         `json:"has_next_page"`
}

type searchItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	Score       *float64  `json:"score,omitempty"`
}

// Search handles GET /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cursorTok := r.URL.Query().Get("cursor")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	// Out-of-range limits are clamped here, never rejected.
	req := request.New(q, cursorTok, limit)

	page, err := s.search.Search(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pageToResponse(page))
}

func pageToResponse(page result.Page) searchResponse {
	items := make([]searchItem, len(page.Items))
	for i := range page.Items {
		items[i] = resultToItem(&page.Items[i])
	}

	resp := searchResponse{
		Items:       items,
		Limit:       page.Limit,
		HasNextPage: page.HasNextPage,
	}
	if page.HasNextPage {
		c := page.NextCursor
		resp.NextCursor = &c
	}
	return resp
}

func resultToItem(res *result.Result) searchItem {
	l := res.Listing()
	item := searchItem{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Price:       l.Price(),
		CreatedAt:   l.CreatedAt(),
	}
	if score := res.Score(); score > 0 {
		item.Score = &score
	}
	return item
}

// listingRequest is the body of listing create/upsert calls.
type listingRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type listingResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateListing handles POST /api/v1/listings.
func (s *Server) CreateListing(w http.ResponseWriter, r *http.Request) {
	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	l, err := s.listings.Create(r.Context(), req.Title, req.Description, req.Price)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/v1/listings/%s", l.ID()))
	writeJSON(w, http.StatusCreated, listingToResponse(&l))
}

// UpsertListing handles PUT /api/v1/listings/{id}.
func (s *Server) UpsertListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req listingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	l, created, err := s.listings.Upsert(r.Context(), id, req.Title, req.Description, req.Price)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		w.Header().Set("Location", fmt.Sprintf("/api/v1/listings/%s", l.ID()))
	}
	writeJSON(w, status, listingToResponse(&l))
}

// GetListing handles GET /api/v1/listings/{id}.
func (s *Server) GetListing(w http.ResponseWriter, r *http.Request) {
	l, err := s.listings.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listingToResponse(&l))
}

// DeleteListing handles DELETE /api/v1/listings/{id}.
func (s *Server) DeleteListing(w http.ResponseWriter, r *http.Request) {
	if err := s.listings.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func listingToResponse(l *domlisting.Listing) listingResponse {
	return listingResponse{
		ID:          l.ID(),
		Title:       l.Title(),
		Description: l.Description(),
		Price:       l.Price(),
		CreatedAt:   l.CreatedAt(),
	}
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// errorResponse is the shared error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrListingNotFound,
		domain.ErrInvalidListing,
		domain.ErrInvalidCursor,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// dbErrorHandler maps store command failures to 503: the request is
// retryable, the data layer is just unreachable.
func dbErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		return false
	}
	writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, domain.ErrStoreUnavailable.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
