package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vidalocal/discovery/internal/assistant"
	"github.com/vidalocal/discovery/internal/catalog"
	"github.com/vidalocal/discovery/internal/directory"
	"github.com/vidalocal/discovery/internal/geo"
	"github.com/vidalocal/discovery/internal/models"
	"github.com/vidalocal/discovery/internal/observability"
	"github.com/vidalocal/discovery/internal/registry"
	"github.com/vidalocal/discovery/internal/suggest"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// SearchLogPublisher receives executed-search events. The Kafka producer is
// the production implementation; nil disables logging.
type SearchLogPublisher interface {
	PublishSearchLog(ctx context.Context, event *models.SearchLogEvent) error
}

// AssistantClient is the chat collaborator. nil disables the chat surface.
type AssistantClient interface {
	Chat(ctx context.Context, req assistant.ChatRequest) *models.AssistantMessage
}

type Handler struct {
	suggester  *suggest.Service
	directory  *directory.Service
	catalog    *catalog.Catalog
	registry   *registry.Service
	assistant  AssistantClient
	searchLogs SearchLogPublisher
	logger     *zap.Logger
}

func NewHandler(
	suggester *suggest.Service,
	dir *directory.Service,
	cat *catalog.Catalog,
	reg *registry.Service,
	assist AssistantClient,
	searchLogs SearchLogPublisher,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		suggester:  suggester,
		directory:  dir,
		catalog:    cat,
		registry:   reg,
		assistant:  assist,
		searchLogs: searchLogs,
		logger:     logger,
	}
}

// Suggest returns ranked intents and type labels for a free-text query. An
// empty query is not an error; it yields empty arrays.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	result := h.suggester.Suggest(r.Context(), q)
	h.writeJSON(w, http.StatusOK, result)
}

// Search runs the directory lookup. Accepts GET query params or a POST body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := RequestIDFromContext(ctx)

	query, cityID, err := h.parseSearchRequest(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	start := time.Now()
	result := h.directory.Search(ctx, query, cityID)

	if h.searchLogs != nil && query != "" {
		event := &models.SearchLogEvent{
			Query:     query,
			CityID:    cityID,
			Kind:      string(result.Kind),
			Results:   result.Len(),
			TookMs:    time.Since(start).Milliseconds(),
			RequestID: requestID,
			Timestamp: time.Now().UTC(),
		}
		if err := h.searchLogs.PublishSearchLog(ctx, event); err != nil {
			h.logger.Warn("publishing search log", zap.Error(err))
		}
	}

	h.writeJSON(w, http.StatusOK, result)
}

// ResolveByGeo maps device coordinates to the nearest catalog city. The body
// carries {lat, lng}; the response is the City itself.
func (h *Handler) ResolveByGeo(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	limited := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(limited).Decode(&body); err != nil || body.Lat == nil || body.Lng == nil {
		observability.GeoResolveTotal.WithLabelValues("bad_request").Inc()
		h.writeError(w, http.StatusBadRequest, "invalid_coordinates", "Body fields 'lat' and 'lng' must be numbers")
		return
	}

	city, err := geo.ResolveNearest(*body.Lat, *body.Lng, h.catalog.Cities())
	if err != nil {
		if errors.Is(err, geo.ErrInvalidCoordinate) {
			observability.GeoResolveTotal.WithLabelValues("bad_request").Inc()
			h.writeError(w, http.StatusBadRequest, "invalid_coordinates", err.Error())
			return
		}
		observability.GeoResolveTotal.WithLabelValues("error").Inc()
		h.logger.Error("geo resolution failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "geo_error", "Could not resolve a city")
		return
	}

	observability.GeoResolveTotal.WithLabelValues("success").Inc()
	h.writeJSON(w, http.StatusOK, city)
}

// Cities lists the city catalog, optionally filtered by state UF. An unknown
// UF yields an empty list, not an error.
func (h *Handler) Cities(w http.ResponseWriter, r *http.Request) {
	if uf := r.URL.Query().Get("state_uf"); uf != "" {
		h.writeJSON(w, http.StatusOK, h.catalog.CitiesByStateUF(uf))
		return
	}
	h.writeJSON(w, http.StatusOK, h.catalog.Cities())
}

// CitySearch matches cities by name for the city picker.
func (h *Handler) CitySearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.writeJSON(w, http.StatusOK, h.directory.SearchCities(r.Context(), q))
}

func (h *Handler) States(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.catalog.States())
}

// Featured lists promoted establishments for the landing view.
func (h *Handler) Featured(w http.ResponseWriter, r *http.Request) {
	cityID := 0
	if c := r.URL.Query().Get("city_id"); c != "" {
		id, err := strconv.Atoi(c)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid_city_id", "Query parameter 'city_id' must be an integer")
			return
		}
		cityID = id
	}
	h.writeJSON(w, http.StatusOK, h.directory.Featured(cityID))
}

// Register accepts a business-owner registration.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if h.registry == nil {
		h.writeError(w, http.StatusServiceUnavailable, "registry_disabled", "Registrations are not configured")
		return
	}

	var reg models.Registration
	limited := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(limited).Decode(&reg); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON registration")
		return
	}

	accepted, err := h.registry.Register(r.Context(), &reg)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrMissingName),
			errors.Is(err, registry.ErrMissingAddress),
			errors.Is(err, registry.ErrUnknownCity),
			errors.Is(err, registry.ErrBadCoordinates):
			h.writeError(w, http.StatusBadRequest, "invalid_registration", err.Error())
		default:
			h.logger.Error("registration failed", zap.Error(err))
			h.writeError(w, http.StatusInternalServerError, "registration_error", "Could not store the registration")
		}
		return
	}

	h.writeJSON(w, http.StatusCreated, accepted)
}

// LogSearch accepts client-side search telemetry and forwards it to the
// analytics stream. Accepted even when the stream is down; telemetry is
// best-effort.
func (h *Handler) LogSearch(w http.ResponseWriter, r *http.Request) {
	var event models.SearchLogEvent
	limited := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(limited).Decode(&event); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON search event")
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.RequestID = RequestIDFromContext(r.Context())

	if h.searchLogs != nil {
		if err := h.searchLogs.PublishSearchLog(r.Context(), &event); err != nil {
			h.logger.Warn("publishing search log", zap.Error(err))
		}
	}

	w.WriteHeader(http.StatusAccepted)
}

type chatRequest struct {
	Message string `json:"message"`
	CityID  int    `json:"city_id"`
	// ContextQuery is the search term active in the UI when the user opened
	// the chat; its directory results ground the assistant's reply.
	ContextQuery string                    `json:"context_query,omitempty"`
	Location     *models.GroundingLocation `json:"location,omitempty"`
}

// Chat proxies one conversation turn to the assistant, grounding it with the
// directory results for the UI's active search term.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		h.writeError(w, http.StatusServiceUnavailable, "assistant_disabled", "Assistant is not configured")
		return
	}

	var req chatRequest
	limited := io.LimitReader(r.Body, maxRequestBodySize)
	if err := json.NewDecoder(limited).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be a JSON chat turn")
		return
	}
	if req.Message == "" {
		h.writeError(w, http.StatusBadRequest, "missing_message", "Field 'message' is required")
		return
	}

	cityName := ""
	if city, ok := h.catalog.CityByID(req.CityID); ok {
		cityName = city.Name
	}

	localContext := ""
	if req.ContextQuery != "" {
		results := h.directory.Search(r.Context(), req.ContextQuery, req.CityID)
		localContext = directory.LocalContext(results)
	}

	msg := h.assistant.Chat(r.Context(), assistant.ChatRequest{
		Message:      req.Message,
		CityName:     cityName,
		UserLocation: req.Location,
		LocalContext: localContext,
	})

	h.writeJSON(w, http.StatusOK, msg)
}

func (h *Handler) parseSearchRequest(r *http.Request) (query string, cityID int, err error) {
	if r.Method == http.MethodPost {
		var body struct {
			Query  string `json:"query"`
			CityID int    `json:"city_id"`
		}
		limited := io.LimitReader(r.Body, maxRequestBodySize)
		if err := json.NewDecoder(limited).Decode(&body); err != nil {
			return "", 0, errors.New("request body must be a JSON search request")
		}
		return body.Query, body.CityID, nil
	}

	query = r.URL.Query().Get("q")
	if c := r.URL.Query().Get("city_id"); c != "" {
		cityID, err = strconv.Atoi(c)
		if err != nil {
			return "", 0, errors.New("query parameter 'city_id' must be an integer")
		}
	}
	return query, cityID, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("writing json response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, map[string]string{
		"error": message,
		"code":  code,
	})
}
