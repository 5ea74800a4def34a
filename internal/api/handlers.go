// Package api exposes the inventory index over HTTP for dashboard datasources.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"inventory-api/internal/inventory"
)

// Options selects the route set and cross-origin behavior.
type Options struct {
	EnrichmentSupported  bool   // Honor the enrich query flag; when false hosts are never enriched
	AllHostsRouteEnabled bool   // Serve GET /query
	AllowedOrigin        string // Access-Control-Allow-Origin value
}

// StatusResponse is the body of GET /.
type StatusResponse struct {
	Details string `json:"details"`
}

// ErrorResponse is the body of a rejected request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Handler serves queries against an immutable inventory index.
type Handler struct {
	index  *inventory.Index
	opts   Options
	logger zerolog.Logger
}

// NewHandler creates a Handler for index.
func NewHandler(index *inventory.Index, opts Options, logger zerolog.Logger) *Handler {
	return &Handler{
		index:  index,
		opts:   opts,
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// Routes registers the inventory endpoints on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Status)
	mux.HandleFunc("GET /search", h.Search)
	mux.HandleFunc("GET /query/{group}", h.QueryGroup)
	if h.opts.AllHostsRouteEnabled {
		mux.HandleFunc("GET /query", h.QueryAll)
	}
	return mux
}

// NewRouter returns the full HTTP handler: routes wrapped in request id, access log and CORS middleware.
func NewRouter(index *inventory.Index, opts Options, logger zerolog.Logger) http.Handler {
	h := NewHandler(index, opts, logger)
	return RequestID(AccessLog(h.logger)(Cors(opts.AllowedOrigin)(h.Routes())))
}

// Status reports how many groups are known.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, StatusResponse{Details: h.index.Summary()})
}

// Search lists all group names.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.index.ListGroups())
}

// QueryGroup lists the hosts of one group. Unknown groups yield an empty list.
func (h *Handler) QueryGroup(w http.ResponseWriter, r *http.Request) {
	enrich, ok := h.enrichFlag(w, r)
	if !ok {
		return
	}

	group := r.PathValue("group")
	if !h.index.HasGroup(group) {
		h.logger.Debug().Str("group", group).Msg("query for unknown group")
	}

	h.writeJSON(w, http.StatusOK, h.index.ListHosts(group, enrich))
}

// QueryAll lists the hosts of every group.
func (h *Handler) QueryAll(w http.ResponseWriter, r *http.Request) {
	enrich, ok := h.enrichFlag(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, h.index.ListAllHosts(enrich))
}

// enrichFlag resolves the enrich query flag. It writes a 422 response and
// returns ok=false when the flag cannot be parsed.
func (h *Handler) enrichFlag(w http.ResponseWriter, r *http.Request) (enrich bool, ok bool) {
	if !h.opts.EnrichmentSupported {
		return false, true
	}

	values, present := r.URL.Query()["enrich"]
	if !present || len(values) == 0 {
		return true, true
	}

	enrich, err := parseBool(values[0])
	if err != nil {
		h.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Detail: err.Error()})
		return false, false
	}
	return enrich, true
}

// parseBool accepts the boolean spellings dashboard datasources send.
func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, fmt.Errorf("enrich: value %q could not be parsed to a boolean", value)
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("failed to encode response")
	}
}
