package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/container-lab/liveness/pkg/models"
)

// Format selects how the root route renders its greeting.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Handler serves the fixed root and health payloads. Bodies are encoded once
// so every response for a route is byte-identical.
type Handler struct {
	format Format
	root   []byte
	health []byte
}

// NewHandler builds a Handler. Unknown formats are treated as FormatJSON.
func NewHandler(format Format) *Handler {
	h := &Handler{format: format}
	if format == FormatText {
		h.root = []byte(models.RootText)
	} else {
		h.format = FormatJSON
		h.root = mustEncode(models.RootPayload())
	}
	h.health = mustEncode(models.HealthPayload())
	return h
}

// Register mounts GET / and GET /health on r. Other methods on those paths
// get the same 404 as unknown paths.
func (h *Handler) Register(r *mux.Router) {
	r.MethodNotAllowedHandler = http.NotFoundHandler()
	r.HandleFunc("/", h.Root).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodHead)
}

// NewRouter returns a router with only the liveness routes registered.
// Everything else gets the router's default 404.
func NewRouter(format Format) *mux.Router {
	r := mux.NewRouter()
	NewHandler(format).Register(r)
	return r
}

// Root responds with the greeting payload.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	if h.format == FormatText {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	} else {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.root)
}

// Health responds with a simple JSON health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.health)
}

func mustEncode(p models.Payload) []byte {
	b, err := json.Marshal(p)
	if err != nil {
		// two string fields; cannot fail
		panic(err)
	}
	return b
}
