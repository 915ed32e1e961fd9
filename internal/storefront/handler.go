package storefront

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"targetonchain/internal/transport/httputil"
)

// Handler serves the storefront directory to the authoring form.
type Handler struct {
	directory *Directory
}

// NewHandler creates the directory handler.
// Panics if the directory is nil - fail fast at startup.
func NewHandler(directory *Directory) *Handler {
	if directory == nil {
		panic("storefront handler: directory is required")
	}
	return &Handler{directory: directory}
}

// Register mounts the directory routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/slice/stores", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	creator := r.URL.Query().Get("creator")
	search := r.URL.Query().Get("search")
	httputil.WriteJSON(w, http.StatusOK, h.directory.List(creator, search))
}
