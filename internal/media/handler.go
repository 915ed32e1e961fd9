package media

import (
	"image/gif"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Handler serves rendered card images.
type Handler struct {
	renderer *Renderer
	logger   *slog.Logger
}

// HandlerOption configures the Handler.
type HandlerOption func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = l
	}
}

// NewHandler creates the image handler.
// Panics if the renderer is nil - fail fast at startup.
func NewHandler(renderer *Renderer, opts ...HandlerOption) *Handler {
	if renderer == nil {
		panic("media handler: renderer is required")
	}
	h := &Handler{renderer: renderer, logger: slog.Default()}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the image routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/og", h.handleOG)
	r.Get("/api/gif", h.handleGIF)
}

// handleOG renders a single card PNG from the query parameters. Frame image
// URLs across the service point here.
func (h *Handler) handleOG(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	img := h.renderer.Draw(Card{
		Title:    query.Get("title"),
		Subtitle: query.Get("subtitle"),
		Content:  query.Get("content"),
		Width:    queryWidth(query.Get("width")),
	})

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := png.Encode(w, img); err != nil {
		h.logger.Warn("og image encode failed", "error", err)
	}
}

// handleGIF renders a two-page animated card. The second page's parameters
// carry a "2" suffix; without them the result is a single-page GIF.
func (h *Handler) handleGIF(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	width := queryWidth(query.Get("width"))

	cards := []Card{{
		Title:    query.Get("title"),
		Subtitle: query.Get("subtitle"),
		Content:  query.Get("content"),
		Width:    width,
	}}
	if query.Get("title2") != "" || query.Get("subtitle2") != "" || query.Get("content2") != "" {
		cards = append(cards, Card{
			Title:    query.Get("title2"),
			Subtitle: query.Get("subtitle2"),
			Content:  query.Get("content2"),
			Width:    width,
		})
	}

	animation, err := h.renderer.DrawGIF(r.Context(), cards)
	if err != nil {
		h.logger.Warn("gif render failed", "error", err)
		http.Error(w, "gif render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "public, max-age=300")
	if err := gif.EncodeAll(w, animation); err != nil {
		h.logger.Warn("gif encode failed", "error", err)
	}
}

func queryWidth(raw string) int {
	width, err := strconv.Atoi(raw)
	if err != nil {
		return DefaultWidth
	}
	return width
}
