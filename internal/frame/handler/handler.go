// Package handler exposes the frame HTTP surface: the authoring JSON API and
// the interaction pipeline that answers Farcaster clients with frame HTML.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"targetonchain/internal/composer"
	"targetonchain/internal/farcaster"
	"targetonchain/internal/frame/metrics"
	"targetonchain/internal/frame/models"
	"targetonchain/internal/frame/service"
	productstore "targetonchain/internal/product/store"
	"targetonchain/internal/recommendation"
	"targetonchain/internal/transport/httputil"
	"targetonchain/internal/verification"
	dErrors "targetonchain/pkg/domain-errors"
)

// Verifier runs a frame's matching criteria against a wallet address.
// Satisfied by verification.Service.
type Verifier interface {
	Run(ctx context.Context, criteria verification.MatchingCriteria, address string) (verification.Result, error)
}

// Recommender picks the product an interaction responds with. Satisfied by
// recommendation.Policy.
type Recommender interface {
	Recommend(in recommendation.Input) (recommendation.Recommendation, error)
}

// Handler wires the frame routes.
type Handler struct {
	baseURL    string
	frames     *service.Service
	validator  farcaster.Validator
	verifier   Verifier
	products   productstore.Store
	policy     Recommender
	signingKey []byte
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(h *Handler) {
		h.metrics = m
	}
}

// WithSigningKey sets the key used to verify composer creator tokens on the
// slice endpoint.
func WithSigningKey(key []byte) Option {
	return func(h *Handler) {
		h.signingKey = key
	}
}

// New creates the frame handler.
// Panics if a required collaborator is nil - fail fast at startup.
func New(baseURL string, frames *service.Service, validator farcaster.Validator, verifier Verifier, products productstore.Store, policy Recommender, opts ...Option) *Handler {
	if frames == nil {
		panic("frame handler: frame service is required")
	}
	if validator == nil {
		panic("frame handler: signature validator is required")
	}
	if verifier == nil {
		panic("frame handler: verifier is required")
	}
	if products == nil {
		panic("frame handler: product store is required")
	}
	if policy == nil {
		panic("frame handler: recommendation policy is required")
	}

	h := &Handler{
		baseURL:   baseURL,
		frames:    frames,
		validator: validator,
		verifier:  verifier,
		products:  products,
		policy:    policy,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	return h
}

// Register mounts the frame routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/frame", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Put("/", h.handleUpdate)
		r.Post("/slice", h.handleCreateFromComposer)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGet)
			r.Delete("/", h.handleDelete)
			r.Get("/html", h.handleHTML)
			r.Post("/action", h.handleAction)
			r.Post("/explain", h.handleExplain)
		})
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	frames, err := h.frames.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frames)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := frameID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	frame, err := h.frames.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode create frame request"))
		return
	}

	frame, err := h.frames.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, frame)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateFrameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode update frame request"))
		return
	}

	frame, err := h.frames.Update(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, frame)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := frameID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.frames.Delete(r.Context(), models.DeleteFrameRequest{ID: id}); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sliceRequest is the composer form's create payload: the authoring fields
// plus the creator token issued by the composer action endpoint.
type sliceRequest struct {
	Token string `json:"token"`
	models.CreateFrameRequest
}

func (h *Handler) handleCreateFromComposer(w http.ResponseWriter, r *http.Request) {
	var req sliceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode slice request"))
		return
	}

	creator, err := composer.ParseCreatorToken(h.signingKey, req.Token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	frame, err := h.frames.Create(r.Context(), req.CreateFrameRequest)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.Info("frame created from composer", "frame_id", frame.ID, "creator", creator)
	httputil.WriteJSON(w, http.StatusCreated, frame)
}

func frameID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, "frame id must be numeric")
	}
	return id, nil
}
