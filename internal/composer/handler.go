package composer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"targetonchain/internal/farcaster"
	"targetonchain/internal/transport/httputil"
	dErrors "targetonchain/pkg/domain-errors"
)

// Handler serves the composer action endpoints a Farcaster client calls when
// a creator attaches this app to a cast.
type Handler struct {
	baseURL    string
	signingKey []byte
	validator  farcaster.Validator
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

// NewHandler creates the composer handler.
// Panics if the validator is nil - fail fast at startup.
func NewHandler(baseURL string, signingKey []byte, validator farcaster.Validator, opts ...Option) *Handler {
	if validator == nil {
		panic("composer handler: signature validator is required")
	}
	h := &Handler{
		baseURL:    baseURL,
		signingKey: signingKey,
		validator:  validator,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the composer routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/composer", h.handleMetadata)
	r.Post("/api/composer", h.handleAction)
}

// handleMetadata answers the composer action discovery request.
func (h *Handler) handleMetadata(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"type":        "composer",
		"name":        "Target Onchain",
		"icon":        "tag",
		"description": "Create a product frame backed by onchain attestations",
		"imageUrl":    h.baseURL + "/api/og?title=Target+Onchain&width=600",
		"action": map[string]string{
			"type": "post",
		},
	})
}

// handleAction verifies the creator's signed request and answers with the
// authoring form URL, carrying a short-lived creator token.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	var frameReq farcaster.FrameRequest
	if err := json.NewDecoder(r.Body).Decode(&frameReq); err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "decode composer action"))
		return
	}

	msg, ok, err := h.validator.Validate(r.Context(), frameReq)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !ok {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "composer action signature did not validate"))
		return
	}

	creator := fmt.Sprintf("fid:%d", msg.Interactor.FID)
	token, err := IssueCreatorToken(h.signingKey, creator)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	query := url.Values{}
	query.Set("token", token)

	h.logger.Info("composer form issued", "creator", creator)
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"type":  "form",
		"title": "Create a product frame",
		"url":   h.baseURL + "/composer/form?" + query.Encode(),
	})
}
