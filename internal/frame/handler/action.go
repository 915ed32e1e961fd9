package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"targetonchain/internal/farcaster"
	"targetonchain/internal/recommendation"
	dErrors "targetonchain/pkg/domain-errors"
)

// Interaction outcomes for the metrics label.
const (
	outcomeSuccess          = "success"
	outcomeBadPayload       = "bad_payload"
	outcomeInvalidSignature = "invalid_signature"
	outcomeValidatorError   = "validator_error"
	outcomeBadFrameID       = "bad_frame_id"
	outcomeFrameNotFound    = "frame_not_found"
	outcomeVerification     = "verification_error"
	outcomeCatalogError     = "catalog_error"
	outcomeNoProducts       = "no_products"
)

// handleAction runs the interaction pipeline: verify the interaction
// signature, resolve the viewer's wallet, run the frame's criteria against
// the attestation index, pick a product, and answer with a frame document.
// Every failure path still answers HTTP 200 with the default error frame,
// because frame clients render whatever document comes back.
func (h *Handler) handleAction(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.metrics.ObserveInteraction(start)
	ctx := r.Context()

	var frameReq farcaster.FrameRequest
	if err := json.NewDecoder(r.Body).Decode(&frameReq); err != nil {
		h.errorFrame(w, outcomeBadPayload, "interaction payload did not decode", err)
		return
	}

	msg, ok, err := h.validator.Validate(ctx, frameReq)
	if err != nil {
		h.errorFrame(w, outcomeValidatorError, "signature verification failed", err)
		return
	}
	if !ok {
		h.errorFrame(w, outcomeInvalidSignature, "interaction signature did not validate", nil)
		return
	}

	address := msg.Address()
	dev := msg.Dev()

	id, err := frameID(r)
	if err != nil {
		h.errorFrame(w, outcomeBadFrameID, "frame id did not parse", err)
		return
	}

	frame, err := h.frames.Get(ctx, id)
	if err != nil {
		h.errorFrame(w, outcomeFrameNotFound, "frame lookup failed", err)
		return
	}

	result, err := h.verifier.Run(ctx, frame.MatchingCriteria, address)
	if err != nil {
		h.errorFrame(w, outcomeVerification, "verification failed", err)
		return
	}

	products, err := h.products.ListByShop(ctx, frame.Shop)
	if err != nil {
		h.errorFrame(w, outcomeCatalogError, "catalog lookup failed", err)
		return
	}

	rec, err := h.policy.Recommend(recommendation.Input{
		Criteria:    frame.MatchingCriteria,
		Valid:       result.Valid,
		Evidence:    result.Evidence,
		Products:    products,
		Address:     address,
		Explanation: result.Explanation,
	})
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNoProducts) {
			h.logger.Warn("shop has no products", "frame_id", frame.ID, "shop", frame.Shop)
			h.metrics.IncrementInteraction(outcomeNoProducts)
			writeHTML(w, farcaster.NoProductsFrame(h.baseURL))
			return
		}
		h.errorFrame(w, outcomeCatalogError, "recommendation failed", err)
		return
	}
	h.metrics.IncrementRecommendation(string(frame.MatchingCriteria), rec.Rule)

	buttons := []farcaster.Button{{
		Action: farcaster.ActionLink,
		Label:  "View",
		Target: fmt.Sprintf("https://%s/products/%s", frame.Shop, rec.Product.Handle),
	}}
	if rec.Product.Purchasable() {
		buttons = append(buttons, farcaster.Button{
			Action: farcaster.ActionLink,
			Label:  "Buy",
			Target: fmt.Sprintf("https://%s/cart/%s:1", frame.Shop, rec.Product.VariantID),
		})
	}
	if dev {
		buttons = append(buttons, farcaster.Button{
			Action: farcaster.ActionPost,
			Label:  "Explain",
			Target: fmt.Sprintf("%s/api/frame/%d/explain", h.baseURL, frame.ID),
		})
	}

	h.logger.Info("frame interaction served",
		"frame_id", frame.ID,
		"shop", frame.Shop,
		"criteria", string(frame.MatchingCriteria),
		"valid", result.Valid,
		"rule", rec.Rule,
		"product_id", rec.Product.ID,
		"dev", dev,
	)

	// State only travels in dev mode, where the Explain button reads it back.
	var state map[string]string
	if dev {
		state = map[string]string{"description": rec.Explanation}
	}

	h.metrics.IncrementInteraction(outcomeSuccess)
	writeHTML(w, farcaster.RenderHTML(farcaster.Frame{
		Buttons:       buttons,
		ImageSrc:      rec.ImageSrc,
		OGTitle:       "Target Onchain",
		OGDescription: rec.Product.Title,
		PostURL:       fmt.Sprintf("%s/api/frame/%d/action", h.baseURL, frame.ID),
		State:         state,
	}))
}

// handleExplain answers the dev-mode Explain button. The explanation travels
// in the frame state the client echoes back; the interaction signature is
// re-verified before the state is trusted into the image.
func (h *Handler) handleExplain(w http.ResponseWriter, r *http.Request) {
	var frameReq farcaster.FrameRequest
	if err := json.NewDecoder(r.Body).Decode(&frameReq); err != nil {
		h.errorFrame(w, outcomeBadPayload, "explain payload did not decode", err)
		return
	}

	_, ok, err := h.validator.Validate(r.Context(), frameReq)
	if err != nil {
		h.errorFrame(w, outcomeValidatorError, "signature verification failed", err)
		return
	}
	if !ok {
		h.errorFrame(w, outcomeInvalidSignature, "explain signature did not validate", nil)
		return
	}

	description, err := stateDescription(frameReq.UntrustedData.State)
	if err != nil {
		h.errorFrame(w, outcomeBadPayload, "frame state did not decode", err)
		return
	}

	id, err := frameID(r)
	if err != nil {
		h.errorFrame(w, outcomeBadFrameID, "frame id did not parse", err)
		return
	}

	query := url.Values{}
	query.Set("title", "Explanation")
	query.Set("subtitle", description)
	query.Set("width", "600")

	writeHTML(w, farcaster.RenderHTML(farcaster.Frame{
		ImageSrc: h.baseURL + "/api/og?" + query.Encode(),
		OGTitle:  "Target Onchain",
		PostURL:  fmt.Sprintf("%s/api/frame/%d/action", h.baseURL, id),
	}))
}

// handleHTML serves the initial frame document embedded in a storefront page:
// the configured image and a single post button wired to the action endpoint.
func (h *Handler) handleHTML(w http.ResponseWriter, r *http.Request) {
	id, err := frameID(r)
	if err != nil {
		h.errorFrame(w, outcomeBadFrameID, "frame id did not parse", err)
		return
	}

	frame, err := h.frames.Get(r.Context(), id)
	if err != nil {
		h.errorFrame(w, outcomeFrameNotFound, "frame lookup failed", err)
		return
	}

	actionURL := fmt.Sprintf("%s/api/frame/%d/action", h.baseURL, frame.ID)
	writeHTML(w, farcaster.RenderHTML(farcaster.Frame{
		Buttons:  []farcaster.Button{{Action: farcaster.ActionPost, Label: frame.Button, Target: actionURL}},
		ImageSrc: frame.Image,
		OGTitle:  frame.Title,
		PostURL:  actionURL,
	}))
}

func (h *Handler) errorFrame(w http.ResponseWriter, outcome, msg string, err error) {
	h.logger.Warn(msg, "outcome", outcome, "error", err)
	h.metrics.IncrementInteraction(outcome)
	writeHTML(w, farcaster.ErrorFrame(h.baseURL))
}

// stateDescription unpacks the URL-encoded JSON state a frame client echoes
// back and returns its description field.
func stateDescription(raw string) (string, error) {
	if raw == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "frame state is empty")
	}
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "frame state is not url-encoded")
	}

	var state struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(decoded), &state); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeBadRequest, "frame state is not json")
	}
	return state.Description, nil
}

func writeHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}
