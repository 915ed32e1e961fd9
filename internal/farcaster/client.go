package farcaster

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"targetonchain/internal/platform/tracer"
	dErrors "targetonchain/pkg/domain-errors"
)

// DefaultValidationURL is the Neynar frame validation endpoint.
const DefaultValidationURL = "https://api.neynar.com/v2/farcaster/frame/validate"

// Validator verifies a signed frame interaction and returns the verified
// message. ok=false with a nil error means the signature did not validate.
type Validator interface {
	Validate(ctx context.Context, req FrameRequest) (msg *Message, ok bool, err error)
}

// NeynarClient validates interaction signatures against the Neynar API.
type NeynarClient struct {
	url        string
	apiKey     string
	httpClient *http.Client
	tracer     tracer.Tracer
	logger     *slog.Logger
}

// NeynarOption configures the NeynarClient.
type NeynarOption func(*NeynarClient)

// WithValidationURL overrides the validation endpoint, mainly for tests.
func WithValidationURL(url string) NeynarOption {
	return func(c *NeynarClient) {
		c.url = url
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) NeynarOption {
	return func(c *NeynarClient) {
		c.httpClient = hc
	}
}

// WithTracer sets the tracer for validation spans.
func WithTracer(t tracer.Tracer) NeynarOption {
	return func(c *NeynarClient) {
		c.tracer = t
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) NeynarOption {
	return func(c *NeynarClient) {
		c.logger = l
	}
}

// NewNeynar creates a signature validation client.
func NewNeynar(apiKey string, opts ...NeynarOption) *NeynarClient {
	c := &NeynarClient{
		url:        DefaultValidationURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tracer:     tracer.NewNoop(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// validationResponse is the collaborator's envelope.
type validationResponse struct {
	IsValid bool     `json:"isValid"`
	Message *Message `json:"message"`
}

// Validate posts the raw interaction payload with the API key and returns the
// verified message. Network failures and non-200 statuses are upstream
// errors; a well-formed negative verdict is (nil, false, nil).
func (c *NeynarClient) Validate(ctx context.Context, frameReq FrameRequest) (*Message, bool, error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanFrameValidate)

	body, err := json.Marshal(frameReq)
	if err != nil {
		span.End(err)
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "encode frame request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		span.End(err)
		return nil, false, dErrors.Wrap(err, dErrors.CodeInternal, "build validation request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		wrapped := dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "signature verification call failed")
		span.End(wrapped)
		return nil, false, wrapped
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		err := dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("signature verification returned status %d", resp.StatusCode))
		span.End(err)
		return nil, false, err
	}

	var verdict validationResponse
	if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
		wrapped := dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode validation response")
		span.End(wrapped)
		return nil, false, wrapped
	}

	span.SetAttributes(tracer.Bool("is_valid", verdict.IsValid))
	span.End(nil)
	return verdict.Message, verdict.IsValid, nil
}

// Verify interface is satisfied.
var _ Validator = (*NeynarClient)(nil)
