package attestation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"targetonchain/internal/attestation/metrics"
	"targetonchain/internal/platform/tracer"
	dErrors "targetonchain/pkg/domain-errors"
	"targetonchain/pkg/platform/circuit"
)

// Client queries an EAS attestation index over its GraphQL endpoint.
//
// Known limitation: the index is queried for a single page; whatever the
// first response contains is what callers get. The criteria thresholds in use
// (>= 1, >= 10) sit comfortably inside one page, so pagination is deliberately
// not handled here.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *circuit.Breaker
	tracer     tracer.Tracer
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBreaker sets the circuit breaker guarding index calls.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithTracer sets the tracer for index call spans.
func WithTracer(t tracer.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates an attestation index client for the given GraphQL URL.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tracer:     tracer.NewNoop(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchValid returns the recipient's attestations that pass the validity
// predicate, optionally narrowed by schema id and attester. All address
// comparisons are case-insensitive on the index side. The schema id is
// re-checked client-side; the index has been observed returning rows outside
// the requested schema, so both filters stay in place.
func (c *Client) FetchValid(ctx context.Context, recipient, schemaID, attester string) ([]Attestation, error) {
	ctx, span := c.tracer.Start(ctx, tracer.SpanAttestationFetch,
		tracer.String(tracer.AttrRecipient, recipient),
		tracer.String(tracer.AttrSchemaID, schemaID),
	)

	attestations, err := c.fetch(ctx, recipient, schemaID, attester)
	if err != nil {
		span.End(err)
		return nil, err
	}

	filtered := make([]Attestation, 0, len(attestations))
	for _, a := range attestations {
		if !a.Valid() {
			continue
		}
		if schemaID != "" && a.Schema.ID != schemaID {
			continue
		}
		filtered = append(filtered, a)
	}

	span.SetAttributes(tracer.Int64(tracer.AttrCount, int64(len(filtered))))
	span.End(nil)
	return filtered, nil
}

func (c *Client) fetch(ctx context.Context, recipient, schemaID, attester string) ([]Attestation, error) {
	if c.breaker != nil && !c.breaker.Allow() {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "attestation index circuit open")
	}

	start := time.Now()
	attestations, err := c.query(ctx, recipient, schemaID, attester)
	if c.metrics != nil {
		c.metrics.ObserveFetch(start)
	}
	if err != nil {
		if c.metrics != nil {
			c.metrics.IncrementUpstreamError()
		}
		if c.breaker != nil {
			if _, change := c.breaker.RecordFailure(); change.Opened {
				c.logger.Warn("attestation index circuit opened", "breaker", c.breaker.Name())
				if c.metrics != nil {
					c.metrics.IncrementBreakerOpened()
				}
			}
		}
		return nil, err
	}

	if c.breaker != nil {
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.Info("attestation index circuit closed", "breaker", c.breaker.Name())
		}
	}
	return attestations, nil
}

func (c *Client) query(ctx context.Context, recipient, schemaID, attester string) ([]Attestation, error) {
	body, err := json.Marshal(map[string]string{
		"query": buildQuery(recipient, schemaID, attester),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode attestation query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "build attestation request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "attestation index call failed")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable,
			fmt.Sprintf("attestation index returned status %d", resp.StatusCode))
	}

	var envelope queryEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "decode attestation response")
	}
	if envelope.Data == nil {
		return nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "malformed attestation response: missing data")
	}

	return envelope.Data.Attestations, nil
}

// buildQuery assembles the filtered attestations query. Filters mirror the
// index's insensitive-equality mode for recipient, schema id, and attester.
func buildQuery(recipient, schemaID, attester string) string {
	filters := fmt.Sprintf(`recipient: { equals: %q, mode: insensitive }`, recipient)
	if schemaID != "" {
		filters += fmt.Sprintf(`, schemaId: { equals: %q, mode: insensitive }`, schemaID)
	}
	if attester != "" {
		filters += fmt.Sprintf(`, attester: { equals: %q, mode: insensitive }`, attester)
	}

	return fmt.Sprintf(`
    query Attestations {
      attestations(
        where: { %s }
      ) {
        id
        attester
        recipient
        refUID
        revocable
        revocationTime
        revoked
        expirationTime
        data
        schema {
          id
        }
      }
    }
  `, filters)
}
