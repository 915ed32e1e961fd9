package verification

import (
	"context"
	"log/slog"

	"targetonchain/internal/attestation"
	"targetonchain/internal/platform/config"
	dErrors "targetonchain/pkg/domain-errors"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Fetcher

// Fetcher retrieves valid attestations for a recipient, narrowed by schema and
// attester. Satisfied by attestation.Client.
type Fetcher interface {
	FetchValid(ctx context.Context, recipient, schemaID, attester string) ([]attestation.Attestation, error)
}

// Evidence is the strategy-specific payload backing a verification result.
// Count is always set; Attestation carries the first matching record for
// criteria whose recommendation heuristic decodes it.
type Evidence struct {
	Count       int
	Attestation *attestation.Attestation
}

// Result is the transient outcome of running a frame's criteria against a
// wallet address. It is produced per request and discarded after rendering.
type Result struct {
	Valid       bool
	Explanation string
	Evidence    *Evidence
}

// Service runs the verification strategy configured on a frame. The rules are
// pure; the only I/O is the attestation index call behind the Fetcher port.
type Service struct {
	fetcher  Fetcher
	criteria config.Criteria
	logger   *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// New creates a verification service.
// Panics if the fetcher is nil - fail fast at startup.
func New(fetcher Fetcher, criteria config.Criteria, opts ...Option) *Service {
	if fetcher == nil {
		panic("verification.New: fetcher is required")
	}
	s := &Service{
		fetcher:  fetcher,
		criteria: criteria,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run resolves the criteria to a strategy, queries the attestation index, and
// applies the threshold rule. An unknown, unregistered, or unconfigured
// criteria fails soft: valid=false, empty explanation, no evidence, no error.
// Index failures propagate so the caller can short-circuit to its error
// response.
func (s *Service) Run(ctx context.Context, criteria MatchingCriteria, address string) (Result, error) {
	strat, ok := s.strategyFor(criteria)
	if !ok {
		s.logger.Debug("no strategy registered for criteria", "criteria", string(criteria))
		return Result{Valid: false, Explanation: ""}, nil
	}

	// Without a schema the index query would match every attestation, so a
	// criteria whose schema env var is unset never verifies anything.
	if strat.schema == "" {
		s.logger.Warn("criteria has no schema configured", "criteria", string(criteria))
		return Result{Valid: false, Explanation: ""}, nil
	}

	attestations, err := s.fetcher.FetchValid(ctx, address, strat.schema, strat.attester)
	if err != nil {
		return Result{}, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "verification fetch failed")
	}

	evidence := &Evidence{Count: len(attestations)}
	if len(attestations) > 0 {
		first := attestations[0]
		evidence.Attestation = &first
	}

	valid := len(attestations) >= strat.threshold
	explanation := strat.failure(address)
	if valid {
		explanation = strat.success(address)
	}

	return Result{Valid: valid, Explanation: explanation, Evidence: evidence}, nil
}
