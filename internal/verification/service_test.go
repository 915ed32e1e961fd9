package verification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"targetonchain/internal/attestation"
	"targetonchain/internal/platform/config"
	"targetonchain/internal/verification/mocks"
	dErrors "targetonchain/pkg/domain-errors"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	fetcher *mocks.MockFetcher
	service *Service
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.fetcher = mocks.NewMockFetcher(s.ctrl)
	s.service = New(
		s.fetcher,
		config.Criteria{
			ReceiptsRunningSchema: "0xrunning",
			ReceiptsAttester:      "0xreceipts",
			CoinbaseCountrySchema: "0xcountry",
			CoinbaseAccountSchema: "0xaccount",
			CoinbaseOneSchema:     "0xone",
			CoinbaseAttester:      "0xcoinbase",
		},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func manyAttestations(n int, schemaID string) []attestation.Attestation {
	out := make([]attestation.Attestation, n)
	for i := range out {
		out[i] = attestation.Attestation{ID: "a", Schema: attestation.SchemaRef{ID: schemaID}}
	}
	return out
}

// TestRun_ReceiptsThreshold enforces the count boundary on the running
// criteria: exactly 10 valid attestations verify, 9 do not.
func (s *ServiceSuite) TestRun_ReceiptsThreshold() {
	s.T().Run("10 attestations verify", func(t *testing.T) {
		s.fetcher.EXPECT().
			FetchValid(gomock.Any(), "0xabc", "0xrunning", "0xreceipts").
			Return(manyAttestations(10, "0xrunning"), nil)

		result, err := s.service.Run(context.Background(), CriteriaReceiptsRunning, "0xabc")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Equal(t, 10, result.Evidence.Count)
		assert.Contains(t, result.Explanation, "10 or more attestations found on Receipts.xyz for 0xabc")
	})

	s.T().Run("9 attestations do not verify", func(t *testing.T) {
		s.fetcher.EXPECT().
			FetchValid(gomock.Any(), "0xabc", "0xrunning", "0xreceipts").
			Return(manyAttestations(9, "0xrunning"), nil)

		result, err := s.service.Run(context.Background(), CriteriaReceiptsRunning, "0xabc")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, 9, result.Evidence.Count)
		assert.Contains(t, result.Explanation, "Not more than 10 attestations")
	})
}

// TestRun_CoinbaseCriteria verifies the count>=1 criteria carry the first
// attestation as evidence for downstream payload decoding.
func (s *ServiceSuite) TestRun_CoinbaseCriteria() {
	s.T().Run("country criteria carries first attestation", func(t *testing.T) {
		first := attestation.Attestation{ID: "country-1", Data: "0xdead", Schema: attestation.SchemaRef{ID: "0xcountry"}}
		s.fetcher.EXPECT().
			FetchValid(gomock.Any(), "0xabc", "0xcountry", "0xcoinbase").
			Return([]attestation.Attestation{first, {ID: "country-2"}}, nil)

		result, err := s.service.Run(context.Background(), CriteriaCoinbaseCountry, "0xabc")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		require.NotNil(t, result.Evidence.Attestation)
		assert.Equal(t, "country-1", result.Evidence.Attestation.ID)
		assert.Contains(t, result.Explanation, "Country of residence verified for 0xabc")
	})

	s.T().Run("account criteria with no attestations fails", func(t *testing.T) {
		s.fetcher.EXPECT().
			FetchValid(gomock.Any(), "0xabc", "0xaccount", "0xcoinbase").
			Return(nil, nil)

		result, err := s.service.Run(context.Background(), CriteriaCoinbaseAccount, "0xabc")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Nil(t, result.Evidence.Attestation)
		assert.Contains(t, result.Explanation, "No Coinbase account member attestation for 0xabc")
	})

	s.T().Run("one criteria uses its own schema", func(t *testing.T) {
		s.fetcher.EXPECT().
			FetchValid(gomock.Any(), "0xabc", "0xone", "0xcoinbase").
			Return(manyAttestations(1, "0xone"), nil)

		result, err := s.service.Run(context.Background(), CriteriaCoinbaseOne, "0xabc")
		require.NoError(t, err)
		assert.True(t, result.Valid)
	})
}

// TestRun_UnknownCriteria verifies the soft-fail contract: unregistered
// criteria return valid=false with an empty explanation and never error.
func (s *ServiceSuite) TestRun_UnknownCriteria() {
	for _, criteria := range []MatchingCriteria{CriteriaPoapsOwned, CriteriaAll, MatchingCriteria("BOGUS"), MatchingCriteria("")} {
		result, err := s.service.Run(context.Background(), criteria, "0xabc")
		require.NoError(s.T(), err, "criteria %q must not error", criteria)
		assert.False(s.T(), result.Valid)
		assert.Empty(s.T(), result.Explanation)
		assert.Nil(s.T(), result.Evidence)
	}
}

// TestRun_UnconfiguredCriteria verifies a criteria whose schema is unset fails
// soft without ever querying the index: an unfiltered query would count
// attestations of any schema toward the threshold.
func (s *ServiceSuite) TestRun_UnconfiguredCriteria() {
	service := New(s.fetcher, config.Criteria{},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	for _, criteria := range []MatchingCriteria{
		CriteriaReceiptsRunning,
		CriteriaCoinbaseCountry,
		CriteriaCoinbaseAccount,
		CriteriaCoinbaseOne,
	} {
		result, err := service.Run(context.Background(), criteria, "0xabc")
		require.NoError(s.T(), err, "criteria %q must not error", criteria)
		assert.False(s.T(), result.Valid)
		assert.Empty(s.T(), result.Explanation)
		assert.Nil(s.T(), result.Evidence)
	}
}

// TestRun_UpstreamErrorPropagates verifies index failures surface to the
// caller instead of being swallowed into a soft fail.
func (s *ServiceSuite) TestRun_UpstreamErrorPropagates() {
	s.fetcher.EXPECT().
		FetchValid(gomock.Any(), "0xabc", "0xrunning", "0xreceipts").
		Return(nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "index down"))

	_, err := s.service.Run(context.Background(), CriteriaReceiptsRunning, "0xabc")
	require.Error(s.T(), err)
	assert.True(s.T(), dErrors.HasCode(err, dErrors.CodeUpstreamUnavailable))
}

func TestParseCriteria(t *testing.T) {
	for _, valid := range []string{
		"RECEIPTS_XYZ_ALL_TIME_RUNNING",
		"COINBASE_ONCHAIN_VERIFICATIONS_COUNTRY",
		"COINBASE_ONCHAIN_VERIFICATIONS_ACCOUNT",
		"COINBASE_ONCHAIN_VERIFICATIONS_ONE",
		"POAPS_OWNED",
		"ALL",
	} {
		got, err := ParseCriteria(valid)
		require.NoError(t, err)
		assert.Equal(t, MatchingCriteria(valid), got)
	}

	_, err := ParseCriteria("NOT_A_CRITERIA")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
