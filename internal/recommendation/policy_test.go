package recommendation

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"targetonchain/internal/attestation"
	"targetonchain/internal/product/models"
	"targetonchain/internal/verification"
	dErrors "targetonchain/pkg/domain-errors"
)

const baseURL = "https://frames.example"

func encodeCountry(t *testing.T, value string) string {
	t.Helper()
	typ, err := abi.NewType("string", "", nil)
	require.NoError(t, err)
	packed, err := abi.Arguments{{Name: attestation.SchemaCountryResidence, Type: typ}}.Pack(value)
	require.NoError(t, err)
	return hexutil.Encode(packed)
}

type PolicySuite struct {
	suite.Suite
	products []models.Product
}

func (s *PolicySuite) SetupTest() {
	s.products = []models.Product{
		{ID: 1, Shop: "shop.example", Title: "Trail Shoes", Description: "Running shoes for trail jogging", Image: "https://cdn.example/shoes.png", VariantID: "v1", VariantFormattedPrice: "$120"},
		{ID: 2, Shop: "shop.example", Title: "Argentina Jersey", Description: "Official Argentina away jersey", Image: "https://cdn.example/jersey.png", VariantID: "v2", VariantFormattedPrice: "$90"},
		{ID: 3, Shop: "shop.example", Title: "Special Edition Hoodie", Description: "Special edition hoodie, numbered", Image: "https://cdn.example/hoodie.png", VariantID: "v3", VariantFormattedPrice: "$150"},
	}
}

// fixed makes the fallback draw deterministic.
func fixed(idx int) Option {
	return WithIntn(func(n int) int { return idx % n })
}

func (s *PolicySuite) TestEmptyCatalog() {
	policy := New(baseURL)

	_, err := policy.Recommend(Input{Products: nil, Address: "0xABC"})

	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNoProducts))
}

func (s *PolicySuite) TestRunningPicksMatchingProduct() {
	policy := New(baseURL, fixed(1))

	rec, err := policy.Recommend(Input{
		Criteria:    verification.CriteriaReceiptsRunning,
		Valid:       true,
		Evidence:    &verification.Evidence{Count: 12},
		Products:    s.products,
		Address:     "0xABC",
		Explanation: "10 or more attestations found",
	})

	s.Require().NoError(err)
	s.Equal(int64(1), rec.Product.ID)
	s.Equal(RuleCriteria, rec.Rule)
	s.Equal("10 or more attestations found", rec.Explanation)
	s.Contains(rec.ImageSrc, "Congrats+on+your+%2B10th+run%21")
	s.Contains(rec.ImageSrc, baseURL+"/api/og?")
}

func (s *PolicySuite) TestRunningWithoutMatchFallsBack() {
	policy := New(baseURL, fixed(2))
	products := []models.Product{
		{ID: 9, Title: "Mug", Description: "A ceramic mug"},
		{ID: 10, Title: "Cap", Description: "A wool cap"},
		{ID: 11, Title: "Scarf", Description: "A knit scarf"},
	}

	rec, err := policy.Recommend(Input{
		Criteria:    verification.CriteriaReceiptsRunning,
		Valid:       true,
		Products:    products,
		Address:     "0xABC",
		Explanation: "10 or more attestations found",
	})

	s.Require().NoError(err)
	s.Equal(int64(11), rec.Product.ID)
	s.Equal(RuleFallback, rec.Rule)
	s.Equal("No onchain data or matching product found for 0xABC. A random product is recommended.", rec.Explanation)
}

func (s *PolicySuite) TestCountryMatchesProductDescription() {
	policy := New(baseURL)

	rec, err := policy.Recommend(Input{
		Criteria: verification.CriteriaCoinbaseCountry,
		Valid:    true,
		Evidence: &verification.Evidence{
			Count:       1,
			Attestation: &attestation.Attestation{Data: encodeCountry(s.T(), "Argentina")},
		},
		Products:    s.products,
		Address:     "0xABC",
		Explanation: "Country of residence verified",
	})

	s.Require().NoError(err)
	s.Equal(int64(2), rec.Product.ID)
	s.Equal(RuleCriteria, rec.Rule)
	s.Equal("Country of residence verified as Argentina for 0xABC on Coinbase Onchain", rec.Explanation)
}

func (s *PolicySuite) TestCountryWithoutProductKeepsNarrative() {
	policy := New(baseURL, fixed(0))

	rec, err := policy.Recommend(Input{
		Criteria: verification.CriteriaCoinbaseCountry,
		Valid:    true,
		Evidence: &verification.Evidence{
			Count:       1,
			Attestation: &attestation.Attestation{Data: encodeCountry(s.T(), "Iceland")},
		},
		Products: s.products,
		Address:  "0xABC",
	})

	s.Require().NoError(err)
	s.Require().NotNil(rec.Product)
	s.Equal(RuleFallback, rec.Rule)
	s.Equal("Product not found for country of residence verified as Iceland for 0xABC on Coinbase Onchain", rec.Explanation)
}

func (s *PolicySuite) TestCountryUndecodablePayloadFallsBack() {
	policy := New(baseURL, fixed(0))

	rec, err := policy.Recommend(Input{
		Criteria: verification.CriteriaCoinbaseCountry,
		Valid:    true,
		Evidence: &verification.Evidence{
			Count:       1,
			Attestation: &attestation.Attestation{Data: "0xdead"},
		},
		Products: s.products,
		Address:  "0xABC",
	})

	s.Require().NoError(err)
	s.Equal(int64(1), rec.Product.ID)
	s.Equal(RuleFallback, rec.Rule)
	s.Equal("No onchain data or matching product found for 0xABC. A random product is recommended.", rec.Explanation)
}

func (s *PolicySuite) TestAccountAndOnePickSpecialProduct() {
	for _, criteria := range []verification.MatchingCriteria{
		verification.CriteriaCoinbaseAccount,
		verification.CriteriaCoinbaseOne,
	} {
		policy := New(baseURL)

		rec, err := policy.Recommend(Input{
			Criteria:    criteria,
			Valid:       true,
			Evidence:    &verification.Evidence{Count: 1},
			Products:    s.products,
			Address:     "0xABC",
			Explanation: "Coinbase verified account for 0xABC. A special product is recommended.",
		})

		s.Require().NoError(err)
		s.Equal(int64(3), rec.Product.ID, string(criteria))
		s.Equal(RuleCriteria, rec.Rule)
		s.Equal("Coinbase verified account for 0xABC. A special product is recommended.", rec.Explanation)
	}
}

func (s *PolicySuite) TestInvalidVerificationDrawsRandomProduct() {
	policy := New(baseURL, fixed(1))

	rec, err := policy.Recommend(Input{
		Criteria:    verification.CriteriaReceiptsRunning,
		Valid:       false,
		Products:    s.products,
		Address:     "0xABC",
		Explanation: "Less than 10 attestations found",
	})

	s.Require().NoError(err)
	s.Equal(int64(2), rec.Product.ID)
	s.Equal(RuleFallback, rec.Rule)
	s.Equal("No onchain data or matching product found for 0xABC. A random product is recommended.", rec.Explanation)
}

func (s *PolicySuite) TestProductImageURLCarriesProductFields() {
	policy := New(baseURL, fixed(0))

	rec, err := policy.Recommend(Input{Products: s.products, Address: "0xABC"})

	s.Require().NoError(err)
	s.Contains(rec.ImageSrc, "title=Trail+Shoes")
	s.Contains(rec.ImageSrc, "content=%24120")
	s.Contains(rec.ImageSrc, "width=600")
}

func TestPolicySuite(t *testing.T) {
	suite.Run(t, new(PolicySuite))
}

func TestPatterns(t *testing.T) {
	assert.True(t, runningPattern.MatchString("daily jog tracker"))
	assert.True(t, runningPattern.MatchString("RUNNING shorts"))
	assert.False(t, runningPattern.MatchString("walking stick"))
	assert.True(t, specialPattern.MatchString("special edition"))
}
