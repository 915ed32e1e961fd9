// Package recommendation selects which product a frame shows a viewer, based
// on the verification outcome and the shop catalog. The policy is pure: no
// I/O, deterministic under an injected random source.
package recommendation

import (
	"fmt"
	"log/slog"
	"math/rand"
	"net/url"
	"regexp"
	"strings"

	"targetonchain/internal/attestation"
	"targetonchain/internal/product/models"
	"targetonchain/internal/verification"
	dErrors "targetonchain/pkg/domain-errors"
)

// Rules a recommendation can come from, used for metrics labels.
const (
	RuleCriteria = "criteria"
	RuleFallback = "fallback"
)

var (
	runningPattern = regexp.MustCompile(`(?i)Run|Running|Jog`)
	specialPattern = regexp.MustCompile(`(?i)Special`)
)

// Input carries everything the policy needs for one interaction.
type Input struct {
	Criteria    verification.MatchingCriteria
	Valid       bool
	Evidence    *verification.Evidence
	Products    []models.Product
	Address     string
	Explanation string
}

// Recommendation is the product chosen for a given interaction, plus its
// explanation and display image. Transient; never persisted.
type Recommendation struct {
	Product     *models.Product
	ImageSrc    string
	Explanation string
	Rule        string
}

// Policy applies the per-criteria selection heuristics with a uniform random
// fallback over the catalog.
type Policy struct {
	baseURL string
	intn    func(n int) int
	logger  *slog.Logger
}

// Option configures the Policy.
type Option func(*Policy)

// WithIntn injects the random draw, making the fallback deterministic in
// tests. The function must return a value in [0, n).
func WithIntn(intn func(n int) int) Option {
	return func(p *Policy) {
		p.intn = intn
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Policy) {
		p.logger = l
	}
}

// New creates a recommendation policy. baseURL is the service's public base
// URL used to compose display image requests.
func New(baseURL string, opts ...Option) *Policy {
	p := &Policy{
		baseURL: baseURL,
		// The package-level source is safe for concurrent use, unlike a
		// per-policy *rand.Rand.
		intn:   rand.Intn,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Recommend picks a product for the interaction. Criteria-specific heuristics
// apply only to a valid verification; every other path lands on the uniform
// random fallback, so a non-empty catalog always yields a product. An empty
// catalog is the one unrecoverable condition and returns no_products.
func (p *Policy) Recommend(in Input) (Recommendation, error) {
	if len(in.Products) == 0 {
		return Recommendation{}, dErrors.New(dErrors.CodeNoProducts, "shop catalog is empty")
	}

	rec := Recommendation{Explanation: in.Explanation, Rule: RuleCriteria}
	keepExplanation := false

	if in.Valid {
		switch in.Criteria {
		case verification.CriteriaReceiptsRunning:
			if product := firstMatch(in.Products, runningPattern); product != nil {
				rec.Product = product
				rec.ImageSrc = p.imageURL("Congrats on your +10th run!", "You're now eligible to buy:", product.Title, product.Image)
			}
		case verification.CriteriaCoinbaseCountry:
			keepExplanation = p.recommendByCountry(&rec, in)
		case verification.CriteriaCoinbaseAccount, verification.CriteriaCoinbaseOne:
			if product := firstMatch(in.Products, specialPattern); product != nil {
				rec.Product = product
				rec.ImageSrc = p.productImageURL(*product)
			}
		}
	}

	if rec.Product == nil {
		idx := p.intn(len(in.Products))
		product := in.Products[idx]
		rec.Product = &product
		rec.ImageSrc = p.productImageURL(product)
		rec.Rule = RuleFallback
		if !keepExplanation {
			rec.Explanation = fmt.Sprintf("No onchain data or matching product found for %s. A random product is recommended.", in.Address)
		}
	}

	return rec, nil
}

// recommendByCountry decodes the verified country from the attestation
// payload and matches it against product descriptions. Returns true when it
// set a country-specific explanation that the fallback must not overwrite.
func (p *Policy) recommendByCountry(rec *Recommendation, in Input) bool {
	if in.Evidence == nil || in.Evidence.Attestation == nil {
		return false
	}

	country, err := attestation.DecodeString(attestation.SchemaCountryResidence, in.Evidence.Attestation.Data)
	if err != nil {
		p.logger.Warn("country attestation payload did not decode",
			"address", in.Address, "error", err)
		return false
	}
	if country == "" {
		return false
	}

	lowered := strings.ToLower(country)
	for i := range in.Products {
		if strings.Contains(strings.ToLower(in.Products[i].Description), lowered) {
			rec.Product = &in.Products[i]
			rec.ImageSrc = p.productImageURL(in.Products[i])
			rec.Explanation = fmt.Sprintf("Country of residence verified as %s for %s on Coinbase Onchain", country, in.Address)
			return true
		}
	}

	// No product carries the country; the fallback supplies the product but
	// the narrative keeps what was actually verified.
	rec.Explanation = fmt.Sprintf("Product not found for country of residence verified as %s for %s on Coinbase Onchain", country, in.Address)
	return true
}

func firstMatch(products []models.Product, pattern *regexp.Regexp) *models.Product {
	for i := range products {
		if pattern.MatchString(products[i].Description) {
			return &products[i]
		}
	}
	return nil
}

func (p *Policy) productImageURL(product models.Product) string {
	return p.imageURL(product.Title, product.Description, product.VariantFormattedPrice, product.Image)
}

func (p *Policy) imageURL(title, subtitle, content, image string) string {
	query := url.Values{}
	query.Set("title", title)
	query.Set("subtitle", subtitle)
	query.Set("content", content)
	query.Set("url", image)
	query.Set("width", "600")
	return p.baseURL + "/api/og?" + query.Encode()
}
