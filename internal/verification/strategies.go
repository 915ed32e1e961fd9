package verification

import "fmt"

// receiptsRunningThreshold is how many valid running-activity attestations a
// wallet needs before the running criteria verifies.
const receiptsRunningThreshold = 10

// strategy pins a criteria to its schema/attester pair, its count threshold,
// and the success/failure narratives shown to the viewer.
type strategy struct {
	schema    string
	attester  string
	threshold int
	success   func(address string) string
	failure   func(address string) string
}

// strategyFor resolves a criteria to its strategy. The criteria set is fixed,
// so this is a closed switch rather than an open registry; POAPS_OWNED and ALL
// deliberately have no case and report ok=false, as does any unknown value.
func (s *Service) strategyFor(criteria MatchingCriteria) (strategy, bool) {
	switch criteria {
	case CriteriaReceiptsRunning:
		return strategy{
			schema:    s.criteria.ReceiptsRunningSchema,
			attester:  s.criteria.ReceiptsAttester,
			threshold: receiptsRunningThreshold,
			success: func(address string) string {
				return fmt.Sprintf("10 or more attestations found on Receipts.xyz for %s. A special product is recommended.", address)
			},
			failure: func(address string) string {
				return fmt.Sprintf("Not more than 10 attestations found on Receipts.xyz for %s. A random product is recommended.", address)
			},
		}, true
	case CriteriaCoinbaseCountry:
		return strategy{
			schema:    s.criteria.CoinbaseCountrySchema,
			attester:  s.criteria.CoinbaseAttester,
			threshold: 1,
			success: func(address string) string {
				return fmt.Sprintf("Country of residence verified for %s on Coinbase Onchain. A product based on the country is recommended.", address)
			},
			failure: func(address string) string {
				return fmt.Sprintf("Country of residence not verified for %s on Coinbase Onchain. A random product is recommended.", address)
			},
		}, true
	case CriteriaCoinbaseAccount:
		return strategy{
			schema:    s.criteria.CoinbaseAccountSchema,
			attester:  s.criteria.CoinbaseAttester,
			threshold: 1,
			success: func(address string) string {
				return fmt.Sprintf("Coinbase account member attestation for %s. A special product is recommended.", address)
			},
			failure: func(address string) string {
				return fmt.Sprintf("No Coinbase account member attestation for %s. A random product is recommended.", address)
			},
		}, true
	case CriteriaCoinbaseOne:
		return strategy{
			schema:    s.criteria.CoinbaseOneSchema,
			attester:  s.criteria.CoinbaseAttester,
			threshold: 1,
			success: func(address string) string {
				return fmt.Sprintf("Coinbase One account member attestation for %s. A special product is recommended.", address)
			},
			failure: func(address string) string {
				return fmt.Sprintf("No Coinbase One account member attestation for %s. A random product is recommended.", address)
			},
		}, true
	default:
		return strategy{}, false
	}
}
