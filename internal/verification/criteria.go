package verification

import (
	"fmt"

	dErrors "targetonchain/pkg/domain-errors"
)

// MatchingCriteria is the policy key stored on a frame. It selects which
// verification strategy and recommendation heuristic apply to an interaction.
type MatchingCriteria string

const (
	CriteriaReceiptsRunning MatchingCriteria = "RECEIPTS_XYZ_ALL_TIME_RUNNING"
	CriteriaCoinbaseCountry MatchingCriteria = "COINBASE_ONCHAIN_VERIFICATIONS_COUNTRY"
	CriteriaCoinbaseAccount MatchingCriteria = "COINBASE_ONCHAIN_VERIFICATIONS_ACCOUNT"
	CriteriaCoinbaseOne     MatchingCriteria = "COINBASE_ONCHAIN_VERIFICATIONS_ONE"

	// Declared but without a registered strategy; interactions against these
	// fall through to the random-fallback recommendation.
	CriteriaPoapsOwned MatchingCriteria = "POAPS_OWNED"
	CriteriaAll        MatchingCriteria = "ALL"
)

var allCriteria = map[MatchingCriteria]struct{}{
	CriteriaReceiptsRunning: {},
	CriteriaCoinbaseCountry: {},
	CriteriaCoinbaseAccount: {},
	CriteriaCoinbaseOne:     {},
	CriteriaPoapsOwned:      {},
	CriteriaAll:             {},
}

// ParseCriteria validates a raw criteria value from a frame authoring request.
func ParseCriteria(raw string) (MatchingCriteria, error) {
	c := MatchingCriteria(raw)
	if _, ok := allCriteria[c]; !ok {
		return "", dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown matching criteria %q", raw))
	}
	return c, nil
}
