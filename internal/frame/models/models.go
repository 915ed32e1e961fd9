package models

import "targetonchain/internal/verification"

// Frame is a per-storefront interactive card configuration. The matching
// criteria drives which verification strategy and recommendation heuristic
// apply when a viewer interacts with it.
type Frame struct {
	ID               int64                         `json:"id"`
	Shop             string                        `json:"shop"`
	Title            string                        `json:"title"`
	Image            string                        `json:"image"`
	Button           string                        `json:"button"`
	MatchingCriteria verification.MatchingCriteria `json:"matchingCriteria"`
}
