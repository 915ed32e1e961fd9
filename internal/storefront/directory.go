// Package storefront lists the storefronts a creator can attach a frame to.
// The directory ships embedded; a platform sync would replace it.
package storefront

import (
	_ "embed"
	"encoding/json"
	"strings"

	dErrors "targetonchain/pkg/domain-errors"
)

//go:embed data/stores.json
var storesJSON []byte

// Store is one storefront a frame can point at.
type Store struct {
	Shop    string `json:"shop"`
	Name    string `json:"name"`
	Creator string `json:"creator"`
	Logo    string `json:"logo"`
}

// Directory is the read-only storefront listing.
type Directory struct {
	stores []Store
}

// NewDirectory loads the embedded storefront listing.
func NewDirectory() (*Directory, error) {
	var stores []Store
	if err := json.Unmarshal(storesJSON, &stores); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "decode embedded store directory")
	}
	return &Directory{stores: stores}, nil
}

// List filters the directory. Both filters are case-insensitive: an empty
// creator matches every store, a query matches a substring of the store name.
func (d *Directory) List(creator, query string) []Store {
	lowered := strings.ToLower(query)
	out := make([]Store, 0, len(d.stores))
	for _, store := range d.stores {
		if creator != "" && !strings.EqualFold(store.Creator, creator) {
			continue
		}
		if lowered != "" && !strings.Contains(strings.ToLower(store.Name), lowered) {
			continue
		}
		out = append(out, store)
	}
	return out
}
