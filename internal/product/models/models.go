package models

// Product is a storefront catalog entry. Products are synced from the
// storefront platform and read-only to the recommendation flow; the policy
// selects one instance per interaction.
type Product struct {
	ID                    int64  `json:"id"`
	Shop                  string `json:"shop"`
	Title                 string `json:"title"`
	Description           string `json:"description"`
	Image                 string `json:"image"`
	Handle                string `json:"handle"`
	VariantID             string `json:"variantId"`
	VariantFormattedPrice string `json:"variantFormattedPrice"`
}

// Purchasable reports whether the product has a variant that can go straight
// into a cart, which decides whether a Buy button is rendered.
func (p Product) Purchasable() bool {
	return p.VariantID != ""
}
