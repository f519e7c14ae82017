package catalog

// DescriptionLimit is the maximum description length stored internally.
// Remote descriptions are truncated to this length before comparison.
const DescriptionLimit = 700

// ---------------------------------------------------------------------------
// Internal Database Records
// ---------------------------------------------------------------------------

// ItemOption represents a selected option on an internal variant, pairing a
// named option type with a value.
type ItemOption struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ItemVariant represents a variant record in the internal database.
type ItemVariant struct {
	ID              int64        `json:"id"`
	ItemID          int64        `json:"itemId"`
	ShopifyID       string       `json:"shopifyId"`
	Name            string       `json:"name"`
	Price           string       `json:"price"`
	MerchantSKU     string       `json:"merchantSku"`
	ImageURL        string       `json:"imageUrl"`
	IsEnabled       bool         `json:"isEnabled"`
	SelectedOptions []ItemOption `json:"selectedOptions"`
}

// Item represents a product record in the internal database. ShopifyID is
// empty until the item has been linked to a remote product.
type Item struct {
	ID          int64         `json:"id"`
	MerchantID  int64         `json:"merchantId"`
	ShopifyID   string        `json:"shopifyId"`
	Name        string        `json:"name"`
	Currency    string        `json:"currency"`
	ImageURL    string        `json:"imageUrl"`
	Description string        `json:"description"`
	Variants    []ItemVariant `json:"itemVariants"`
}

// VariantByShopifyID returns the variant linked to the given remote variant
// id, or nil when the item has no such variant.
func (i *Item) VariantByShopifyID(shopifyID string) *ItemVariant {
	for idx := range i.Variants {
		if i.Variants[idx].ShopifyID == shopifyID {
			return &i.Variants[idx]
		}
	}
	return nil
}

// TruncateDescription trims a remote description to the internally stored
// length. Counted in runes so multi-byte text is never split mid-character.
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) > DescriptionLimit {
		return string(runes[:DescriptionLimit])
	}
	return description
}
