package catalog

// ---------------------------------------------------------------------------
// Remote Catalog Value Objects
// ---------------------------------------------------------------------------

// Image represents a product or variant image on the remote platform.
type Image struct {
	URL string `json:"url"`
}

// SelectedOption represents one option name/value pair on a remote variant,
// e.g. ("Size", "XL"). Single-variant products carry the platform sentinels
// ("Title", "Default Title") which are collapsed during normalization.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Variant represents a product variant fetched from the remote platform.
//
// The Synced, Invalid, ItemID and ItemName fields are reconciliation
// annotations. They are never set on fetched input: Reconcile clones the
// snapshot and annotates the clones, so callers' variants stay untouched.
type Variant struct {
	ID               string           `json:"id"`
	SKU              string           `json:"sku"`
	Title            string           `json:"title"`
	DisplayName      string           `json:"displayName"`
	Price            string           `json:"price"`
	CompareAtPrice   *string          `json:"compareAtPrice"`
	AvailableForSale bool             `json:"availableForSale"`
	Image            *Image           `json:"image"`
	SelectedOptions  []SelectedOption `json:"selectedOptions"`

	// Reconciliation annotations.
	Synced   *bool  `json:"synced,omitempty"`
	Invalid  bool   `json:"invalid,omitempty"`
	ItemID   int64  `json:"itemId,omitempty"`
	ItemName string `json:"itemName,omitempty"`
}

// Clone returns a deep copy of the variant.
func (v *Variant) Clone() *Variant {
	clone := *v
	if v.CompareAtPrice != nil {
		price := *v.CompareAtPrice
		clone.CompareAtPrice = &price
	}
	if v.Image != nil {
		img := *v.Image
		clone.Image = &img
	}
	if v.Synced != nil {
		synced := *v.Synced
		clone.Synced = &synced
	}
	clone.SelectedOptions = make([]SelectedOption, len(v.SelectedOptions))
	copy(clone.SelectedOptions, v.SelectedOptions)
	return &clone
}

// MarkSynced sets the synced annotation.
func (v *Variant) MarkSynced(synced bool) {
	v.Synced = &synced
}

// Product represents a product fetched from the remote platform, with its
// variants and ordered image list (first usable image wins as the variant
// fallback).
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Images      []Image   `json:"images"`
	Variants    []*Variant `json:"variants"`
}

// Clone returns a deep copy of the product and its variants.
func (p *Product) Clone() *Product {
	clone := *p
	clone.Images = make([]Image, len(p.Images))
	copy(clone.Images, p.Images)
	clone.Variants = make([]*Variant, len(p.Variants))
	for i, v := range p.Variants {
		clone.Variants[i] = v.Clone()
	}
	return &clone
}

// CloneProducts deep-copies a remote snapshot.
func CloneProducts(products []*Product) []*Product {
	clones := make([]*Product, len(products))
	for i, p := range products {
		clones[i] = p.Clone()
	}
	return clones
}

// ValidVariants returns the variants that survived image resolution.
func (p *Product) ValidVariants() []*Variant {
	valid := make([]*Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		if !v.Invalid {
			valid = append(valid, v)
		}
	}
	return valid
}

// Page represents one page of the remote catalog.
type Page struct {
	Products    []*Product
	HasNextPage bool
	EndCursor   string
}
