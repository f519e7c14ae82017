package catalog

// ---------------------------------------------------------------------------
// Reconciliation Result
// ---------------------------------------------------------------------------

// Result is the classified outcome of reconciling a remote snapshot against
// the internal database. Every remote product lands in at most one of
// ItemsToAdd / ItemsToUpdate / GoodItems; every remote variant lands in at
// most one of VariantsToAdd / VariantsToUpdate / InvalidVariants, or in none
// when it is already synced.
type Result struct {
	ItemsToAdd    []*Product `json:"itemsToAdd"`
	ItemsToUpdate []*Product `json:"itemsToUpdate"`
	GoodItems     []*Product `json:"goodItems"`
	ItemsToRemove []Item     `json:"itemsToRemove"`

	VariantsToAdd    []*Variant    `json:"variantsToAdd"`
	VariantsToUpdate []*Variant    `json:"variantsToUpdate"`
	VariantsToRemove []ItemVariant `json:"variantsToRemove"`

	// Distinct option values/names observed among variants being added or
	// updated, in first-appearance order.
	VariantOptionsToAdd []string `json:"variantOptionsToAdd"`
	VariantNamesToAdd   []string `json:"variantNamesToAdd"`

	InvalidVariants []*Variant `json:"invalidVariants"`
}

// NewResult returns an empty result with all lists allocated, so the zero
// state serializes as empty arrays rather than nulls.
func NewResult() *Result {
	return &Result{
		ItemsToAdd:          make([]*Product, 0),
		ItemsToUpdate:       make([]*Product, 0),
		GoodItems:           make([]*Product, 0),
		ItemsToRemove:       make([]Item, 0),
		VariantsToAdd:       make([]*Variant, 0),
		VariantsToUpdate:    make([]*Variant, 0),
		VariantsToRemove:    make([]ItemVariant, 0),
		VariantOptionsToAdd: make([]string, 0),
		VariantNamesToAdd:   make([]string, 0),
		InvalidVariants:     make([]*Variant, 0),
	}
}

// HasChanges reports whether applying the result would mutate the internal
// database. Good items, accumulator sets and invalid variants alone are not
// changes.
func (r *Result) HasChanges() bool {
	return len(r.ItemsToAdd) > 0 ||
		len(r.ItemsToUpdate) > 0 ||
		len(r.ItemsToRemove) > 0 ||
		len(r.VariantsToAdd) > 0 ||
		len(r.VariantsToUpdate) > 0 ||
		len(r.VariantsToRemove) > 0
}

// addOptionValue records an option value, preserving first-appearance order.
func (r *Result) addOptionValue(value string) {
	for _, existing := range r.VariantOptionsToAdd {
		if existing == value {
			return
		}
	}
	r.VariantOptionsToAdd = append(r.VariantOptionsToAdd, value)
}

// addOptionName records an option name, preserving first-appearance order.
func (r *Result) addOptionName(name string) {
	for _, existing := range r.VariantNamesToAdd {
		if existing == name {
			return
		}
	}
	r.VariantNamesToAdd = append(r.VariantNamesToAdd, name)
}

// Merge folds another result into this one. Product and variant lists append
// in order; the option accumulators keep first-appearance order across both
// results. Used to aggregate windowed results for reporting.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.ItemsToAdd = append(r.ItemsToAdd, other.ItemsToAdd...)
	r.ItemsToUpdate = append(r.ItemsToUpdate, other.ItemsToUpdate...)
	r.GoodItems = append(r.GoodItems, other.GoodItems...)
	r.ItemsToRemove = append(r.ItemsToRemove, other.ItemsToRemove...)
	r.VariantsToAdd = append(r.VariantsToAdd, other.VariantsToAdd...)
	r.VariantsToUpdate = append(r.VariantsToUpdate, other.VariantsToUpdate...)
	r.VariantsToRemove = append(r.VariantsToRemove, other.VariantsToRemove...)
	r.InvalidVariants = append(r.InvalidVariants, other.InvalidVariants...)
	for _, value := range other.VariantOptionsToAdd {
		r.addOptionValue(value)
	}
	for _, name := range other.VariantNamesToAdd {
		r.addOptionName(name)
	}
}
