package catalog

import (
	"github.com/shopspring/decimal"
)

// Platform sentinels for single-variant products, collapsed to a canonical
// token during option normalization.
const (
	defaultTitleName  = "Title"
	defaultTitleValue = "Default Title"
	canonicalOption   = "Default"
)

// Reconcile compares a remote catalog snapshot against the matching internal
// records and classifies every product and variant into the result lists.
//
// The remote snapshot is treated as immutable input: products are deep-copied
// before annotation, and the returned result references only the copies.
// Classification of one product never depends on another; only the option
// accumulators are shared, and those are append-only and order-stable.
func Reconcile(products []*Product, items []Item) *Result {
	result := NewResult()
	clones := CloneProducts(products)

	if len(items) == 0 {
		// Nothing matched internally: every remote product is a
		// candidate new item.
		for _, product := range clones {
			classifyNewProduct(product, result)
		}
	} else {
		for _, product := range clones {
			if item := findItemByShopifyID(items, product.ID); item != nil {
				classifyExistingProduct(product, item, result)
			} else {
				classifyNewProduct(product, result)
			}
		}
	}

	detectRemovals(clones, items, result)
	return result
}

// findItemByShopifyID returns the internal item linked to the given remote
// product id, or nil.
func findItemByShopifyID(items []Item, shopifyID string) *Item {
	for idx := range items {
		if items[idx].ShopifyID == shopifyID {
			return &items[idx]
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Image Resolution
// ---------------------------------------------------------------------------

// resolveVariantImage ensures the variant has a usable image, falling back to
// the product's first image with a non-empty URL. A variant with no
// resolvable image is marked invalid and appended to the invalid accumulator.
func resolveVariantImage(variant *Variant, product *Product, result *Result) bool {
	if variant.Image != nil && variant.Image.URL != "" {
		return true
	}
	for _, img := range product.Images {
		if img.URL != "" {
			fallback := img
			variant.Image = &fallback
			return true
		}
	}
	variant.Invalid = true
	result.InvalidVariants = append(result.InvalidVariants, variant)
	return false
}

// ---------------------------------------------------------------------------
// Option Normalization
// ---------------------------------------------------------------------------

// normalizeOptions rewrites the platform's single-variant sentinels to the
// canonical "Default" token and collects distinct option names and values.
// The same rule set runs on both the new-variant and update paths.
func normalizeOptions(variant *Variant, result *Result) {
	for idx := range variant.SelectedOptions {
		option := &variant.SelectedOptions[idx]
		if option.Name == defaultTitleName {
			option.Name = canonicalOption
		}
		if option.Value == defaultTitleValue {
			option.Value = canonicalOption
		}
		result.addOptionValue(option.Value)
		result.addOptionName(option.Name)
	}
}

// ---------------------------------------------------------------------------
// Variant Diffing
// ---------------------------------------------------------------------------

// classifyMatchedVariant diffs a remote variant against its internal record.
// An unresolvable image makes the internal record stale: it is scheduled for
// removal. Otherwise the variant is either up to date (synced) or queued for
// update.
func classifyMatchedVariant(variant *Variant, dbVariant *ItemVariant, product *Product, result *Result) {
	if !resolveVariantImage(variant, product, result) {
		result.VariantsToRemove = append(result.VariantsToRemove, *dbVariant)
		return
	}

	normalizeOptions(variant, result)

	if variantChanged(variant, dbVariant) {
		variant.MarkSynced(false)
		result.VariantsToUpdate = append(result.VariantsToUpdate, variant)
		return
	}
	variant.MarkSynced(true)
}

// classifyNewVariant handles a remote variant with no internal counterpart on
// an existing item. Variants without a resolvable image are excluded
// entirely; they already sit in the invalid accumulator.
func classifyNewVariant(variant *Variant, product *Product, item *Item, result *Result) {
	if !resolveVariantImage(variant, product, result) {
		return
	}
	normalizeOptions(variant, result)
	variant.MarkSynced(false)
	variant.ItemID = item.ID
	variant.ItemName = product.Title
	result.VariantsToAdd = append(result.VariantsToAdd, variant)
}

// variantChanged reports whether any compared field differs between the
// remote variant and its internal record.
func variantChanged(variant *Variant, dbVariant *ItemVariant) bool {
	// An empty remote SKU is a wildcard, not a change to empty.
	if variant.SKU != "" && dbVariant.MerchantSKU != variant.SKU {
		return true
	}
	if !pricesEqual(dbVariant.Price, variant.Price) {
		return true
	}
	if dbVariant.ImageURL != variant.Image.URL {
		return true
	}
	if dbVariant.Name != normalizeVariantTitle(variant.Title) {
		return true
	}
	if dbVariant.IsEnabled != variant.AvailableForSale {
		return true
	}
	return false
}

// pricesEqual compares two decimal price strings at 2-decimal precision.
// Fixed-point comparison keeps trailing-zero variants ("10.0" vs "10.00")
// from producing false diffs. An unparsable side is never equal.
func pricesEqual(a, b string) bool {
	da, err := decimal.NewFromString(a)
	if err != nil {
		return false
	}
	db, err := decimal.NewFromString(b)
	if err != nil {
		return false
	}
	return da.StringFixed(2) == db.StringFixed(2)
}

// normalizeVariantTitle maps the platform's single-variant title sentinel to
// the empty string used internally.
func normalizeVariantTitle(title string) string {
	if title == defaultTitleValue {
		return ""
	}
	return title
}

// ---------------------------------------------------------------------------
// Product Diffing
// ---------------------------------------------------------------------------

// classifyExistingProduct compares a remote product's descriptive fields
// against its internal item and classifies it as good or needing update,
// then diffs every variant individually.
func classifyExistingProduct(product *Product, item *Item, result *Result) {
	descriptionMatches := item.Description == TruncateDescription(product.Description)
	nameMatches := item.Name == normalizeVariantTitle(product.Title)

	if descriptionMatches && nameMatches {
		result.GoodItems = append(result.GoodItems, product)
	} else {
		result.ItemsToUpdate = append(result.ItemsToUpdate, product)
	}

	for _, variant := range product.Variants {
		if dbVariant := item.VariantByShopifyID(variant.ID); dbVariant != nil {
			classifyMatchedVariant(variant, dbVariant, product, result)
		} else {
			classifyNewVariant(variant, product, item, result)
		}
	}
}

// classifyNewProduct validates the variants of a product with no internal
// counterpart. The product is only queued for creation when at least one
// variant survives image resolution.
func classifyNewProduct(product *Product, result *Result) {
	for _, variant := range product.Variants {
		variant.MarkSynced(false)
		variant.Invalid = false

		if resolveVariantImage(variant, product, result) {
			normalizeOptions(variant, result)
		}
	}

	if len(product.ValidVariants()) > 0 {
		result.ItemsToAdd = append(result.ItemsToAdd, product)
	}
}

// ---------------------------------------------------------------------------
// Removal Detection
// ---------------------------------------------------------------------------

// detectRemovals finds internal records that no longer exist remotely. An
// item whose remote product disappeared is removed wholesale; its variants
// are implied and never enumerated separately. For items that still match a
// remote product, variants absent from that product's variant set are queued
// for removal individually.
func detectRemovals(products []*Product, items []Item, result *Result) {
	for _, item := range items {
		product := findProductByID(products, item.ShopifyID)
		if product == nil {
			result.ItemsToRemove = append(result.ItemsToRemove, item)
			continue
		}
		for _, dbVariant := range item.Variants {
			if !productHasVariant(product, dbVariant.ShopifyID) {
				result.VariantsToRemove = append(result.VariantsToRemove, dbVariant)
			}
		}
	}
}

func findProductByID(products []*Product, id string) *Product {
	for _, product := range products {
		if product.ID == id {
			return product
		}
	}
	return nil
}

func productHasVariant(product *Product, shopifyID string) bool {
	for _, variant := range product.Variants {
		if variant.ID == shopifyID {
			return true
		}
	}
	return false
}
