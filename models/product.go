package models

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"
)

type Product struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Sku       string    `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// NormalizeSku derives the catalog key from a display name: internal
// whitespace removed, uppercased. The mapping is lossy on purpose: two
// names that normalize to the same sku are the same product.
func NormalizeSku(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}

// ResolveProducts reconciles a batch of product names against the catalog and
// bulk-creates the ones not seen before. The first name encountered for a sku
// becomes its display name. Resolution is total: every non-blank input name
// maps to a product id in the returned map, or an error is returned.
func ResolveProducts(ctx context.Context, tx *gorm.DB, names []string) (map[string]int, error) {
	skuName := make(map[string]string)
	skus := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		sku := NormalizeSku(name)
		if _, seen := skuName[sku]; !seen {
			skuName[sku] = name
			skus = append(skus, sku)
		}
	}
	if len(skus) == 0 {
		return map[string]int{}, nil
	}

	var existing []Product
	if err := tx.WithContext(ctx).Where("sku IN ?", skus).Find(&existing).Error; err != nil {
		return nil, fmt.Errorf("error finding products: %v", err)
	}
	existingSkus := make(map[string]bool, len(existing))
	for _, p := range existing {
		existingSkus[p.Sku] = true
	}

	toCreate := make([]Product, 0)
	for _, sku := range skus {
		if !existingSkus[sku] {
			toCreate = append(toCreate, Product{Name: skuName[sku], Sku: sku})
		}
	}
	if len(toCreate) > 0 {
		if err := tx.WithContext(ctx).Create(&toCreate).Error; err != nil {
			return nil, fmt.Errorf("could not create products: %v", err)
		}
	}

	// Re-fetch so ids are authoritative regardless of how inserts were batched.
	var all []Product
	if err := tx.WithContext(ctx).Where("sku IN ?", skus).Find(&all).Error; err != nil {
		return nil, fmt.Errorf("error re-fetching products: %v", err)
	}
	skuToId := make(map[string]int, len(all))
	for _, p := range all {
		skuToId[p.Sku] = p.ID
	}
	for _, sku := range skus {
		if _, ok := skuToId[sku]; !ok {
			return nil, fmt.Errorf("product resolution incomplete for sku %s", sku)
		}
	}
	return skuToId, nil
}
