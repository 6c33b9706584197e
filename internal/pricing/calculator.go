package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/SerkanKacar01/kaniou-orders/internal/models"
)

var (
	ErrUnknownProduct   = errors.New("unknown product type")
	ErrUnknownMaterial  = errors.New("unknown material for product type")
	ErrWidthOutOfRange  = errors.New("width out of range")
	ErrHeightOutOfRange = errors.New("height out of range")
	ErrAreaTooLarge     = errors.New("area exceeds maximum")
)

// Calculator prices made-to-measure products from the catalog. It has no
// side effects: identical input always yields identical output.
type Calculator struct {
	catalog Catalog
}

// NewCalculator creates a calculator over the given catalog.
func NewCalculator(catalog Catalog) *Calculator {
	return &Calculator{catalog: catalog}
}

// Calculate validates the request and returns a deterministic price.
// Width and height are rounded up to the next multiple of 10 cm before the
// area is computed; the catalog only prices in 10 cm increments and
// rounding down would under-charge.
func (c *Calculator) Calculate(req models.QuoteRequest) (*models.QuoteResult, error) {
	product, ok := c.catalog.Products[req.ProductType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProduct, req.ProductType)
	}

	factor, ok := product.Materials[req.Material]
	if !ok {
		return nil, fmt.Errorf("%w: %q for %q", ErrUnknownMaterial, req.Material, req.ProductType)
	}

	if req.WidthCm < c.catalog.MinDimensionCm || req.WidthCm > c.catalog.MaxDimensionCm {
		return nil, fmt.Errorf("%w: %d cm (allowed %d-%d)", ErrWidthOutOfRange,
			req.WidthCm, c.catalog.MinDimensionCm, c.catalog.MaxDimensionCm)
	}
	if req.HeightCm < c.catalog.MinDimensionCm || req.HeightCm > c.catalog.MaxDimensionCm {
		return nil, fmt.Errorf("%w: %d cm (allowed %d-%d)", ErrHeightOutOfRange,
			req.HeightCm, c.catalog.MinDimensionCm, c.catalog.MaxDimensionCm)
	}

	widthCm := roundUpTo10(req.WidthCm)
	heightCm := roundUpTo10(req.HeightCm)
	areaM2 := float64(widthCm*heightCm) / 10000.0

	if areaM2 > c.catalog.MaxAreaM2 {
		return nil, fmt.Errorf("%w: %.2f m2 (maximum %.2f m2)", ErrAreaTooLarge,
			areaM2, c.catalog.MaxAreaM2)
	}

	tier := selectTier(product.Tiers, areaM2)

	total := areaM2 * tier.PricePerM2 * factor
	cents := models.Money(math.Round(total * 100))
	if req.Installation {
		cents += product.InstallationCents
	}

	return &models.QuoteResult{
		AmountCents:    cents,
		Currency:       c.catalog.Currency,
		TierUsed:       fmt.Sprintf("%g-%g m2", tier.MinM2, tier.MaxM2),
		MaterialFactor: factor,
		AreaM2:         areaM2,
	}, nil
}

// selectTier returns the first tier whose closed range contains the area,
// so an area on a shared boundary lands in the lower tier. An area beyond
// every tier falls back to the highest tier; the area ceiling check should
// make that unreachable, but the catalog is data and data can drift.
func selectTier(tiers []Tier, areaM2 float64) Tier {
	for _, t := range tiers {
		if areaM2 >= t.MinM2 && areaM2 <= t.MaxM2 {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// roundUpTo10 rounds up to the next multiple of 10 cm.
func roundUpTo10(cm int) int {
	if cm%10 == 0 {
		return cm
	}
	return (cm/10 + 1) * 10
}
