package pricing

import "github.com/SerkanKacar01/kaniou-orders/internal/models"

// Tier maps a closed area range in m² to a base price per m².
// Ranges within one product share endpoints ([0,2], [2,4], ...); an area
// exactly on a shared boundary belongs to the lower tier.
type Tier struct {
	MinM2      float64
	MaxM2      float64
	PricePerM2 float64
}

// ProductPricing holds everything needed to price one product type.
type ProductPricing struct {
	Tiers             []Tier
	Materials         map[string]float64
	InstallationCents models.Money
}

// Catalog is the immutable pricing configuration. It is injected into the
// calculator rather than read from a global, so tests can use fixtures.
type Catalog struct {
	Products       map[string]ProductPricing
	MinDimensionCm int
	MaxDimensionCm int
	MaxAreaM2      float64
	Currency       string
}

// DefaultCatalog returns the production catalog. Tier ranges are
// closed-closed, share endpoints and leave no gaps; keeping it that way is
// a data-integrity requirement, the calculator does not repair bad data.
func DefaultCatalog() Catalog {
	return Catalog{
		MinDimensionCm: 30,
		MaxDimensionCm: 500,
		MaxAreaM2:      12.0,
		Currency:       "EUR",
		Products: map[string]ProductPricing{
			"rolgordijn": {
				Tiers: []Tier{
					{MinM2: 0, MaxM2: 2, PricePerM2: 62.50},
					{MinM2: 2, MaxM2: 4, PricePerM2: 55.00},
					{MinM2: 4, MaxM2: 8, PricePerM2: 48.75},
					{MinM2: 8, MaxM2: 12, PricePerM2: 42.00},
				},
				Materials: map[string]float64{
					"screen":        1.0,
					"transparant":   0.9,
					"verduisterend": 1.15,
					"premium":       1.35,
				},
				InstallationCents: 4500,
			},
			"duo-rolgordijn": {
				Tiers: []Tier{
					{MinM2: 0, MaxM2: 2, PricePerM2: 72.00},
					{MinM2: 2, MaxM2: 4, PricePerM2: 64.50},
					{MinM2: 4, MaxM2: 8, PricePerM2: 58.00},
					{MinM2: 8, MaxM2: 12, PricePerM2: 51.00},
				},
				Materials: map[string]float64{
					"transparant":   1.0,
					"verduisterend": 1.2,
					"premium":       1.4,
				},
				InstallationCents: 4500,
			},
			"plisse": {
				Tiers: []Tier{
					{MinM2: 0, MaxM2: 1.5, PricePerM2: 80.00},
					{MinM2: 1.5, MaxM2: 3, PricePerM2: 71.50},
					{MinM2: 3, MaxM2: 6, PricePerM2: 63.00},
					{MinM2: 6, MaxM2: 12, PricePerM2: 55.00},
				},
				Materials: map[string]float64{
					"transparant":   1.0,
					"verduisterend": 1.25,
					"premium":       1.5,
				},
				InstallationCents: 5000,
			},
			"vouwgordijn": {
				Tiers: []Tier{
					{MinM2: 0, MaxM2: 2, PricePerM2: 95.00},
					{MinM2: 2, MaxM2: 4, PricePerM2: 85.00},
					{MinM2: 4, MaxM2: 8, PricePerM2: 76.00},
					{MinM2: 8, MaxM2: 12, PricePerM2: 68.00},
				},
				Materials: map[string]float64{
					"katoen":  1.0,
					"linnen":  1.2,
					"premium": 1.45,
				},
				InstallationCents: 5500,
			},
		},
	}
}
