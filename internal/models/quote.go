package models

// QuoteRequest represents an incoming price quote request for a
// made-to-measure product. It is ephemeral and never persisted.
type QuoteRequest struct {
	ProductType  string `json:"productType"`
	Material     string `json:"material"`
	WidthCm      int    `json:"widthCm"`
	HeightCm     int    `json:"heightCm"`
	Installation bool   `json:"installation"`
}

// QuoteResult is the computed price plus the pricing inputs that produced
// it, so quotes can be audited and tested against the catalog.
type QuoteResult struct {
	AmountCents    Money   `json:"amountCents"`
	Currency       string  `json:"currency"`
	TierUsed       string  `json:"tierUsed"`
	MaterialFactor float64 `json:"materialFactor"`
	AreaM2         float64 `json:"areaM2"`
}
