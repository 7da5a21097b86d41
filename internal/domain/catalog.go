package domain

// CatalogVariant is a purchasable variant of a catalog product.
type CatalogVariant struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Price    string `json:"price" yaml:"price"`       // Decimal string, e.g. "120.00"
	Currency string `json:"currency" yaml:"currency"` // ISO 4217 code
}

// CatalogProduct is a jersey entry in the catalog fixture.
// Every product carries at least one variant; the first one is treated as representative.
type CatalogProduct struct {
	ID       string           `json:"id" yaml:"id"`
	Title    string           `json:"title" yaml:"title"`
	Variants []CatalogVariant `json:"variants" yaml:"variants"`
}

// Player is a selectable name/number pair for jersey customization.
// Number is display data only and is not range checked.
type Player struct {
	Name   string `json:"name" yaml:"name"`
	Number int    `json:"number" yaml:"number"`
	Team   string `json:"team" yaml:"team"`
}

// PriceRange summarizes the price of a product.
type PriceRange struct {
	Min      string `json:"min"`
	Currency string `json:"currency"`
}

// ProductSummary is the search projection of a CatalogProduct.
type ProductSummary struct {
	ProductID  string           `json:"product_id"`
	Title      string           `json:"title"`
	Variants   []CatalogVariant `json:"variants"`
	PriceRange PriceRange       `json:"price_range"`
}

// Summarize projects a product into its search summary.
// The price range is taken from the first variant only, not the minimum across variants.
func (p CatalogProduct) Summarize() ProductSummary {
	summary := ProductSummary{
		ProductID: p.ID,
		Title:     p.Title,
		Variants:  append([]CatalogVariant{}, p.Variants...),
	}
	if len(p.Variants) > 0 {
		summary.PriceRange = PriceRange{
			Min:      p.Variants[0].Price,
			Currency: p.Variants[0].Currency,
		}
	}
	return summary
}

// Clone returns a deep copy of the product.
func (p CatalogProduct) Clone() CatalogProduct {
	p.Variants = append([]CatalogVariant(nil), p.Variants...)
	return p
}
