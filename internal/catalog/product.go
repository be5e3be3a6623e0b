package catalog

import (
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/shopspring/decimal"
)

// ProductSize is one sellable variant of a product.
type ProductSize struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// Product is a menu entry. Sizes is never empty once loaded.
type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Category    string        `json:"category"`
	Image       string        `json:"image,omitempty"`
	Sizes       []ProductSize `json:"sizes"`
	Available   bool          `json:"available"`
}

// ProductInput is a product before the catalog assigns its id.
type ProductInput struct {
	Name        string
	Description string
	Category    string
	Image       string
	Sizes       []ProductSize
	Available   bool
}

// ProductPatch carries the fields an edit replaces. Nil fields are kept; an
// empty Sizes slice also keeps the current sizes.
type ProductPatch struct {
	Name        *string
	Description *string
	Category    *string
	Image       *string
	Sizes       []ProductSize
	Available   *bool
}

// Clone returns a copy that shares no slices with p.
func (p Product) Clone() Product {
	out := p
	out.Sizes = append([]ProductSize(nil), p.Sizes...)
	return out
}

// Size finds a size by name.
func (p Product) Size(name string) (ProductSize, bool) {
	for _, size := range p.Sizes {
		if size.Name == name {
			return size, true
		}
	}
	return ProductSize{}, false
}

// FromPrice is the cheapest size price, shown as "From" on the menu.
func (p Product) FromPrice() decimal.Decimal {
	if len(p.Sizes) == 0 {
		return decimal.Zero
	}
	lowest := p.Sizes[0].Price
	for _, size := range p.Sizes[1:] {
		if size.Price.LessThan(lowest) {
			lowest = size.Price
		}
	}
	return lowest
}

func (p Product) apply(patch ProductPatch) Product {
	out := p.Clone()
	if patch.Name != nil {
		out.Name = *patch.Name
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Category != nil {
		out.Category = *patch.Category
	}
	if patch.Image != nil {
		out.Image = *patch.Image
	}
	if len(patch.Sizes) > 0 {
		out.Sizes = append([]ProductSize(nil), patch.Sizes...)
	}
	if patch.Available != nil {
		out.Available = *patch.Available
	}
	return out
}

func (in ProductInput) product(id string) Product {
	return Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Image:       in.Image,
		Sizes:       append([]ProductSize(nil), in.Sizes...),
		Available:   in.Available,
	}
}

// ToRecord converts p to its stored shape.
func (p Product) ToRecord() persistence.ProductRecord {
	sizes := make([]persistence.SizeRecord, 0, len(p.Sizes))
	for _, size := range p.Sizes {
		sizes = append(sizes, persistence.SizeRecord{Name: size.Name, Price: size.Price})
	}
	return persistence.ProductRecord{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Image:       p.Image,
		Sizes:       sizes,
		Available:   p.Available,
	}
}

// FromRecord converts a stored product that already has sizes. Records that
// may predate sizes go through MigrateLegacy instead.
func FromRecord(rec persistence.ProductRecord) Product {
	sizes := make([]ProductSize, 0, len(rec.Sizes))
	for _, size := range rec.Sizes {
		sizes = append(sizes, ProductSize{Name: size.Name, Price: size.Price})
	}
	return Product{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    rec.Category,
		Image:       rec.Image,
		Sizes:       sizes,
		Available:   rec.Available,
	}
}

func toRecords(products []Product) []persistence.ProductRecord {
	records := make([]persistence.ProductRecord, 0, len(products))
	for _, p := range products {
		records = append(records, p.ToRecord())
	}
	return records
}

func cloneAll(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, p.Clone())
	}
	return out
}
