package persistence

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	KeyProducts = "products"
	KeyOrders   = "orders"
)

func init() {
	// Stored prices are JSON numbers; both quoted and bare numbers parse back.
	decimal.MarshalJSONWithoutQuotes = true
}

// SizeRecord is a stored size/price variant.
type SizeRecord struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductRecord is the stored shape of a product. Price only appears on
// records written before products carried sizes.
type ProductRecord struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Image       string           `json:"image,omitempty"`
	Sizes       []SizeRecord     `json:"sizes,omitempty"`
	Available   bool             `json:"available"`
	Price       *decimal.Decimal `json:"price,omitempty"`
}

// ItemRecord is a cart line frozen inside an order.
type ItemRecord struct {
	Product      ProductRecord `json:"product"`
	SelectedSize SizeRecord    `json:"selectedSize"`
	Quantity     int           `json:"quantity"`
}

// OrderRecord is the stored shape of a placed order.
type OrderRecord struct {
	ID           string          `json:"id"`
	Items        []ItemRecord    `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Date         time.Time       `json:"date"`
	CustomerName string          `json:"customerName"`
}
