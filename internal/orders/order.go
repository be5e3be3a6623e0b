package orders

import (
	"sort"
	"time"

	"github.com/angelmondragon/caffeineveins/internal/cart"
	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/angelmondragon/caffeineveins/internal/persistence"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a placed cart. Items and Total are fixed at placement; only Status changes.
type Order struct {
	ID           string            `json:"id"`
	Items        []cart.Item       `json:"items"`
	Total        decimal.Decimal   `json:"total"`
	Status       enums.OrderStatus `json:"status"`
	Date         time.Time         `json:"date"`
	CustomerName string            `json:"customerName"`
}

func (o Order) Clone() Order {
	out := o
	out.Items = make([]cart.Item, 0, len(o.Items))
	for _, item := range o.Items {
		out.Items = append(out.Items, item.Clone())
	}
	return out
}

func (o Order) toRecord() persistence.OrderRecord {
	items := make([]persistence.ItemRecord, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, persistence.ItemRecord{
			Product:      item.Product.ToRecord(),
			SelectedSize: persistence.SizeRecord{Name: item.SelectedSize.Name, Price: item.SelectedSize.Price},
			Quantity:     item.Quantity,
		})
	}
	return persistence.OrderRecord{
		ID:           o.ID,
		Items:        items,
		Total:        o.Total,
		Status:       o.Status.String(),
		Date:         o.Date,
		CustomerName: o.CustomerName,
	}
}

func fromRecord(rec persistence.OrderRecord) Order {
	items := make([]cart.Item, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, cart.Item{
			Product:      catalog.FromRecord(item.Product),
			SelectedSize: catalog.ProductSize{Name: item.SelectedSize.Name, Price: item.SelectedSize.Price},
			Quantity:     item.Quantity,
		})
	}
	return Order{
		ID:           rec.ID,
		Items:        items,
		Total:        rec.Total,
		Status:       enums.OrderStatus(rec.Status),
		Date:         rec.Date,
		CustomerName: rec.CustomerName,
	}
}

func toRecords(orders []Order) []persistence.OrderRecord {
	records := make([]persistence.OrderRecord, 0, len(orders))
	for _, o := range orders {
		records = append(records, o.toRecord())
	}
	return records
}

func cloneAll(orders []Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Clone())
	}
	return out
}

// ForCustomer returns the orders placed by name, newest first by date.
func ForCustomer(orders []Order, name string) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if o.CustomerName == name {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// WithStatus keeps the orders in status, preserving order.
func WithStatus(orders []Order, status enums.OrderStatus) []Order {
	out := make([]Order, 0)
	for _, o := range orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

func CountPending(orders []Order) int {
	return len(WithStatus(orders, enums.OrderStatusPending))
}
