package shop

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/caffeineveins/internal/cart"
	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/angelmondragon/caffeineveins/internal/orders"
	"github.com/angelmondragon/caffeineveins/internal/users"
	"github.com/angelmondragon/caffeineveins/pkg/enums"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/shopspring/decimal"
)

// Session is what one signed-in user can do.
type Session struct {
	shop *Shop
	cart *cart.Cart

	mu   sync.RWMutex
	user users.User
}

func (s *Session) User() users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// setRole keeps the username from the first sign-in: orders are filed under it.
func (s *Session) setRole(role enums.UserRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user.Role = role
}

// Menu lists products in category; "All" or "" lists everything.
func (s *Session) Menu(category string) []catalog.Product {
	return s.shop.catalog.InCategory(category)
}

// Categories is the menu filter list, "All" first.
func (s *Session) Categories() []string {
	return append([]string{catalog.AllCategories}, s.shop.catalog.Categories()...)
}

// AddToCart adds one unit of the named size. Unknown products or sizes and
// unavailable products are refused.
func (s *Session) AddToCart(productID, sizeName string) (int, error) {
	product, ok := s.shop.catalog.Get(productID)
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", productID))
	}
	if !product.Available {
		return 0, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s is unavailable", product.Name))
	}
	size, ok := product.Size(sizeName)
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s has no size %q", product.Name, sizeName))
	}
	return s.cart.Add(product, size), nil
}

func (s *Session) RemoveFromCart(productID string, price decimal.Decimal) int {
	return s.cart.Remove(productID, price)
}

func (s *Session) SetQuantity(productID string, price decimal.Decimal, quantity int) {
	s.cart.SetQuantity(productID, price, quantity)
}

func (s *Session) ClearCart() {
	s.cart.Clear()
}

// CartView is the cart lines with their total, read in one go.
type CartView struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (s *Session) Cart() CartView {
	items := s.cart.Items()
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return CartView{Items: items, Total: cart.Total(items), Count: count}
}

// PlaceOrder turns the cart into an order attributed to the current username.
func (s *Session) PlaceOrder(ctx context.Context) (orders.Order, error) {
	return s.shop.ledger.PlaceFromCart(ctx, s.User().Username, s.cart)
}

// MyOrders lists the user's orders, newest first.
func (s *Session) MyOrders() []orders.Order {
	return orders.ForCustomer(s.shop.ledger.Orders(), s.User().Username)
}

func (s *Session) requireAdmin() error {
	if !s.User().IsAdmin() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

func (s *Session) AddProduct(ctx context.Context, in catalog.ProductInput) (catalog.Product, error) {
	if err := s.requireAdmin(); err != nil {
		return catalog.Product{}, err
	}
	return s.shop.catalog.Add(ctx, in)
}

// UpdateProduct reports found=false for an unknown id; nothing is written then.
func (s *Session) UpdateProduct(ctx context.Context, id string, patch catalog.ProductPatch) (catalog.Product, bool, error) {
	if err := s.requireAdmin(); err != nil {
		return catalog.Product{}, false, err
	}
	return s.shop.catalog.Update(ctx, id, patch)
}

func (s *Session) DeleteProduct(ctx context.Context, id string) (bool, error) {
	if err := s.requireAdmin(); err != nil {
		return false, err
	}
	return s.shop.catalog.Delete(ctx, id)
}

// AllOrders is the full history, newest first, optionally narrowed to status.
func (s *Session) AllOrders(status enums.OrderStatus) ([]orders.Order, error) {
	if err := s.requireAdmin(); err != nil {
		return nil, err
	}
	history := s.shop.ledger.Orders()
	if status == "" {
		return history, nil
	}
	return orders.WithStatus(history, status), nil
}

func (s *Session) PendingCount() (int, error) {
	if err := s.requireAdmin(); err != nil {
		return 0, err
	}
	return orders.CountPending(s.shop.ledger.Orders()), nil
}

// SetOrderStatus reports found=false for an unknown id; nothing is written then.
func (s *Session) SetOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (orders.Order, bool, error) {
	if err := s.requireAdmin(); err != nil {
		return orders.Order{}, false, err
	}
	return s.shop.ledger.UpdateStatus(ctx, id, status)
}

func (s *Session) CompleteOrder(ctx context.Context, id string) (orders.Order, bool, error) {
	return s.SetOrderStatus(ctx, id, enums.OrderStatusCompleted)
}

func (s *Session) CancelOrder(ctx context.Context, id string) (orders.Order, bool, error) {
	return s.SetOrderStatus(ctx, id, enums.OrderStatusCancelled)
}
