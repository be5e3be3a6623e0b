// Package catalog owns the menu: the list of sellable products and their
// size/price variants.
package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/caffeineveins/internal/persistence"
	pkgerrors "github.com/angelmondragon/caffeineveins/pkg/errors"
	"github.com/angelmondragon/caffeineveins/pkg/logger"
)

// AllCategories selects every product in InCategory.
const AllCategories = "All"

type productGateway interface {
	LoadProducts(ctx context.Context) ([]persistence.ProductRecord, bool, error)
	SaveProducts(ctx context.Context, records []persistence.ProductRecord) error
}

// Store is the authoritative product list. Every mutation persists the whole
// list and only becomes visible once that write succeeded.
type Store struct {
	gateway productGateway
	logg    *logger.Logger
	ids     *idGenerator

	// writeMu is held across persist so saves of the list never overlap.
	writeMu sync.Mutex

	mu       sync.RWMutex
	products []Product
}

// Options tweaks a Store; the zero value is fine.
type Options struct {
	Now func() time.Time
}

func NewStore(gateway productGateway, logg *logger.Logger, opts Options) (*Store, error) {
	if gateway == nil {
		return nil, fmt.Errorf("product gateway required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		gateway: gateway,
		logg:    logg,
		ids:     newIDGenerator(opts.Now),
	}, nil
}

// Load hydrates the catalog. A first run seeds and persists the built-in menu;
// later runs migrate legacy records and re-persist only if something changed.
// Load never leaves the store empty-handed: on unreadable data it falls back
// to the seed in memory without overwriting what is stored, and returns the
// cause so the caller can report it.
func (s *Store) Load(ctx context.Context) ([]Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	records, found, err := s.gateway.LoadProducts(ctx)
	if err != nil {
		s.logg.Error(ctx, "catalog unreadable; serving built-in menu", err)
		s.replace(Seed())
		return s.Products(), err
	}

	if !found {
		seed := Seed()
		s.replace(seed)
		s.logg.Info(s.logg.WithField(ctx, "products", len(seed)), "seeding built-in catalog")
		if err := s.gateway.SaveProducts(ctx, toRecords(seed)); err != nil {
			s.logg.Error(ctx, "failed to persist seeded catalog", err)
			return s.Products(), err
		}
		return s.Products(), nil
	}

	products, migrated := MigrateAll(records)
	s.replace(products)
	if migrated == 0 {
		return s.Products(), nil
	}

	s.logg.Info(s.logg.WithField(ctx, "migrated", migrated), "migrated legacy single-price products")
	if err := s.gateway.SaveProducts(ctx, toRecords(products)); err != nil {
		s.logg.Error(ctx, "failed to persist migrated catalog", err)
		return s.Products(), err
	}
	return s.Products(), nil
}

// Add assigns a fresh id, appends the product and persists the list.
func (s *Store) Add(ctx context.Context, in ProductInput) (Product, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Products()
	id := s.ids.next(func(id string) bool { return indexOf(current, id) >= 0 })
	product := in.product(id)

	next := append(current, product)
	if err := s.commit(s.logg.WithProductID(ctx, id), next); err != nil {
		return Product{}, err
	}
	s.logg.Info(s.logg.WithProductID(ctx, id), "product added")
	return product.Clone(), nil
}

// Update shallow-merges patch into the product with id. An unknown id is a
// no-op without a write and reports found=false.
func (s *Store) Update(ctx context.Context, id string, patch ProductPatch) (Product, bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Products()
	idx := indexOf(current, id)
	if idx < 0 {
		return Product{}, false, nil
	}
	current[idx] = current[idx].apply(patch)

	if err := s.commit(s.logg.WithProductID(ctx, id), current); err != nil {
		return Product{}, true, err
	}
	return current[idx].Clone(), true, nil
}

// Delete removes the product with id. An unknown id is a no-op without a write.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Products()
	idx := indexOf(current, id)
	if idx < 0 {
		return false, nil
	}
	next := append(current[:idx:idx], current[idx+1:]...)

	if err := s.commit(s.logg.WithProductID(ctx, id), next); err != nil {
		return true, err
	}
	s.logg.Info(s.logg.WithProductID(ctx, id), "product deleted")
	return true, nil
}

// Products returns a deep copy of the catalog in stored order.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.products)
}

func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := indexOf(s.products, id)
	if idx < 0 {
		return Product{}, false
	}
	return s.products[idx].Clone(), true
}

// Categories lists distinct categories in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{}, len(s.products))
	categories := make([]string, 0)
	for _, p := range s.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}

// InCategory filters by exact category; "All" or "" returns everything.
func (s *Store) InCategory(category string) []Product {
	if category == "" || category == AllCategories {
		return s.Products()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (s *Store) commit(ctx context.Context, next []Product) error {
	if err := s.gateway.SaveProducts(ctx, toRecords(next)); err != nil {
		s.logg.Error(ctx, "failed to persist catalog", err)
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "could not persist products")
		}
		return err
	}
	s.replace(next)
	return nil
}

func (s *Store) replace(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

func indexOf(products []Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
