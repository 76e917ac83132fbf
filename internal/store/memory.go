package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// inMemory implements CatalogStore with copy-on-write snapshots.
// Writers are serialized and work on a private copy that replaces the
// published state only when fn succeeds; readers use the published state as is.
type inMemory struct {
	mu    sync.RWMutex
	state *memState
}

// memState is never modified once published.
type memState struct {
	stores       map[uuid.UUID]db.Store
	storeOrder   []uuid.UUID
	products     map[uuid.UUID]db.Product
	productOrder []uuid.UUID
	links        []db.StoreProduct
}

// NewInMemoryStore creates an empty CatalogStore kept in process memory.
func NewInMemoryStore() CatalogStore {
	return &inMemory{
		state: &memState{
			stores:   make(map[uuid.UUID]db.Store),
			products: make(map[uuid.UUID]db.Product),
		},
	}
}

func (s *inMemory) ReadTx(ctx context.Context, fn func(repo Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	snapshot := s.state
	s.mu.RUnlock()

	return fn(&memRepository{state: snapshot, readOnly: true})
}

func (s *inMemory) WriteTx(ctx context.Context, fn func(repo Repository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(&memRepository{state: working}); err != nil {
		return err
	}
	s.state = working
	return nil
}

func (m *memState) clone() *memState {
	c := &memState{
		stores:       make(map[uuid.UUID]db.Store, len(m.stores)),
		storeOrder:   slices.Clone(m.storeOrder),
		products:     make(map[uuid.UUID]db.Product, len(m.products)),
		productOrder: slices.Clone(m.productOrder),
		links:        slices.Clone(m.links),
	}
	for id, store := range m.stores {
		c.stores[id] = store
	}
	for id, product := range m.products {
		c.products[id] = product
	}
	return c
}

type memRepository struct {
	state    *memState
	readOnly bool
}

func (r *memRepository) writable() error {
	if r.readOnly {
		return catalogerrors.ErrReadOnly
	}
	return nil
}

func (r *memRepository) GetStore(_ context.Context, id uuid.UUID) (*db.Store, error) {
	store, ok := r.state.stores[id]
	if !ok {
		return nil, catalogerrors.ErrStoreNotFound
	}
	return &store, nil
}

func (r *memRepository) ListStores(_ context.Context) ([]db.Store, error) {
	return r.filterStores(func(db.Store) bool { return true }), nil
}

func (r *memRepository) ListStoresByLocationContains(_ context.Context, text string) ([]db.Store, error) {
	return r.filterStores(func(s db.Store) bool { return strings.Contains(s.Location, text) }), nil
}

func (r *memRepository) ListStoresByLocation(_ context.Context, location string) ([]db.Store, error) {
	return r.filterStores(func(s db.Store) bool { return s.Location == location }), nil
}

func (r *memRepository) ListStoresSortedByName(_ context.Context) ([]db.Store, error) {
	list := r.filterStores(func(db.Store) bool { return true })
	slices.SortStableFunc(list, func(a, b db.Store) int {
		return strings.Compare(a.Name, b.Name)
	})
	return list, nil
}

func (r *memRepository) filterStores(keep func(db.Store) bool) []db.Store {
	list := make([]db.Store, 0, len(r.state.storeOrder))
	for _, id := range r.state.storeOrder {
		if store := r.state.stores[id]; keep(store) {
			list = append(list, store)
		}
	}
	return list
}

func (r *memRepository) SaveStore(_ context.Context, store db.Store) (*db.Store, error) {
	if err := r.writable(); err != nil {
		return nil, err
	}
	if _, exists := r.state.stores[store.ID]; !exists {
		r.state.storeOrder = append(r.state.storeOrder, store.ID)
	}
	r.state.stores[store.ID] = store
	return &store, nil
}

func (r *memRepository) DeleteStore(_ context.Context, id uuid.UUID) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, exists := r.state.stores[id]; !exists {
		return catalogerrors.ErrStoreNotFound
	}
	delete(r.state.stores, id)
	r.state.storeOrder = slices.DeleteFunc(r.state.storeOrder, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r *memRepository) GetProduct(_ context.Context, id uuid.UUID) (*db.Product, error) {
	product, ok := r.state.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	return &product, nil
}

func (r *memRepository) ListProducts(_ context.Context) ([]db.Product, error) {
	list := make([]db.Product, 0, len(r.state.productOrder))
	for _, id := range r.state.productOrder {
		list = append(list, r.state.products[id])
	}
	return list, nil
}

func (r *memRepository) SaveProduct(_ context.Context, product db.Product) (*db.Product, error) {
	if err := r.writable(); err != nil {
		return nil, err
	}
	if _, exists := r.state.products[product.ID]; !exists {
		r.state.productOrder = append(r.state.productOrder, product.ID)
	}
	r.state.products[product.ID] = product
	return &product, nil
}

func (r *memRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if err := r.writable(); err != nil {
		return err
	}
	if _, exists := r.state.products[id]; !exists {
		return catalogerrors.ErrProductNotFound
	}
	delete(r.state.products, id)
	r.state.productOrder = slices.DeleteFunc(r.state.productOrder, func(v uuid.UUID) bool { return v == id })
	return nil
}

func (r *memRepository) SaveAssociation(_ context.Context, association db.StoreProduct) (*db.StoreProduct, error) {
	if err := r.writable(); err != nil {
		return nil, err
	}
	r.state.links = append(r.state.links, association)
	return &association, nil
}

func (r *memRepository) ListAssociationsByStore(_ context.Context, storeID uuid.UUID) ([]db.StoreProduct, error) {
	list := make([]db.StoreProduct, 0)
	for _, link := range r.state.links {
		if link.StoreID == storeID {
			list = append(list, link)
		}
	}
	return list, nil
}

func (r *memRepository) CountStoresCarryingProduct(_ context.Context, productID uuid.UUID) (int64, error) {
	carriers := make(map[uuid.UUID]struct{})
	for _, link := range r.state.links {
		if link.ProductID != productID {
			continue
		}
		if _, exists := r.state.stores[link.StoreID]; exists {
			carriers[link.StoreID] = struct{}{}
		}
	}
	return int64(len(carriers)), nil
}

func (r *memRepository) CountStoresPerProduct(_ context.Context) (map[uuid.UUID]int64, error) {
	carriers := make(map[uuid.UUID]map[uuid.UUID]struct{})
	for _, link := range r.state.links {
		if _, exists := r.state.stores[link.StoreID]; !exists {
			continue
		}
		if carriers[link.ProductID] == nil {
			carriers[link.ProductID] = make(map[uuid.UUID]struct{})
		}
		carriers[link.ProductID][link.StoreID] = struct{}{}
	}
	counts := make(map[uuid.UUID]int64, len(carriers))
	for productID, stores := range carriers {
		counts[productID] = int64(len(stores))
	}
	return counts, nil
}
