// Package store provides the catalog persistence: a typed repository over stores, products and
// their associations, and the units of work it runs in.
package store

import (
	"context"

	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// Repository is the typed facade available inside one unit of work.
// Listing methods return rows in insertion order unless stated otherwise.
type Repository interface {
	// GetStore returns ErrStoreNotFound if no store exists with the given ID.
	GetStore(ctx context.Context, id uuid.UUID) (*db.Store, error)

	ListStores(ctx context.Context) ([]db.Store, error)

	// ListStoresByLocationContains returns stores whose location contains text, case-sensitive.
	ListStoresByLocationContains(ctx context.Context, text string) ([]db.Store, error)

	// ListStoresByLocation returns stores whose location equals location exactly.
	ListStoresByLocation(ctx context.Context, location string) ([]db.Store, error)

	// ListStoresSortedByName orders by name, ties broken by insertion order.
	ListStoresSortedByName(ctx context.Context) ([]db.Store, error)

	// SaveStore inserts the store or overwrites the one with the same ID.
	SaveStore(ctx context.Context, store db.Store) (*db.Store, error)

	// DeleteStore returns ErrStoreNotFound if no store exists with the given ID.
	// Associations of the store are left in place.
	DeleteStore(ctx context.Context, id uuid.UUID) error

	// GetProduct returns ErrProductNotFound if no product exists with the given ID.
	GetProduct(ctx context.Context, id uuid.UUID) (*db.Product, error)

	ListProducts(ctx context.Context) ([]db.Product, error)

	// SaveProduct inserts the product or overwrites the one with the same ID.
	SaveProduct(ctx context.Context, product db.Product) (*db.Product, error)

	// DeleteProduct returns ErrProductNotFound if no product exists with the given ID.
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	SaveAssociation(ctx context.Context, association db.StoreProduct) (*db.StoreProduct, error)

	ListAssociationsByStore(ctx context.Context, storeID uuid.UUID) ([]db.StoreProduct, error)

	// CountStoresCarryingProduct counts distinct existing stores linked to the product.
	CountStoresCarryingProduct(ctx context.Context, productID uuid.UUID) (int64, error)

	// CountStoresPerProduct is the grouped form of CountStoresCarryingProduct.
	// Products carried by no existing store are absent from the map.
	CountStoresPerProduct(ctx context.Context) (map[uuid.UUID]int64, error)
}

// CatalogStore runs units of work against the catalog.
type CatalogStore interface {
	// ReadTx runs fn against a consistent read-only snapshot.
	ReadTx(ctx context.Context, fn func(repo Repository) error) error

	// WriteTx runs fn atomically: every write is kept if fn returns nil, none otherwise.
	WriteTx(ctx context.Context, fn func(repo Repository) error) error
}
