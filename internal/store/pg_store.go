package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	readTxOptions  = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	writeTxOptions = pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}
)

// PgStore implements CatalogStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new instance of CatalogStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

func (p *PgStore) ReadTx(ctx context.Context, fn func(repo Repository) error) error {
	return p.withTransaction(ctx, readTxOptions, fn)
}

func (p *PgStore) WriteTx(ctx context.Context, fn func(repo Repository) error) error {
	return p.withTransaction(ctx, writeTxOptions, fn)
}

func (p *PgStore) withTransaction(ctx context.Context, opts pgx.TxOptions, fn func(repo Repository) error) error {
	tx, err := p.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: %w", catalogerrors.ErrTransactionBegin, err)
	}

	if err := fn(&pgRepository{q: p.q.WithTx(tx)}); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("%w: %w (cause: %w)", catalogerrors.ErrTransactionRollback, rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", catalogerrors.ErrTransactionCommit, err)
	}
	return nil
}

// pgRepository implements Repository over the queries bound to one transaction.
type pgRepository struct {
	q *db.Queries
}

func (r *pgRepository) GetStore(ctx context.Context, id uuid.UUID) (*db.Store, error) {
	store, err := r.q.GetStore(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrStoreNotFound
		}
		return nil, fmt.Errorf("failed to get store by ID: %w", err)
	}
	return &store, nil
}

func (r *pgRepository) ListStores(ctx context.Context) ([]db.Store, error) {
	stores, err := r.q.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (r *pgRepository) ListStoresByLocationContains(ctx context.Context, text string) ([]db.Store, error) {
	stores, err := r.q.ListStoresByLocationContains(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by location substring: %w", err)
	}
	return stores, nil
}

func (r *pgRepository) ListStoresByLocation(ctx context.Context, location string) ([]db.Store, error) {
	stores, err := r.q.ListStoresByLocation(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by location: %w", err)
	}
	return stores, nil
}

func (r *pgRepository) ListStoresSortedByName(ctx context.Context) ([]db.Store, error) {
	stores, err := r.q.ListStoresByName(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stores by name: %w", err)
	}
	return stores, nil
}

func (r *pgRepository) SaveStore(ctx context.Context, store db.Store) (*db.Store, error) {
	saved, err := r.q.UpsertStore(ctx, db.UpsertStoreParams{
		ID:        store.ID,
		Name:      store.Name,
		Location:  store.Location,
		Email:     store.Email,
		UpdatedAt: store.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save store: %w", err)
	}
	return &saved, nil
}

func (r *pgRepository) DeleteStore(ctx context.Context, id uuid.UUID) error {
	count, err := r.q.DeleteStore(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete store by ID: %w", err)
	}
	if count == 0 {
		return catalogerrors.ErrStoreNotFound
	}
	return nil
}

func (r *pgRepository) GetProduct(ctx context.Context, id uuid.UUID) (*db.Product, error) {
	product, err := r.q.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID: %w", err)
	}
	return &product, nil
}

func (r *pgRepository) ListProducts(ctx context.Context) ([]db.Product, error) {
	products, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (r *pgRepository) SaveProduct(ctx context.Context, product db.Product) (*db.Product, error) {
	saved, err := r.q.UpsertProduct(ctx, db.UpsertProductParams{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Category: product.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}
	return &saved, nil
}

func (r *pgRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	count, err := r.q.DeleteProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product by ID: %w", err)
	}
	if count == 0 {
		return catalogerrors.ErrProductNotFound
	}
	return nil
}

func (r *pgRepository) SaveAssociation(ctx context.Context, association db.StoreProduct) (*db.StoreProduct, error) {
	saved, err := r.q.CreateStoreProduct(ctx, db.CreateStoreProductParams{
		ID:        association.ID,
		StoreID:   association.StoreID,
		ProductID: association.ProductID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save store product: %w", err)
	}
	return &saved, nil
}

func (r *pgRepository) ListAssociationsByStore(ctx context.Context, storeID uuid.UUID) ([]db.StoreProduct, error) {
	associations, err := r.q.ListStoreProductsByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list store products: %w", err)
	}
	return associations, nil
}

func (r *pgRepository) CountStoresCarryingProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	count, err := r.q.CountStoresByProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to count stores carrying product: %w", err)
	}
	return count, nil
}

func (r *pgRepository) CountStoresPerProduct(ctx context.Context) (map[uuid.UUID]int64, error) {
	rows, err := r.q.CountStoresPerProduct(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count stores per product: %w", err)
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.ProductID] = row.StoreCount
	}
	return counts, nil
}
