package db

import (
	"context"

	"github.com/google/uuid"
)

const createStoreProduct = `INSERT INTO store_products (id, store_id, product_id)
VALUES ($1, $2, $3)
RETURNING id, store_id, product_id`

type CreateStoreProductParams struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	ProductID uuid.UUID
}

func (q *Queries) CreateStoreProduct(ctx context.Context, arg CreateStoreProductParams) (StoreProduct, error) {
	row := q.db.QueryRow(ctx, createStoreProduct, arg.ID, arg.StoreID, arg.ProductID)
	var i StoreProduct
	err := row.Scan(&i.ID, &i.StoreID, &i.ProductID)
	return i, err
}

const listStoreProductsByStore = `SELECT id, store_id, product_id FROM store_products
WHERE store_id = $1
ORDER BY seq`

func (q *Queries) ListStoreProductsByStore(ctx context.Context, storeID uuid.UUID) ([]StoreProduct, error) {
	rows, err := q.db.Query(ctx, listStoreProductsByStore, storeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []StoreProduct{}
	for rows.Next() {
		var i StoreProduct
		if err := rows.Scan(&i.ID, &i.StoreID, &i.ProductID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Only existing stores count, and repeated links to one store count once.
const countStoresByProduct = `SELECT COUNT(DISTINCT s.id)
FROM store_products sp
         JOIN stores s ON s.id = sp.store_id
WHERE sp.product_id = $1`

func (q *Queries) CountStoresByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	row := q.db.QueryRow(ctx, countStoresByProduct, productID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const countStoresPerProduct = `SELECT sp.product_id, COUNT(DISTINCT s.id)
FROM store_products sp
         JOIN stores s ON s.id = sp.store_id
GROUP BY sp.product_id`

func (q *Queries) CountStoresPerProduct(ctx context.Context) ([]ProductStoreCount, error) {
	rows, err := q.db.Query(ctx, countStoresPerProduct)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []ProductStoreCount{}
	for rows.Next() {
		var i ProductStoreCount
		if err := rows.Scan(&i.ProductID, &i.StoreCount); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
