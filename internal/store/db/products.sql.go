package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const getProduct = `SELECT id, name, price, category FROM products WHERE id = $1`

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProduct, id)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const listProducts = `SELECT id, name, price, category FROM products ORDER BY seq`

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := q.db.Query(ctx, listProducts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Product{}
	for rows.Next() {
		var i Product
		if err := rows.Scan(&i.ID, &i.Name, &i.Price, &i.Category); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertProduct = `INSERT INTO products (id, name, price, category)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
    SET name     = EXCLUDED.name,
        price    = EXCLUDED.price,
        category = EXCLUDED.category
RETURNING id, name, price, category`

type UpsertProductParams struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Category string
}

func (q *Queries) UpsertProduct(ctx context.Context, arg UpsertProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, upsertProduct, arg.ID, arg.Name, arg.Price, arg.Category)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Category)
	return i, err
}

const deleteProduct = `DELETE FROM products WHERE id = $1`

func (q *Queries) DeleteProduct(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteProduct, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
