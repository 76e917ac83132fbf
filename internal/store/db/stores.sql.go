package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const storeColumns = `id, name, location, email, updated_at`

func scanStores(rows pgx.Rows) ([]Store, error) {
	defer rows.Close()
	items := []Store{}
	for rows.Next() {
		var i Store
		if err := rows.Scan(&i.ID, &i.Name, &i.Location, &i.Email, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getStore = `SELECT ` + storeColumns + ` FROM stores WHERE id = $1`

func (q *Queries) GetStore(ctx context.Context, id uuid.UUID) (Store, error) {
	row := q.db.QueryRow(ctx, getStore, id)
	var i Store
	err := row.Scan(&i.ID, &i.Name, &i.Location, &i.Email, &i.UpdatedAt)
	return i, err
}

const listStores = `SELECT ` + storeColumns + ` FROM stores ORDER BY seq`

func (q *Queries) ListStores(ctx context.Context) ([]Store, error) {
	rows, err := q.db.Query(ctx, listStores)
	if err != nil {
		return nil, err
	}
	return scanStores(rows)
}

// strpos keeps the match literal and case-sensitive; LIKE would interpret % and _.
const listStoresByLocationContains = `SELECT ` + storeColumns + ` FROM stores
WHERE strpos(location, $1::text) > 0
ORDER BY seq`

func (q *Queries) ListStoresByLocationContains(ctx context.Context, text string) ([]Store, error) {
	rows, err := q.db.Query(ctx, listStoresByLocationContains, text)
	if err != nil {
		return nil, err
	}
	return scanStores(rows)
}

const listStoresByLocation = `SELECT ` + storeColumns + ` FROM stores WHERE location = $1 ORDER BY seq`

func (q *Queries) ListStoresByLocation(ctx context.Context, location string) ([]Store, error) {
	rows, err := q.db.Query(ctx, listStoresByLocation, location)
	if err != nil {
		return nil, err
	}
	return scanStores(rows)
}

const listStoresByName = `SELECT ` + storeColumns + ` FROM stores ORDER BY name COLLATE "C", seq`

func (q *Queries) ListStoresByName(ctx context.Context) ([]Store, error) {
	rows, err := q.db.Query(ctx, listStoresByName)
	if err != nil {
		return nil, err
	}
	return scanStores(rows)
}

const upsertStore = `INSERT INTO stores (id, name, location, email, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE
    SET name       = EXCLUDED.name,
        location   = EXCLUDED.location,
        email      = EXCLUDED.email,
        updated_at = EXCLUDED.updated_at
RETURNING ` + storeColumns

type UpsertStoreParams struct {
	ID        uuid.UUID
	Name      string
	Location  string
	Email     string
	UpdatedAt time.Time
}

func (q *Queries) UpsertStore(ctx context.Context, arg UpsertStoreParams) (Store, error) {
	row := q.db.QueryRow(ctx, upsertStore, arg.ID, arg.Name, arg.Location, arg.Email, arg.UpdatedAt)
	var i Store
	err := row.Scan(&i.ID, &i.Name, &i.Location, &i.Email, &i.UpdatedAt)
	return i, err
}

const deleteStore = `DELETE FROM stores WHERE id = $1`

func (q *Queries) DeleteStore(ctx context.Context, id uuid.UUID) (int64, error) {
	result, err := q.db.Exec(ctx, deleteStore, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
