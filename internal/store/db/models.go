package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Store struct {
	ID        uuid.UUID
	Name      string
	Location  string
	Email     string
	UpdatedAt time.Time
}

type Product struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Category string
}

// StoreProduct links a store to a product. The pair is not unique.
type StoreProduct struct {
	ID        uuid.UUID
	StoreID   uuid.UUID
	ProductID uuid.UUID
}

type ProductStoreCount struct {
	ProductID  uuid.UUID
	StoreCount int64
}
