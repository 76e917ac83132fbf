// Package service implements the catalog operations: store and product management, location
// queries over the store-product associations, uniqueness analysis and store duplication.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/abgdnv/storecatalog/pkg/messaging"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// CatalogService defines the catalog operations. Each call runs in exactly one unit of work.
// Identifiers are accepted in their textual form; a malformed one yields ErrInvalidArgument.
type CatalogService interface {
	// CreateStore persists a new store stamped with the current time.
	// Returns a *ValidationError if name or location is blank.
	CreateStore(ctx context.Context, req StoreRequest) (*StoreDto, error)

	// GetStore returns ErrStoreNotFound if no store exists with the given ID.
	GetStore(ctx context.Context, id string) (*StoreDto, error)

	// UpdateStore overwrites name, location and email. Last write wins.
	// Returns ErrStoreNotFound or a *ValidationError.
	UpdateStore(ctx context.Context, id string, req StoreRequest) (*StoreDto, error)

	// DeleteStore removes the store but not its associations.
	// Returns ErrStoreNotFound if no store exists with the given ID.
	DeleteStore(ctx context.Context, id string) error

	// ListStores returns all stores in insertion order.
	ListStores(ctx context.Context) ([]StoreDto, error)

	// ListStoresByLocation returns stores whose location equals location exactly.
	ListStoresByLocation(ctx context.Context, location string) ([]StoreDto, error)

	// ListStoresSortedByName returns all stores ordered by name.
	ListStoresSortedByName(ctx context.Context) ([]StoreDto, error)

	// CopyStore clones the descriptive fields of a store under a new ID.
	// Associations are not copied. Returns ErrStoreNotFound if the source is absent.
	CopyStore(ctx context.Context, id string) (*StoreDto, error)

	// AddProductToStore creates a product and links it to the store atomically.
	// Returns ErrStoreNotFound or a *ValidationError.
	AddProductToStore(ctx context.Context, storeID string, req ProductRequest) (*ProductDto, error)

	// GetProduct returns ErrProductNotFound if no product exists with the given ID.
	GetProduct(ctx context.Context, id string) (*ProductDto, error)

	// ListProducts returns all products in insertion order.
	ListProducts(ctx context.Context) ([]ProductDto, error)

	// DeleteProduct removes the product. Associations pointing to it are left dangling.
	DeleteProduct(ctx context.Context, id string) error

	// FindProductsByLocation returns the distinct products carried by stores whose location
	// contains the given text, in first-seen order. A nil location yields ErrInvalidArgument.
	FindProductsByLocation(ctx context.Context, location *string) ([]ProductDto, error)

	// FindUniqueProducts returns the products carried by exactly one store.
	FindUniqueProducts(ctx context.Context) ([]ProductDto, error)
}

// DedupMode selects how FindProductsByLocation collapses repeated products.
type DedupMode string

const (
	DedupByID    DedupMode = "id"
	DedupByValue DedupMode = "value"
)

// DefaultCategory is assigned to products added without a category.
const DefaultCategory = "general"

// Service implements CatalogService.
type Service struct {
	catalog           store.CatalogStore
	publisher         messaging.Publisher
	logger            *slog.Logger
	validate          *validator.Validate
	now               func() time.Time
	newID             func() uuid.UUID
	dedup             DedupMode
	batchedUniqueness bool

	storesCreated      metric.Int64Counter
	storesCopied       metric.Int64Counter
	productsAdded      metric.Int64Counter
	locationResultSize metric.Int64Histogram
}

type Option func(*Service)

// WithClock replaces the source of mutation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the source of new entity IDs.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Service) { s.newID = newID }
}

func WithDedup(mode DedupMode) Option {
	return func(s *Service) { s.dedup = mode }
}

// WithBatchedUniqueness makes FindUniqueProducts use one grouped count instead of one count per product.
func WithBatchedUniqueness(enabled bool) Option {
	return func(s *Service) { s.batchedUniqueness = enabled }
}

// NewService creates a new instance of CatalogService over the given store.
func NewService(catalog store.CatalogStore, publisher messaging.Publisher, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		catalog:   catalog,
		publisher: publisher,
		logger:    logger.With("component", "service"),
		validate:  NewValidator(),
		now:       time.Now,
		newID:     uuid.New,
		dedup:     DedupByID,
	}
	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter("catalog-service")
	s.storesCreated = mustCounter(meter, "catalog_stores_created", "Total number of created stores")
	s.storesCopied = mustCounter(meter, "catalog_stores_copied", "Total number of copied stores")
	s.productsAdded = mustCounter(meter, "catalog_products_added", "Total number of products added to stores")
	histogram, err := meter.Int64Histogram("catalog_location_query_products",
		metric.WithDescription("Number of products returned by location queries"))
	if err != nil {
		panic(fmt.Sprintf("failed to create catalog_location_query_products histogram: %v", err))
	}
	s.locationResultSize = histogram
	return s
}

func mustCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(fmt.Sprintf("failed to create %s counter: %v", name, err))
	}
	return counter
}

// StoreRequest carries the mutable fields of a store.
type StoreRequest struct {
	Name     string `json:"name"     validate:"notblank,max=255"`
	Location string `json:"location" validate:"notblank,max=255"`
	Email    string `json:"email"    validate:"max=255"`
}

// StoreDto represents the data transfer object for a store.
type StoreDto struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Email     string    `json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductRequest carries the fields of a product added to a store.
type ProductRequest struct {
	Name     string           `json:"name"     validate:"notblank,max=255"`
	Price    *decimal.Decimal `json:"price"    validate:"required"`
	Category string           `json:"category" validate:"max=100"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// timestamp is truncated to what PostgreSQL keeps so both backends agree on stored values.
func (s *Service) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func (s *Service) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, catalogerrors.InvalidArgument("malformed %s id %q", kind, raw)
	}
	return id, nil
}

func toStoreDto(st *db.Store) *StoreDto {
	return &StoreDto{
		ID:        st.ID,
		Name:      st.Name,
		Location:  st.Location,
		Email:     st.Email,
		UpdatedAt: st.UpdatedAt,
	}
}

func toStoreDtos(stores []db.Store) []StoreDto {
	dtos := make([]StoreDto, len(stores))
	for i := range stores {
		dtos[i] = *toStoreDto(&stores[i])
	}
	return dtos
}

func toProductDto(p *db.Product) *ProductDto {
	return &ProductDto{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
	}
}

func toProductDtos(products []db.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toProductDto(&products[i])
	}
	return dtos
}
