package service

import (
	"context"
	"fmt"

	catalogerrors "github.com/abgdnv/storecatalog/internal/errors"
	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/google/uuid"
)

// resolveProductIDs returns the product IDs linked to the store in association order.
// Repeated links yield repeated IDs.
func resolveProductIDs(ctx context.Context, repo store.Repository, storeID uuid.UUID) ([]uuid.UUID, error) {
	associations, err := repo.ListAssociationsByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(associations))
	for i, a := range associations {
		ids[i] = a.ProductID
	}
	return ids, nil
}

func (s *Service) FindProductsByLocation(ctx context.Context, location *string) ([]ProductDto, error) {
	if location == nil {
		return nil, catalogerrors.InvalidArgument("location must not be nil")
	}

	var products []db.Product
	err := s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		stores, err := repo.ListStoresByLocationContains(ctx, *location)
		if err != nil {
			return err
		}
		collector := newProductCollector(s.dedup)
		for _, st := range stores {
			ids, err := resolveProductIDs(ctx, repo, st.ID)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if collector.seenID(id) {
					continue
				}
				product, err := repo.GetProduct(ctx, id)
				if err != nil {
					return fmt.Errorf("store %s links product %s: %w", st.ID, id, err)
				}
				collector.add(*product)
			}
		}
		products = collector.products
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find products by location %q: %w", *location, err)
	}

	s.locationResultSize.Record(ctx, int64(len(products)))
	return toProductDtos(products), nil
}

func (s *Service) FindUniqueProducts(ctx context.Context) ([]ProductDto, error) {
	var unique []db.Product
	err := s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		products, err := repo.ListProducts(ctx)
		if err != nil {
			return err
		}

		storeCount := func(id uuid.UUID) (int64, error) {
			return repo.CountStoresCarryingProduct(ctx, id)
		}
		if s.batchedUniqueness {
			counts, err := repo.CountStoresPerProduct(ctx)
			if err != nil {
				return err
			}
			storeCount = func(id uuid.UUID) (int64, error) {
				return counts[id], nil
			}
		}

		unique = make([]db.Product, 0)
		for _, p := range products {
			count, err := storeCount(p.ID)
			if err != nil {
				return err
			}
			if count == 1 {
				unique = append(unique, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find unique products: %w", err)
	}
	return toProductDtos(unique), nil
}

// productCollector keeps products in first-seen order, dropping repeats per the dedup mode.
type productCollector struct {
	mode     DedupMode
	ids      map[uuid.UUID]struct{}
	products []db.Product
}

func newProductCollector(mode DedupMode) *productCollector {
	return &productCollector{
		mode:     mode,
		ids:      make(map[uuid.UUID]struct{}),
		products: make([]db.Product, 0),
	}
}

// seenID reports whether the product can be skipped without fetching it.
func (c *productCollector) seenID(id uuid.UUID) bool {
	if c.mode != DedupByID {
		return false
	}
	_, ok := c.ids[id]
	return ok
}

func (c *productCollector) add(p db.Product) {
	if c.mode == DedupByValue {
		for _, existing := range c.products {
			if sameProduct(existing, p) {
				return
			}
		}
	}
	c.ids[p.ID] = struct{}{}
	c.products = append(c.products, p)
}

func sameProduct(a, b db.Product) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Price.Equal(b.Price) && a.Category == b.Category
}
