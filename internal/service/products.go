package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/abgdnv/storecatalog/pkg/messaging/events"
)

func (s *Service) AddProductToStore(ctx context.Context, storeID string, req ProductRequest) (*ProductDto, error) {
	sid, err := parseID("store", storeID)
	if err != nil {
		return nil, err
	}
	if err := s.validateProduct(req); err != nil {
		return nil, err
	}
	category := req.Category
	if strings.TrimSpace(category) == "" {
		category = DefaultCategory
	}

	var product *db.Product
	err = s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		if _, err := repo.GetStore(ctx, sid); err != nil {
			return err
		}
		var err error
		product, err = repo.SaveProduct(ctx, db.Product{
			ID:       s.newID(),
			Name:     req.Name,
			Price:    *req.Price,
			Category: category,
		})
		if err != nil {
			return err
		}
		_, err = repo.SaveAssociation(ctx, db.StoreProduct{
			ID:        s.newID(),
			StoreID:   sid,
			ProductID: product.ID,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add product to store %s: %w", sid, err)
	}

	s.publish(ctx, events.ProductAddedEvent{
		StoreID:   sid,
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price.String(),
		Category:  product.Category,
	})
	s.productsAdded.Add(ctx, 1)
	return toProductDto(product), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*ProductDto, error) {
	productID, err := parseID("product", id)
	if err != nil {
		return nil, err
	}

	var found *db.Product
	err = s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		found, err = repo.GetProduct(ctx, productID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", productID, err)
	}
	return toProductDto(found), nil
}

func (s *Service) ListProducts(ctx context.Context) ([]ProductDto, error) {
	var products []db.Product
	err := s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		var err error
		products, err = repo.ListProducts(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return toProductDtos(products), nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	productID, err := parseID("product", id)
	if err != nil {
		return err
	}

	err = s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		return repo.DeleteProduct(ctx, productID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete product with ID %s: %w", productID, err)
	}

	s.publish(ctx, events.ProductDeletedEvent{ProductID: productID})
	return nil
}
