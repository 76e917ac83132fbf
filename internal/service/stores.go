package service

import (
	"context"
	"fmt"

	"github.com/abgdnv/storecatalog/internal/store"
	"github.com/abgdnv/storecatalog/internal/store/db"
	"github.com/abgdnv/storecatalog/pkg/messaging/events"
)

func (s *Service) CreateStore(ctx context.Context, req StoreRequest) (*StoreDto, error) {
	if err := s.validateStruct(req); err != nil {
		return nil, err
	}

	var created *db.Store
	err := s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		var err error
		created, err = repo.SaveStore(ctx, db.Store{
			ID:        s.newID(),
			Name:      req.Name,
			Location:  req.Location,
			Email:     req.Email,
			UpdatedAt: s.timestamp(),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	s.publish(ctx, events.NewStoreCreated(created.ID, created.Name, created.Location, created.UpdatedAt))
	s.storesCreated.Add(ctx, 1)
	return toStoreDto(created), nil
}

func (s *Service) GetStore(ctx context.Context, id string) (*StoreDto, error) {
	storeID, err := parseID("store", id)
	if err != nil {
		return nil, err
	}

	var found *db.Store
	err = s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		found, err = repo.GetStore(ctx, storeID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch store by ID %s: %w", storeID, err)
	}
	return toStoreDto(found), nil
}

func (s *Service) UpdateStore(ctx context.Context, id string, req StoreRequest) (*StoreDto, error) {
	storeID, err := parseID("store", id)
	if err != nil {
		return nil, err
	}

	var updated *db.Store
	err = s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		current, err := repo.GetStore(ctx, storeID)
		if err != nil {
			return err
		}
		if err := s.validateStruct(req); err != nil {
			return err
		}
		current.Name = req.Name
		current.Location = req.Location
		current.Email = req.Email
		current.UpdatedAt = s.timestamp()
		updated, err = repo.SaveStore(ctx, *current)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update store with ID %s: %w", storeID, err)
	}

	s.publish(ctx, events.NewStoreUpdated(updated.ID, updated.Name, updated.Location, updated.UpdatedAt))
	return toStoreDto(updated), nil
}

func (s *Service) DeleteStore(ctx context.Context, id string) error {
	storeID, err := parseID("store", id)
	if err != nil {
		return err
	}

	err = s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		return repo.DeleteStore(ctx, storeID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete store with ID %s: %w", storeID, err)
	}

	s.publish(ctx, events.NewStoreDeleted(storeID))
	return nil
}

func (s *Service) ListStores(ctx context.Context) ([]StoreDto, error) {
	return s.listStores(ctx, func(repo store.Repository) ([]db.Store, error) {
		return repo.ListStores(ctx)
	})
}

func (s *Service) ListStoresByLocation(ctx context.Context, location string) ([]StoreDto, error) {
	return s.listStores(ctx, func(repo store.Repository) ([]db.Store, error) {
		return repo.ListStoresByLocation(ctx, location)
	})
}

func (s *Service) ListStoresSortedByName(ctx context.Context) ([]StoreDto, error) {
	return s.listStores(ctx, func(repo store.Repository) ([]db.Store, error) {
		return repo.ListStoresSortedByName(ctx)
	})
}

func (s *Service) listStores(ctx context.Context, list func(repo store.Repository) ([]db.Store, error)) ([]StoreDto, error) {
	var stores []db.Store
	err := s.catalog.ReadTx(ctx, func(repo store.Repository) error {
		var err error
		stores, err = list(repo)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stores: %w", err)
	}
	return toStoreDtos(stores), nil
}

// CopyStore keeps the source's updated_at on the copy rather than stamping the current time.
func (s *Service) CopyStore(ctx context.Context, id string) (*StoreDto, error) {
	sourceID, err := parseID("store", id)
	if err != nil {
		return nil, err
	}

	var copied *db.Store
	err = s.catalog.WriteTx(ctx, func(repo store.Repository) error {
		source, err := repo.GetStore(ctx, sourceID)
		if err != nil {
			return err
		}
		copied, err = repo.SaveStore(ctx, db.Store{
			ID:        s.newID(),
			Name:      source.Name,
			Location:  source.Location,
			Email:     source.Email,
			UpdatedAt: source.UpdatedAt,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to copy store with ID %s: %w", sourceID, err)
	}

	s.publish(ctx, events.StoreCopiedEvent{SourceID: sourceID, CopyID: copied.ID})
	s.storesCopied.Add(ctx, 1)
	return toStoreDto(copied), nil
}
