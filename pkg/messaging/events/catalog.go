// Package events contains the payloads published on catalog subjects.
package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/storecatalog/pkg/messaging"
	"github.com/google/uuid"
)

// StoreEvent is published when a store is created, updated or deleted.
type StoreEvent struct {
	subject   string
	StoreID   uuid.UUID `json:"store_id"`
	Name      string    `json:"name,omitempty"`
	Location  string    `json:"location,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// NewStoreCreated builds a StoreEvent for catalog.store.created.
func NewStoreCreated(id uuid.UUID, name, location string, updatedAt time.Time) StoreEvent {
	return StoreEvent{subject: messaging.StoreCreatedSubject, StoreID: id, Name: name, Location: location, UpdatedAt: updatedAt}
}

// NewStoreUpdated builds a StoreEvent for catalog.store.updated.
func NewStoreUpdated(id uuid.UUID, name, location string, updatedAt time.Time) StoreEvent {
	return StoreEvent{subject: messaging.StoreUpdatedSubject, StoreID: id, Name: name, Location: location, UpdatedAt: updatedAt}
}

// NewStoreDeleted builds a StoreEvent for catalog.store.deleted.
func NewStoreDeleted(id uuid.UUID) StoreEvent {
	return StoreEvent{subject: messaging.StoreDeletedSubject, StoreID: id}
}

func (e StoreEvent) Subject() string {
	return e.subject
}

func (e StoreEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// StoreCopiedEvent links a copy to the store it was cloned from.
type StoreCopiedEvent struct {
	SourceID uuid.UUID `json:"source_id"`
	CopyID   uuid.UUID `json:"copy_id"`
}

func (e StoreCopiedEvent) Subject() string {
	return messaging.StoreCopiedSubject
}

func (e StoreCopiedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductAddedEvent is published after a product and its store association are committed.
type ProductAddedEvent struct {
	StoreID   uuid.UUID `json:"store_id"`
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     string    `json:"price"`
	Category  string    `json:"category"`
}

func (e ProductAddedEvent) Subject() string {
	return messaging.ProductAddedSubject
}

func (e ProductAddedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}

// ProductDeletedEvent is published after a product is removed. Associations are left in place.
type ProductDeletedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
}

func (e ProductDeletedEvent) Subject() string {
	return messaging.ProductDeletedSubject
}

func (e ProductDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
