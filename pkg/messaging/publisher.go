// Package messaging defines the event publishing contract used by services.
package messaging

import (
	"context"
)

// Subjects of the catalog events.
const (
	StoreCreatedSubject   = "catalog.store.created"
	StoreUpdatedSubject   = "catalog.store.updated"
	StoreDeletedSubject   = "catalog.store.deleted"
	StoreCopiedSubject    = "catalog.store.copied"
	ProductAddedSubject   = "catalog.product.added"
	ProductDeletedSubject = "catalog.product.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher discards every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
