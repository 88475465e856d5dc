// Package storage defines the persistence interface for product metadata.
package storage

import (
	"context"

	"github.com/glancehq/glance/internal/models"
)

// ProductStore persists product metadata independently of the vector
// index, so names, categories, and prices survive full index rebuilds.
type ProductStore interface {
	Upsert(ctx context.Context, p *models.Product) error
	Get(ctx context.Context, id string) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, offset, limit int) ([]*models.Product, error)
	Count(ctx context.Context) (int64, error)
	Close() error
}
