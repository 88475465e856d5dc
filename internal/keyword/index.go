// Package keyword provides keyword search over product names and categories.
package keyword

import (
	"context"

	"github.com/glancehq/glance/internal/models"
)

// KeywordIndex defines keyword search operations over the catalog.
type KeywordIndex interface {
	Index(ctx context.Context, p *models.Product) error
	Search(ctx context.Context, query string, limit int) ([]*KeywordResult, error)
	Delete(ctx context.Context, id string) error
	// DocCount returns the total number of products in the index.
	DocCount() (uint64, error)
	Close() error
}

// KeywordResult is a single keyword search hit.
type KeywordResult struct {
	ID    string
	Score float64
}
