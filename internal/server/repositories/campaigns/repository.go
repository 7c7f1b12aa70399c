// Package campaigns persists the fundraising campaign registry.
package campaigns

import (
	"context"

	"github.com/Berkcanaskin/stellar/internal/server/models"
)

// Repository stores campaigns. Implementations assign ids from a counter
// that only moves forward, so a deleted campaign's id is never handed out
// again while the process lives.
type Repository interface {
	// Create assigns the next id and stores the campaign.
	Create(ctx context.Context, c *models.Campaign) (*models.Campaign, error)

	// List returns all campaigns in creation order.
	List(ctx context.Context) ([]models.Campaign, error)

	// Get returns the campaign or common.ErrorNotFound.
	Get(ctx context.Context, id int64) (*models.Campaign, error)

	// Delete removes the campaign, common.ErrorNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
