// Package engine defines the contract every fetch strategy implements.
// The browser, direct-API, and static paths all produce the same ordered
// record collection; callers pick a strategy, not an API.
package engine

import (
	"context"

	"github.com/law-makers/ementas/pkg/models"
)

// Fetcher is the interface that all fetch strategies must implement
type Fetcher interface {
	// Fetch materializes the search page (or calls its data API) and
	// returns the extracted records in source order.
	Fetch(ctx context.Context, opts models.RequestOptions) (*models.Result, error)

	// Name returns the name of the fetcher implementation
	Name() string
}
