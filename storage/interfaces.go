package storage

import (
	"context"

	"github.com/poiesic/arbor/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// ContentRepository stores consolidated extraction results per user.
// Records are append-only; readers see them in insertion order.
type ContentRepository interface {
	Repository

	// AppendContent stores a consolidated record for the user and returns
	// its generated ID. Sets CreatedAt if not already set.
	AppendContent(ctx context.Context, userID string, content *core.ConsolidatedContent) (core.ID, error)

	// ContentForUser retrieves all consolidated records for the user in
	// insertion order. Returns an empty slice when none exist.
	ContentForUser(ctx context.Context, userID string) ([]*core.ConsolidatedContent, error)
}

// ForestRepository stores synthesized knowledge forests per user.
type ForestRepository interface {
	Repository

	// AppendForest stores a forest for the user and returns its generated ID.
	// Sets CreatedAt if not already set.
	AppendForest(ctx context.Context, userID string, forest *core.Forest) (core.ID, error)

	// ForestsForUser retrieves all forests for the user in insertion order.
	// Returns an empty slice when none exist.
	ForestsForUser(ctx context.Context, userID string) ([]*core.Forest, error)

	// GetForest retrieves a single forest by ID.
	// Returns ErrNotFound if it doesn't exist.
	GetForest(ctx context.Context, userID string, id core.ID) (*core.Forest, error)
}
