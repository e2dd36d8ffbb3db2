// Package metadata is the local key/value table the client keeps its small
// pieces of persistent state in (currently the bearer token).
package metadata

import (
	"context"
)

// Repository reads and writes single values by key.
//
// Get reports ok=false with a nil error when the key is absent. Delete is
// idempotent.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
