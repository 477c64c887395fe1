package port

import (
	"context"
)

// Store is a local key-value store that survives process restarts.
// Set always overwrites the whole value; Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
