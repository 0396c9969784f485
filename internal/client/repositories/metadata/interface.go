// Package metadata is the client's durable key/value store. It keeps small
// blobs such as the serialized session user in the local SQLite database.
package metadata

import (
	"context"
	"time"
)

// Repository is a key/value store. Get returns (nil, nil) for absent keys.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	UpdatedAt(ctx context.Context, key string) (time.Time, bool, error)
}
