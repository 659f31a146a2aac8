// Package tokens persists the current access token (and related client
// metadata) in the local database. It is a mechanical key-value store:
// no validation happens here.
package tokens

import "context"

// Repository is the durable key-value store backing the token lifecycle.
// Get returns ("", nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
