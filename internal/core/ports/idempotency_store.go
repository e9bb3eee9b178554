package ports

import "context"

// IdempotencyStore deduplicates retried commands by a client-supplied key.
type IdempotencyStore interface {
	// TryLock claims key within scope; false means another request holds it.
	TryLock(ctx context.Context, scope, key string) (bool, error)

	// Unlock drops a claim whose request failed so the client may retry.
	Unlock(ctx context.Context, scope, key string) error

	// Remember maps key to the id of the result it produced.
	Remember(ctx context.Context, scope, key, value string) error

	// Recall returns the remembered value, if any.
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}
