package ports

import "context"

// SignInThrottle rate-limits failed sign-in attempts per key (email+IP).
type SignInThrottle interface {
	// Allow reports whether another attempt is permitted for key.
	Allow(ctx context.Context, key string) (bool, error)
	// RecordFailure counts a failed attempt against key.
	RecordFailure(ctx context.Context, key string) error
	// Reset clears the counter after a successful sign-in.
	Reset(ctx context.Context, key string) error
}
