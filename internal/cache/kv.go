package cache

import (
	"context"
	"time"
)

// KV is a small key-value cache for provider lookups that are slow and change
// rarely (user identity, budget list).
type KV interface {
	// Get unmarshals the cached value for k into out. Returns false on a miss.
	Get(ctx context.Context, k string, out any) (bool, error)
	// Set stores v under k for the given ttl.
	Set(ctx context.Context, k string, v any, ttl time.Duration) error
	// Delete removes k.
	Delete(ctx context.Context, k string) error
}

// Nop is a KV that caches nothing, for when no redis is configured.
type Nop struct{}

func NewNop() *Nop {
	return &Nop{}
}

func (n *Nop) Get(ctx context.Context, k string, out any) (bool, error) {
	return false, nil
}

func (n *Nop) Set(ctx context.Context, k string, v any, ttl time.Duration) error {
	return nil
}

func (n *Nop) Delete(ctx context.Context, k string) error {
	return nil
}
