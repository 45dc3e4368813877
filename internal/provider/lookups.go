package provider

import (
	"context"
	"time"

	"github.com/finassist/finassist/internal/cache"
	"github.com/sirupsen/logrus"
)

const (
	userKey    = "provider:user"
	budgetsKey = "provider:budgets"
	lookupTTL  = 5 * time.Minute
)

// Lookups serves the provider's user and budget list through a short-lived
// cache. A cache failure is logged and treated as a miss, never surfaced.
type Lookups struct {
	client *Client
	kv     cache.KV
}

func NewLookups(client *Client, kv cache.KV) *Lookups {
	return &Lookups{
		client: client,
		kv:     kv,
	}
}

func (l *Lookups) GetUser(ctx context.Context) (*User, error) {
	var user User
	hit, err := l.kv.Get(ctx, userKey, &user)
	if err != nil {
		logrus.Warnf("user cache read: %v", err)
	}
	if hit {
		return &user, nil
	}

	fresh, err := l.client.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.kv.Set(ctx, userKey, fresh, lookupTTL); err != nil {
		logrus.Warnf("user cache write: %v", err)
	}
	return fresh, nil
}

func (l *Lookups) GetBudgets(ctx context.Context) ([]BudgetSummary, error) {
	var budgets []BudgetSummary
	hit, err := l.kv.Get(ctx, budgetsKey, &budgets)
	if err != nil {
		logrus.Warnf("budgets cache read: %v", err)
	}
	if hit {
		return budgets, nil
	}

	fresh, err := l.client.GetBudgets(ctx)
	if err != nil {
		return nil, err
	}
	if err := l.kv.Set(ctx, budgetsKey, fresh, lookupTTL); err != nil {
		logrus.Warnf("budgets cache write: %v", err)
	}
	return fresh, nil
}
