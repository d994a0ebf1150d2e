// Package cache keeps merchant payout policies in Redis in front of Postgres.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GlebRadaev/payoutengine/internal/domain"
)

const policyKeyPrefix = "payouts:policy:"

type PolicyStore interface {
	GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error)
}

func Connect(_ context.Context, redisURL string) (*redis.Client, error) {
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(opt), nil
	}
	return redis.NewClient(&redis.Options{Addr: redisURL}), nil
}

type cachedPolicy struct {
	Configured      bool   `json:"configured"`
	AutoPayout      bool   `json:"auto_payout"`
	MinimumPayout   int64  `json:"minimum_payout_cents"`
	CalculationBase string `json:"calculation_base"`
}

// PolicyCache is a read-through cache. Redis failures are logged and the
// request falls through to the store, so the cache never blocks intake.
type PolicyCache struct {
	client *redis.Client
	next   PolicyStore
	ttl    time.Duration
}

func NewPolicyCache(client *redis.Client, next PolicyStore, ttl time.Duration) *PolicyCache {
	return &PolicyCache{
		client: client,
		next:   next,
		ttl:    ttl,
	}
}

func (c *PolicyCache) GetPolicy(ctx context.Context, merchantID string) (*domain.MerchantPayoutPolicy, error) {
	key := policyKeyPrefix + merchantID

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached cachedPolicy
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached.policy(merchantID), nil
		}
		zap.L().Warn("dropping malformed cached policy", zap.String("merchantID", merchantID))
	case !errors.Is(err, redis.Nil):
		zap.L().Warn("policy cache unavailable", zap.String("merchantID", merchantID), zap.Error(err))
	}

	policy, err := c.next.GetPolicy(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(toCached(policy))
	if err != nil {
		return policy, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		zap.L().Warn("failed to cache policy", zap.String("merchantID", merchantID), zap.Error(err))
	}
	return policy, nil
}

func toCached(policy *domain.MerchantPayoutPolicy) cachedPolicy {
	if policy == nil {
		return cachedPolicy{}
	}
	return cachedPolicy{
		Configured:      true,
		AutoPayout:      policy.AutoPayout,
		MinimumPayout:   policy.MinimumPayout,
		CalculationBase: string(policy.CalculationBase),
	}
}

func (p cachedPolicy) policy(merchantID string) *domain.MerchantPayoutPolicy {
	if !p.Configured {
		return nil
	}
	return &domain.MerchantPayoutPolicy{
		MerchantID:      merchantID,
		AutoPayout:      p.AutoPayout,
		MinimumPayout:   p.MinimumPayout,
		CalculationBase: domain.CalculationBase(p.CalculationBase),
	}
}
