// Package cache stores computed financing results so repeated calculations
// for the same inputs skip the amortization work.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"realty-backend/internal/financing"
)

const keyPrefix = "financing:result:"

// ResultCache is implemented by RedisCache and Nop.
type ResultCache interface {
	Get(ctx context.Context, t financing.Type, p financing.Parameters) (financing.Result, bool, error)
	Set(ctx context.Context, t financing.Type, p financing.Parameters, res financing.Result) error
}

// RedisCache keeps results as JSON under a hash of type and parameters.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Key is the redis key for a calculation. Parameters are normalized so
// "6.50" and "6.5" hit the same entry.
func Key(t financing.Type, p financing.Parameters) string {
	norm := struct {
		Type           financing.Type `json:"t"`
		PropertyPrice  string         `json:"pp"`
		DownPayment    string         `json:"dp"`
		InterestRate   string         `json:"ir"`
		LoanTermYears  int            `json:"lt"`
		AdditionalFees string         `json:"af"`
		CurrentBalance *string        `json:"cb"`
	}{
		Type:           t,
		PropertyPrice:  p.PropertyPrice.String(),
		DownPayment:    p.DownPayment.String(),
		InterestRate:   p.InterestRate.String(),
		LoanTermYears:  p.LoanTermYears,
		AdditionalFees: p.AdditionalFees.String(),
	}
	if p.CurrentBalance != nil {
		s := p.CurrentBalance.String()
		norm.CurrentBalance = &s
	}
	b, _ := json.Marshal(norm)
	sum := sha256.Sum256(b)
	return keyPrefix + hex.EncodeToString(sum[:])
}

func (c *RedisCache) Get(ctx context.Context, t financing.Type, p financing.Parameters) (financing.Result, bool, error) {
	var res financing.Result
	b, err := c.client.Get(ctx, Key(t, p)).Bytes()
	if errors.Is(err, redis.Nil) {
		return res, false, nil
	}
	if err != nil {
		return res, false, err
	}
	if err := json.Unmarshal(b, &res); err != nil {
		return res, false, err
	}
	if res.AmortizationSchedule == nil {
		res.AmortizationSchedule = []financing.PaymentSchedule{}
	}
	return res, true, nil
}

func (c *RedisCache) Set(ctx context.Context, t financing.Type, p financing.Parameters, res financing.Result) error {
	b, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(t, p), b, c.ttl).Err()
}

// Nop never stores anything. Used when REDIS_URL is not configured.
type Nop struct{}

func (Nop) Get(ctx context.Context, t financing.Type, p financing.Parameters) (financing.Result, bool, error) {
	return financing.Result{}, false, nil
}

func (Nop) Set(ctx context.Context, t financing.Type, p financing.Parameters, res financing.Result) error {
	return nil
}
