package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dkoval91/flightinventory/config"
	"github.com/dkoval91/flightinventory/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	data, err := c.client.Get(ctx, flightsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var flights []domain.Flight
	if err := json.Unmarshal(data, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(), payload, c.flightsTTL).Err()
}

// InvalidateFlights drops the cached list. Called after any write that
// changes seat counters or adds a flight.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Del(ctx, flightsKey()).Err()
}

// AcquireCancelLock guards a PNR against concurrent cancellation
// attempts. The transactional delete is the real safety net; the lock
// only short-circuits the duplicate request.
func (c *RedisCache) AcquireCancelLock(ctx context.Context, pnr string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, cancelLockKey(pnr), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseCancelLock(ctx context.Context, pnr string) error {
	return c.client.Del(ctx, cancelLockKey(pnr)).Err()
}

func flightsKey() string {
	return "cache:flights"
}

func cancelLockKey(pnr string) string {
	return fmt.Sprintf("lock:cancel:%s", pnr)
}
