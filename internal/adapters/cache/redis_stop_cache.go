package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"vending-route-service/internal/domain"
	"vending-route-service/internal/platform/obs"
	"vending-route-service/internal/ports"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultStopsKey = "vending:stops:v1"

type cachedStop struct {
	ID        string  `json:"id"`
	Retailer  string  `json:"retailer"`
	MachineID string  `json:"machine_id"`
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// RedisStopCache is a read-through cache in front of a StopRepository.
//
// The whole data set is stored as one JSON value; it is small and always read
// in full by the planner. Redis failures are logged and the call falls through
// to the wrapped repository, so the cache never turns a healthy source into
// an error. The cache is safe for concurrent use.
type RedisStopCache struct {
	next   ports.StopRepository
	client redis.Cmdable
	key    string
	ttl    time.Duration
	log    *zap.Logger
}

func NewRedisStopCache(
	next ports.StopRepository,
	client redis.Cmdable,
	ttl time.Duration,
	log *zap.Logger,
) *RedisStopCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisStopCache{
		next:   next,
		client: client,
		key:    DefaultStopsKey,
		ttl:    ttl,
		log:    log,
	}
}

// Fetch stops from Redis, loading and storing them from the wrapped repository on a miss.
func (r *RedisStopCache) ListStops(ctx context.Context) (_ []domain.Stop, err error) {
	defer obs.Time(ctx, "stops.cache.List")(&err)

	if r.next == nil {
		return nil, errors.New("stop cache: wrapped repository is nil")
	}

	if stops, ok := r.get(ctx); ok {
		return stops, nil
	}

	stops, err := r.next.ListStops(ctx)
	if err != nil {
		return nil, fmt.Errorf("stop cache: load from source: %w", err)
	}

	r.put(ctx, stops)
	return stops, nil
}

// Invalidate drops the cached data set, e.g. after reseeding.
func (r *RedisStopCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("stop cache: delete %q: %w", r.key, err)
	}
	return nil
}

func (r *RedisStopCache) get(ctx context.Context) ([]domain.Stop, bool) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		r.log.Warn("stop cache read failed", zap.String("key", r.key), zap.Error(err))
		return nil, false
	}

	var cached []cachedStop
	if err := json.Unmarshal(raw, &cached); err != nil {
		r.log.Warn("stop cache entry is corrupt", zap.String("key", r.key), zap.Error(err))
		return nil, false
	}

	stops := make([]domain.Stop, 0, len(cached))
	for _, c := range cached {
		stops = append(stops, domain.Stop{
			ID:          c.ID,
			Retailer:    c.Retailer,
			MachineID:   c.MachineID,
			Address:     c.Address,
			City:        c.City,
			Coordinates: domain.Coordinates{Lat: c.Lat, Lon: c.Lon},
		})
	}
	return stops, true
}

func (r *RedisStopCache) put(ctx context.Context, stops []domain.Stop) {
	cached := make([]cachedStop, 0, len(stops))
	for _, s := range stops {
		cached = append(cached, cachedStop{
			ID:        s.ID,
			Retailer:  s.Retailer,
			MachineID: s.MachineID,
			Address:   s.Address,
			City:      s.City,
			Lat:       s.Coordinates.Lat,
			Lon:       s.Coordinates.Lon,
		})
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		r.log.Warn("stop cache encode failed", zap.Error(err))
		return
	}

	if err := r.client.Set(ctx, r.key, payload, r.ttl).Err(); err != nil {
		r.log.Warn("stop cache write failed", zap.String("key", r.key), zap.Error(err))
	}
}
