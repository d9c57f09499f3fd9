package repository

import (
	"context"
	"encoding/json"
	"time"

	"aspirevote-backend/cmd/aspirevote/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const eventListKey = "aspirevote:events:list"

// CachedEventRepo keeps the event list in Redis. Writes invalidate the list.
// Any cache failure falls through to the wrapped store.
type CachedEventRepo struct {
	EventStore
	cache *redis.Client
	ttl   time.Duration
}

func NewCachedEventRepo(store EventStore, cache *redis.Client, ttl time.Duration) *CachedEventRepo {
	return &CachedEventRepo{
		EventStore: store,
		cache:      cache,
		ttl:        ttl,
	}
}

func (r *CachedEventRepo) ListEvents(ctx context.Context) ([]model.Event, error) {
	cached, err := r.cache.Get(ctx, eventListKey).Bytes()
	if err == nil {
		var events []model.Event
		if err := json.Unmarshal(cached, &events); err == nil {
			return events, nil
		}
	} else if err != redis.Nil {
		log.Warn().Err(err).Msg("event list cache read failed")
	}

	events, err := r.EventStore.ListEvents(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(events); err == nil {
		if err := r.cache.Set(ctx, eventListKey, data, r.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("event list cache write failed")
		}
	}
	return events, nil
}

func (r *CachedEventRepo) CreateEvent(ctx context.Context, event model.Event) (model.Event, error) {
	created, err := r.EventStore.CreateEvent(ctx, event)
	if err != nil {
		return model.Event{}, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *CachedEventRepo) CreateEvents(ctx context.Context, events []model.Event) ([]model.Event, error) {
	created, err := r.EventStore.CreateEvents(ctx, events)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return created, nil
}

func (r *CachedEventRepo) invalidate(ctx context.Context) {
	if err := r.cache.Del(ctx, eventListKey).Err(); err != nil {
		log.Warn().Err(err).Msg("event list cache invalidation failed")
	}
}
