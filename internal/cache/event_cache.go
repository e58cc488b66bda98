package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/matchday-travel/lead-service/internal/domain"
)

// EventCache keeps event reads out of Postgres. Events are immutable,
// so entries only ever expire by TTL.
type EventCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEventCache builds a cache over an existing redis client.
func NewEventCache(client *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{client: client, ttl: ttl}
}

// GetEvent returns the cached event or nil on a miss. Cache errors are
// reported to the caller, which treats them as misses.
func (c *EventCache) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var event domain.Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// SetEvent stores a single event.
func (c *EventCache) SetEvent(ctx context.Context, event *domain.Event) error {
	if c == nil || c.client == nil || event == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, eventKey(event.ID), payload, c.ttl).Err()
}

// GetEvents returns the cached event listing or nil on a miss.
func (c *EventCache) GetEvents(ctx context.Context) ([]domain.Event, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, eventsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var events []domain.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SetEvents stores the full event listing.
func (c *EventCache) SetEvents(ctx context.Context, events []domain.Event) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, eventsKey(), payload, c.ttl).Err()
}

func eventKey(id string) string {
	return "cache:event:" + id
}

func eventsKey() string {
	return "cache:events"
}
