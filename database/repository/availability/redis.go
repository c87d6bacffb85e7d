package availability

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"receptionist/models"
)

const (
	availabilityKey = "receptionist:availability"
	lastEventKey    = "receptionist:last_event"
)

// RedisRepo implements Repository on Redis.
type RedisRepo struct {
	Client *redis.Client
}

func NewRedisRepo(client *redis.Client) *RedisRepo {
	return &RedisRepo{Client: client}
}

func (r *RedisRepo) SaveAvailability(ctx context.Context, snap models.AvailabilitySnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal availability snapshot: %w", err)
	}
	return r.Client.Set(ctx, availabilityKey, data, 0).Err()
}

func (r *RedisRepo) GetAvailability(ctx context.Context) (*models.AvailabilitySnapshot, error) {
	data, err := r.Client.Get(ctx, availabilityKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap models.AvailabilitySnapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("failed to parse availability snapshot: %w", err)
	}
	return &snap, nil
}

func (r *RedisRepo) SaveLastEvent(ctx context.Context, event models.CalendarEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return r.Client.Set(ctx, lastEventKey, data, 0).Err()
}

func (r *RedisRepo) GetLastEvent(ctx context.Context) (*models.CalendarEvent, error) {
	data, err := r.Client.Get(ctx, lastEventKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var event models.CalendarEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}
	return &event, nil
}
