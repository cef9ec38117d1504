package service

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
)

// SlotPublisher broadcasts course schedule availability changes over Redis PubSub.
type SlotPublisher struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewSlotPublisher creates a new SlotPublisher.
func NewSlotPublisher(rdb *redis.Client, log zerolog.Logger) *SlotPublisher {
	return &SlotPublisher{
		rdb: rdb,
		log: log.With().Str("component", "slot_publisher").Logger(),
	}
}

// Publish sends each update on the slot channel. Failures are logged only.
func (p *SlotPublisher) Publish(ctx context.Context, updates ...model.SlotUpdate) {
	if len(updates) == 0 {
		return
	}

	channel := config.CacheKey.SlotUpdatesChannel()
	pipe := p.rdb.Pipeline()
	for _, u := range updates {
		raw, err := json.Marshal(u)
		if err != nil {
			p.log.Error().Err(err).Int("ms_id", u.CourseScheduleID).Msg("Marshal slot update")
			continue
		}
		pipe.Publish(ctx, channel, raw)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		p.log.Warn().Err(err).Int("count", len(updates)).Msg("Failed to publish slot updates")
	}
}

// Subscribe opens a subscription on the slot channel. Callers must Close it.
func (p *SlotPublisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.rdb.Subscribe(ctx, config.CacheKey.SlotUpdatesChannel())
}
