package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
)

// MailQueue pushes mail jobs onto the Redis list consumed by the mail worker.
type MailQueue struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewMailQueue creates a new MailQueue.
func NewMailQueue(rdb *redis.Client, log zerolog.Logger) *MailQueue {
	return &MailQueue{
		rdb: rdb,
		log: log.With().Str("component", "mail_queue").Logger(),
	}
}

// Enqueue appends a job to the mail queue.
func (q *MailQueue) Enqueue(ctx context.Context, job model.MailJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal mail job: %w", err)
	}
	if err := q.rdb.RPush(ctx, config.WorkerKey.MailQueue, raw).Err(); err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}
	return nil
}

// enqueueBestEffort logs failures instead of returning them.
func (q *MailQueue) enqueueBestEffort(ctx context.Context, job model.MailJob, buildErr error) {
	if buildErr != nil {
		q.log.Error().Err(buildErr).Str("to", job.To).Msg("Failed to build email")
		return
	}
	if err := q.Enqueue(ctx, job); err != nil {
		q.log.Error().Err(err).Str("to", job.To).Str("subject", job.Subject).Msg("Failed to queue email")
	}
}
