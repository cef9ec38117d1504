package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/mailer"
	"github.com/soupclass/soup-backend/internal/model"
)

const (
	// maxMailAttempts is how many sends a job gets before it is dropped.
	maxMailAttempts = 5
	baseRetryDelay  = 2 * time.Second
	maxRetryDelay   = 30 * time.Second
	sendTimeout     = 15 * time.Second
)

// MailWorker consumes mail_queue and delivers each job through a mailer.Sender.
type MailWorker struct {
	rdb    *redis.Client
	sender mailer.Sender
	queue  string
	log    zerolog.Logger
}

// NewMailWorker creates a new MailWorker.
func NewMailWorker(rdb *redis.Client, sender mailer.Sender, log zerolog.Logger) *MailWorker {
	return &MailWorker{
		rdb:    rdb,
		sender: sender,
		queue:  config.WorkerKey.MailQueue,
		log:    log.With().Str("component", "mail_worker").Logger(),
	}
}

// Start begins the worker loop and blocks until ctx is cancelled. Call in a goroutine.
func (w *MailWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *MailWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or the 1s timeout passes.
	result, err := w.rdb.BLPop(ctx, time.Second, w.queue).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
			sleepCtx(ctx, time.Second)
		}
		return
	}
	if len(result) < 2 {
		return
	}

	retry, err := w.handle(ctx, result[1])
	if retry == nil {
		return
	}

	delay := retryDelay(retry.Attempts)
	w.log.Warn().Err(err).
		Str("to", retry.To).
		Int("attempts", retry.Attempts).
		Dur("retry_in", delay).
		Msg("Send failed, requeueing")
	if err := w.requeue(context.Background(), retry); err != nil {
		w.log.Error().Err(err).Str("to", retry.To).Msg("Requeue failed, mail lost")
	}
	sleepCtx(ctx, delay)
}

// handle decodes and sends one raw job. It returns the job to requeue when the
// send failed and attempts remain, or nil when the job is finished or dropped.
func (w *MailWorker) handle(ctx context.Context, raw string) (*model.MailJob, error) {
	var job model.MailJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error, dropping job")
		return nil, err
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := w.sender.Send(sendCtx, job)
	if err == nil {
		w.log.Debug().Str("to", job.To).Str("subject", job.Subject).Msg("Mail sent")
		return nil, nil
	}

	job.Attempts++
	if job.Attempts >= maxMailAttempts {
		w.log.Error().Err(err).
			Str("to", job.To).
			Str("subject", job.Subject).
			Int("attempts", job.Attempts).
			Msg("Giving up on mail")
		return nil, err
	}
	return &job, err
}

func (w *MailWorker) requeue(ctx context.Context, job *model.MailJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return w.rdb.RPush(ctx, w.queue, raw).Err()
}

// drain sends what is left in the queue before shutdown. The first failure
// puts the job back and stops, leaving the rest for the next start.
func (w *MailWorker) drain(ctx context.Context) {
	drained := 0
	for {
		raw, err := w.rdb.LPop(ctx, w.queue).Result()
		if err != nil {
			break
		}

		retry, _ := w.handle(ctx, raw)
		if retry != nil {
			if err := w.requeue(ctx, retry); err != nil {
				w.log.Error().Err(err).Msg("Drain requeue error")
			}
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}

// retryDelay doubles per attempt, capped at maxRetryDelay.
func retryDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := baseRetryDelay
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= maxRetryDelay {
			return maxRetryDelay
		}
	}
	return d
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
