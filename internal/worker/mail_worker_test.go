package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	err  error
	sent []model.MailJob
}

func (f *fakeSender) Send(_ context.Context, job model.MailJob) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, job)
	return nil
}

func newTestWorker(sender *fakeSender) *MailWorker {
	return &MailWorker{sender: sender, queue: "mail_queue", log: zerolog.Nop()}
}

func encode(t *testing.T, job model.MailJob) string {
	t.Helper()
	raw, err := json.Marshal(job)
	require.NoError(t, err)
	return string(raw)
}

func TestHandle_SendsJob(t *testing.T) {
	sender := &fakeSender{}
	w := newTestWorker(sender)

	retry, err := w.handle(context.Background(), encode(t, model.MailJob{To: "a@b.c", Subject: "Hi"}))

	assert.NoError(t, err)
	assert.Nil(t, retry)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.c", sender.sent[0].To)
}

func TestHandle_FailureRequeuesWithAttempt(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	w := newTestWorker(sender)

	retry, err := w.handle(context.Background(), encode(t, model.MailJob{To: "a@b.c", Attempts: 1}))

	assert.Error(t, err)
	require.NotNil(t, retry)
	assert.Equal(t, 2, retry.Attempts)
}

func TestHandle_GivesUpAfterMaxAttempts(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	w := newTestWorker(sender)

	retry, err := w.handle(context.Background(), encode(t, model.MailJob{To: "a@b.c", Attempts: maxMailAttempts - 1}))

	assert.Error(t, err)
	assert.Nil(t, retry)
}

func TestHandle_DropsMalformedJob(t *testing.T) {
	w := newTestWorker(&fakeSender{})

	retry, err := w.handle(context.Background(), "{not json")

	assert.Error(t, err)
	assert.Nil(t, retry)
}

func TestRetryDelay(t *testing.T) {
	tests := []struct {
		attempts int
		want     time.Duration
	}{
		{0, 2 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{10, 30 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, retryDelay(tt.attempts), "attempts=%d", tt.attempts)
	}
}

func TestSleepCtx_ReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	sleepCtx(ctx, time.Minute)
	assert.Less(t, time.Since(start), time.Second)
}
