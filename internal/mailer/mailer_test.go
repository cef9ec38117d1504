package mailer

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/soupclass/soup-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_PicksSenderByAPIKey(t *testing.T) {
	log := zerolog.Nop()

	_, isLog := New(&config.Config{}, log).(*LogSender)
	assert.True(t, isLog)

	_, isSendGrid := New(&config.Config{SendGridAPIKey: "key", MailFrom: "a@b.c"}, log).(*SendGridSender)
	assert.True(t, isSendGrid)
}

func TestLogSender_Send(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(zerolog.New(&buf))

	require.NoError(t, s.Send(context.Background(), model.MailJob{To: "user1@email.com", Subject: "Hi", BodyText: "body"}))
	assert.Contains(t, buf.String(), "user1@email.com")
	assert.Contains(t, buf.String(), "Email (not sent)")
}

func TestSendGridSender_Build(t *testing.T) {
	s := NewSendGridSender("key", "Soup", "no-reply@soup.local")
	m := s.Build(model.MailJob{To: "user1@email.com", ToName: "User", Subject: "Sub", BodyText: "t", BodyHTML: "<p>h</p>"})

	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "Sub", m.Personalizations[0].Subject)
	assert.Equal(t, "user1@email.com", m.Personalizations[0].To[0].Address)
	assert.Equal(t, "no-reply@soup.local", m.From.Address)
	require.Len(t, m.Content, 2)
	assert.Equal(t, "text/plain", m.Content[0].Type)
}

func TestSendGridSender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := NewSendGridSender("key", "Soup", "x@y.z").Send(ctx, model.MailJob{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemplates(t *testing.T) {
	job, err := ConfirmEmail("user1@email.com", "User <One>", "http://localhost:8080/api/v1/auth/confirm-email?user_id=1&token=abc")
	require.NoError(t, err)
	assert.Equal(t, "user1@email.com", job.To)
	assert.Contains(t, job.BodyText, "token=abc")
	assert.Contains(t, job.BodyHTML, "User &lt;One&gt;")

	job, err = ResetPassword("user1@email.com", "User", "tok123")
	require.NoError(t, err)
	assert.Contains(t, job.BodyText, "tok123")

	job, err = Receipt("user1@email.com", "User", model.CheckoutResult{NoInvoice: "SOU00007", TotalCourse: 2, TotalPrice: decimal.RequireFromString("30000")})
	require.NoError(t, err)
	assert.Contains(t, job.BodyText, "SOU00007")
	assert.Contains(t, job.BodyText, "30000.00")
}
