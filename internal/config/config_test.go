package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseList(t *testing.T) {
	assert.Nil(t, parseList(""))
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://soup.example.com"},
		parseList(" http://localhost:3000 , ,https://soup.example.com"),
	)
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("SOUP_TEST_INT", "42")
	assert.Equal(t, 42, getEnvInt("SOUP_TEST_INT", 1))

	t.Setenv("SOUP_TEST_INT", "forty")
	assert.Equal(t, 1, getEnvInt("SOUP_TEST_INT", 1))

	assert.Equal(t, 7, getEnvInt("SOUP_TEST_UNSET", 7))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("SOUP_TEST_DUR", "15m")
	assert.Equal(t, 15*time.Minute, getEnvDuration("SOUP_TEST_DUR", time.Hour))

	t.Setenv("SOUP_TEST_DUR", "-5m")
	assert.Equal(t, time.Hour, getEnvDuration("SOUP_TEST_DUR", time.Hour))

	t.Setenv("SOUP_TEST_DUR", "soon")
	assert.Equal(t, time.Hour, getEnvDuration("SOUP_TEST_DUR", time.Hour))
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("INVOICE_PREFIX", "INV")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "2")
	t.Setenv("PUBLIC_BASE_URL", "https://api.soup.example.com/")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.0/8")

	cfg := Load()
	assert.Equal(t, "INV", cfg.InvoicePrefix)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, "https://api.soup.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.0/8"}, cfg.TrustedProxies)
}

func TestLoad_TrustsNoProxyByDefault(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "")
	assert.Nil(t, Load().TrustedProxies)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "auth:refresh:5", CacheKey.RefreshTokenKey(5))
	assert.Equal(t, "cart:5", CacheKey.CartKey(5))
	assert.Equal(t, "mail_queue", WorkerKey.MailQueue)
}
