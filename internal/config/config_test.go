package config

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Defaults(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("TELEX_WEBHOOK_URL", "https://ping.telex.im/v1/webhooks/abc")

	cfg, err := decode()
	require.NoError(t, err)

	assert.Equal(t, WeeklyInsightJobID, cfg.WeeklyInsight.JobID)
	assert.Equal(t, "0 9 * * 1", cfg.WeeklyInsight.CronSchedule)
	assert.Equal(t, time.Hour, cfg.WeeklyInsight.MisfireGrace)
	assert.True(t, cfg.WeeklyInsight.Enabled)
	assert.Equal(t, 3, cfg.Delivery.MaxAttempts)
	assert.Equal(t, 60*time.Second, cfg.Delivery.RetryDelay)
	assert.Equal(t, 10*time.Second, cfg.Delivery.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Paystack.Timeout)
	assert.Equal(t, "https://api.paystack.co", cfg.Paystack.URL)
	assert.Equal(t, "8000", cfg.Server.Port)

	// TICK_URL vazio usa o webhook principal
	assert.Equal(t, "https://ping.telex.im/v1/webhooks/abc", cfg.Telex.TickURL)

	assert.Equal(t, "weekly-growth-advisor.db", cfg.Database.DSN)
}

func TestDecode_PostgresDSN(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	SetDefaults()
	viper.Set("DATABASE_DRIVER", "postgres")
	viper.Set("DATABASE_USER", "advisor")
	viper.Set("DATABASE_PASSWORD", "secret")
	viper.Set("DATABASE_URL", "db:5432/advisor")

	cfg, err := decode()
	require.NoError(t, err)

	assert.Equal(t, "postgres://advisor:secret@db:5432/advisor", cfg.Database.DSN)
}

func TestRenderClient_ListSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/services/srv-123/secret-files", r.URL.Path)
		assert.Equal(t, "Bearer render-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[{"secretFile":{"name":"paystack_api_key","content":"sk_test_1"},"cursor":"a"}]`))
	}))
	defer server.Close()

	client := &RenderClient{APIKey: "render-key", BaseURL: server.URL, HTTPClient: server.Client()}

	secrets, err := client.ListSecrets("srv-123")
	require.NoError(t, err)
	assert.Equal(t, "sk_test_1", secrets[PaystackSecretName])
}

func TestRenderClient_ListSecrets_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`unauthorized`))
	}))
	defer server.Close()

	client := &RenderClient{APIKey: "bad", BaseURL: server.URL, HTTPClient: server.Client()}

	_, err := client.ListSecrets("srv-123")
	assert.ErrorContains(t, err, "unauthorized")
}
