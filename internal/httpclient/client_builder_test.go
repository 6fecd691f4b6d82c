package httpclient

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithInsecureSkipVerify(true).
		WithMaxResponseSize(1024).
		WithHeader("X-Client", "cli").
		WithHTTP2(false).
		Build()

	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, client.config.Timeout)
	assert.Equal(t, "test-agent", client.config.UserAgent)
	assert.True(t, client.config.InsecureSkipVerify)
	assert.Equal(t, int64(1024), client.config.MaxResponseSize)
	assert.Equal(t, "cli", client.config.CustomHeaders["X-Client"])
	assert.Equal(t, "application/json", client.config.CustomHeaders["Accept"])
	assert.False(t, client.config.EnableHTTP2)
}

func TestHTTPClientBuilder_DefaultValues(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	defaults := DefaultHTTPClientConfig()
	assert.Equal(t, defaults.Timeout, client.config.Timeout)
	assert.Equal(t, defaults.UserAgent, client.config.UserAgent)
	assert.Equal(t, defaults.MaxResponseSize, client.config.MaxResponseSize)
	assert.True(t, client.config.EnableHTTP2)
}

func TestHTTPClientBuilder_WithHeaderDoesNotShareDefaults(t *testing.T) {
	_, err := NewHTTPClientBuilder(zerolog.Nop()).WithHeader("X-One", "1").Build()
	require.NoError(t, err)

	_, exists := DefaultHTTPClientConfig().CustomHeaders["X-One"]
	assert.False(t, exists)
}
