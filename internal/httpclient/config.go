package httpclient

import "time"

// HTTPClientConfig holds transport settings for the client
type HTTPClientConfig struct {
	Timeout             time.Duration     // Whole-request timeout
	InsecureSkipVerify  bool              // Skip TLS verification
	UserAgent           string            // User-Agent header
	CustomHeaders       map[string]string // Headers added to every request
	MaxResponseSize     int64             // Larger bodies are rejected, 0 for no limit
	MaxIdleConns        int               // Maximum idle connections
	MaxIdleConnsPerHost int               // Maximum idle connections per host
	IdleConnTimeout     time.Duration     // Idle connection timeout
	TLSHandshakeTimeout time.Duration     // TLS handshake timeout
	DialTimeout         time.Duration     // Connection dial timeout
	KeepAlive           time.Duration     // Keep-alive duration
	EnableHTTP2         bool              // Enable HTTP/2 support
}

// DefaultHTTPClientConfig returns the default HTTP client configuration
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:             60 * time.Second,
		UserAgent:           "grammarwhiz/1.0",
		MaxResponseSize:     10 * 1024 * 1024,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DialTimeout:         10 * time.Second,
		KeepAlive:           30 * time.Second,
		EnableHTTP2:         true,
		CustomHeaders: map[string]string{
			"Accept": "application/json",
		},
	}
}
