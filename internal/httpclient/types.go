package httpclient

import (
	"io"
	"net/http"
)

// HTTPRequest represents an outgoing request
type HTTPRequest struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    io.Reader
}

// HTTPResponse represents a fully read response
type HTTPResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
