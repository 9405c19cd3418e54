package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Query values are URL-encoded and appended to the request URL.
type Client interface {
	Get(ctx context.Context, url string, headers, query map[string]string) (Response, error)
}
