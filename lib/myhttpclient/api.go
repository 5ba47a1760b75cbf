package myhttpclient

import (
	"context"
	"time"
)

// HTTPSender sends a JSON request and returns the http status and the raw response body.
// An empty bearerToken means the request is sent anonymously.
type HTTPSender interface {
	Send(c context.Context, method string, url string, bearerToken string, body []byte) (int, []byte, error)
}

func New(timeout time.Duration) HTTPSender {
	return newJSONHTTPClient(timeout)
}
