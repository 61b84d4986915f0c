package arnak

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// The collection endpoint is asynchronous: the first request usually gets
// a 202 (or a 200 with a <message> body) meaning the server accepted the
// request and is preparing the data. The client has to poll until a real
// payload comes back.

// getWithPoll re-issues the request with exponential backoff until the
// server returns a real payload, the retry budget is exhausted, or the
// context is cancelled. A Retry-After header, when present, overrides the
// computed delay if it is longer.
func (c *Client) getWithPoll(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryDelay
	bo.RandomizationFactor = 0.2
	bo.MaxInterval = 30 * time.Second
	bo.MaxElapsedTime = 0
	bo.Reset()

	attempts := 0
	for {
		resp, err := c.get(ctx, endpoint, query)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode() == http.StatusOK && !isProcessingBody(resp.Body()) {
			return resp.Body(), nil
		}

		attempts++
		if attempts > c.maxRetries {
			return nil, newTimeoutError(attempts)
		}

		delay := bo.NextBackOff()
		if hint := retryAfterHint(resp.Header().Get("Retry-After")); hint > delay {
			delay = hint
		}
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}
}

// isProcessingBody reports whether a 200 body is actually the "request
// accepted, please retry" marker the server sometimes sends instead of a
// proper 202.
func isProcessingBody(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if bytes.HasPrefix(trimmed, []byte("<?xml")) {
		if end := bytes.Index(trimmed, []byte("?>")); end >= 0 {
			trimmed = bytes.TrimSpace(trimmed[end+2:])
		}
	}
	return bytes.HasPrefix(trimmed, []byte("<message"))
}

// retryAfterHint parses a Retry-After header given in seconds. Zero means
// no usable hint.
func retryAfterHint(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// sleep waits for the given delay or until the context is cancelled.
func sleep(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return newCancelledError(ctx.Err())
	case <-timer.C:
		return nil
	}
}
