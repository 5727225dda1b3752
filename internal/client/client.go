// Package client holds the HTTP clients for the external collaborators:
// identity, course-enrollment, and notification. Each client gets its own
// injected http.Client so tests can substitute fakes, and every call is
// bounded by the configured upstream timeout.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNotFound means the collaborator answered 404 for the resource.
	ErrNotFound = errors.New("upstream resource not found")
	// ErrUnavailable means the collaborator could not be reached or
	// answered with a non-success status. Callers decide whether that is
	// recoverable; for enrichment and notification it always is.
	ErrUnavailable = errors.New("upstream unavailable")
)

// doJSON issues a request with an optional JSON body and decodes a JSON
// response into out (when out is non-nil). 404 maps to ErrNotFound, any
// transport error or non-2xx status to ErrUnavailable.
func doJSON(ctx context.Context, hc *http.Client, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
