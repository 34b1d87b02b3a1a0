// Package bgremoval calls an external background-removal service.
package bgremoval

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"artque-pipeline/internal/imgio"
)

// ErrService reports a failed background-removal call.
var ErrService = errors.New("background removal failed")

// Client posts PNG-encoded images to a removal endpoint and decodes the
// stripped PNG it returns. One call per image, no retries.
type Client struct {
	endpoint string
	http     *http.Client
}

// New returns a Client for the given endpoint URL.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

// Remove sends img to the service and returns the background-stripped
// image. Transport errors and non-2xx statuses fail the call; the caller
// decides whether to retry, the client never does.
func (c *Client) Remove(ctx context.Context, img *image.NRGBA) (*image.NRGBA, error) {
	var buf bytes.Buffer
	if err := imgio.EncodePNG(&buf, img); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("bgremoval: build request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("Accept", "image/png")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bgremoval: %w: %w", ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("bgremoval: %w: status %d: %s",
			ErrService, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	out, err := imgio.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("bgremoval: %w: bad response image: %v", ErrService, err)
	}
	return out, nil
}
