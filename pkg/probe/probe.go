// Package probe is the client side of the health route, used as a container
// HEALTHCHECK command.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultURL     = "http://localhost:8000/health"
	DefaultTimeout = 3 * time.Second
)

// URLForPort is the health route of a server listening locally on port.
func URLForPort(port int) string {
	return "http://localhost:" + strconv.Itoa(port) + "/health"
}

// Check issues GET url and returns nil only for a 200 response.
func Check(ctx context.Context, url string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("probe %s: %s: %s", url, resp.Status, string(body))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
