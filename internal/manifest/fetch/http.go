package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes caps the size of remote manifests.
const MaxBodyBytes = 4 << 20

// ErrHTTPDisabled is returned for URL sources when no client is configured.
var ErrHTTPDisabled = errors.New("manifest fetch: http support disabled")

func readHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, error) {
	if url == "" {
		return nil, errors.New("manifest fetch: url is required")
	}

	reqCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("manifest fetch: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxBodyBytes {
		return nil, fmt.Errorf("manifest fetch: body exceeds %d bytes", MaxBodyBytes)
	}
	return data, nil
}
