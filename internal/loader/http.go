package loader

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/goliatone/go-sdui/pkg/schema"
)

const acceptScreens = "application/json, application/yaml;q=0.9, text/yaml;q=0.8"

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration, limit int64) ([]byte, schema.Format, error) {
	if client == nil {
		return nil, schema.FormatUnknown, errors.New("loader: http client is not configured")
	}
	if url == "" {
		return nil, schema.FormatUnknown, errors.New("loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, schema.FormatUnknown, err
	}
	req.Header.Set("Accept", acceptScreens)

	resp, err := client.Do(req)
	if err != nil {
		return nil, schema.FormatUnknown, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, schema.FormatUnknown, fmt.Errorf("loader: unexpected status %s", resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/html" {
		return nil, schema.FormatUnknown, fmt.Errorf("loader: %s: expected a screen document, got %s", url, mediaType)
	}
	if resp.ContentLength > limit {
		return nil, schema.FormatUnknown, fmt.Errorf("loader: %s: %w (limit %d bytes)", url, schema.ErrDocumentTooLarge, limit)
	}

	data, err := readLimited(resp.Body, limit, url)
	if err != nil {
		return nil, schema.FormatUnknown, err
	}
	return data, schema.FormatFromContentType(contentType), nil
}
