package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-sdui/pkg/metrics"
)

// ImageLoader fetches remote images. done may be called from any goroutine,
// at most once; builders marshal the result back to the UI goroutine.
type ImageLoader interface {
	Load(ctx context.Context, url string, done func(*Drawable, error))
}

// ImageLoaderFunc adapts a function to ImageLoader.
type ImageLoaderFunc func(ctx context.Context, url string, done func(*Drawable, error))

func (f ImageLoaderFunc) Load(ctx context.Context, url string, done func(*Drawable, error)) {
	f(ctx, url, done)
}

// URLImageLoader resolves immediately to a drawable referencing the URL. It
// suits platforms that fetch images themselves, such as browsers.
type URLImageLoader struct{}

func (URLImageLoader) Load(_ context.Context, url string, done func(*Drawable, error)) {
	done(&Drawable{URL: url}, nil)
}

// DefaultMaxImageBytes caps HTTPImageLoader downloads.
const DefaultMaxImageBytes = 10 << 20

// ErrImageTooLarge is reported when a download exceeds the loader's MaxBytes.
var ErrImageTooLarge = errors.New("view: image too large")

// HTTPImageLoader downloads images on a background goroutine.
type HTTPImageLoader struct {
	Client   *http.Client
	Timeout  time.Duration
	MaxBytes int64
}

// NewHTTPImageLoader returns a loader using client, or a default client with
// timeout when client is nil.
func NewHTTPImageLoader(client *http.Client, timeout time.Duration) *HTTPImageLoader {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPImageLoader{Client: client, Timeout: timeout, MaxBytes: DefaultMaxImageBytes}
}

func (l *HTTPImageLoader) Load(ctx context.Context, url string, done func(*Drawable, error)) {
	go func() {
		drawable, err := l.fetch(ctx, url)
		metrics.RecordImageLoad(err)
		done(drawable, err)
	}()
}

func (l *HTTPImageLoader) fetch(ctx context.Context, url string) (*Drawable, error) {
	if url == "" {
		return nil, errors.New("view: image url is empty")
	}
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("view: build image request: %w", err)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("view: fetch image %q: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("view: fetch image %q: unexpected status %d", url, resp.StatusCode)
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxImageBytes
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("view: fetch image %q: %w (limit %d bytes)", url, ErrImageTooLarge, limit)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("view: read image %q: %w", url, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("view: fetch image %q: %w (limit %d bytes)", url, ErrImageTooLarge, limit)
	}
	return &Drawable{URL: url, ContentType: resp.Header.Get("Content-Type"), Data: data}, nil
}
