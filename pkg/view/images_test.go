package view_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-sdui/pkg/view"
)

type imageResult struct {
	drawable *view.Drawable
	err      error
}

func loadImage(t *testing.T, loader view.ImageLoader, url string) imageResult {
	t.Helper()

	results := make(chan imageResult, 1)
	loader.Load(context.Background(), url, func(d *view.Drawable, err error) {
		results <- imageResult{drawable: d, err: err}
	})
	select {
	case res := <-results:
		return res
	case <-time.After(5 * time.Second):
		t.Fatalf("image load for %s did not complete", url)
		return imageResult{}
	}
}

func TestHTTPImageLoaderEnforcesMaxBytes(t *testing.T) {
	image := []byte("0123456789")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		if r.URL.Path == "/streamed.png" {
			// Flushing first drops Content-Length so only the body read can tell.
			w.(http.Flusher).Flush()
		}
		_, _ = w.Write(image)
	}))
	defer server.Close()

	cases := []struct {
		name     string
		path     string
		maxBytes int64
		tooLarge bool
	}{
		{name: "exact size", path: "/sized.png", maxBytes: int64(len(image))},
		{name: "declared length over limit", path: "/sized.png", maxBytes: 4, tooLarge: true},
		{name: "streamed at limit", path: "/streamed.png", maxBytes: int64(len(image))},
		{name: "streamed over limit", path: "/streamed.png", maxBytes: int64(len(image)) - 1, tooLarge: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			loader := &view.HTTPImageLoader{Client: server.Client(), MaxBytes: tc.maxBytes}
			res := loadImage(t, loader, server.URL+tc.path)
			if tc.tooLarge {
				if !errors.Is(res.err, view.ErrImageTooLarge) {
					t.Fatalf("expected ErrImageTooLarge, got %v", res.err)
				}
				if res.drawable != nil {
					t.Fatalf("oversized image must not yield a drawable")
				}
				return
			}
			if res.err != nil {
				t.Fatalf("load: %v", res.err)
			}
			if string(res.drawable.Data) != string(image) {
				t.Fatalf("unexpected data %q", res.drawable.Data)
			}
			if res.drawable.ContentType != "image/png" {
				t.Fatalf("unexpected content type %q", res.drawable.ContentType)
			}
		})
	}
}
