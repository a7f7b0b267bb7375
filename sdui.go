// Package sdui is the top-level entry point for rendering server-driven UI
// screens. It wraps pkg/orchestrator for callers that only need a rendered
// document.
package sdui

import (
	"context"
	"fmt"
	"io/fs"

	internalLoader "github.com/goliatone/go-sdui/internal/loader"
	"github.com/goliatone/go-sdui/pkg/orchestrator"
	"github.com/goliatone/go-sdui/pkg/platforms/html"
	"github.com/goliatone/go-sdui/pkg/schema"
	theme "github.com/goliatone/go-theme"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Result aliases orchestrator.Result.
type Result = orchestrator.Result

// OutputOptions aliases orchestrator.OutputOptions.
type OutputOptions = orchestrator.OutputOptions

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...schema.LoaderOption) schema.Loader {
	return internalLoader.New(schema.NewLoaderOptions(options...))
}

// RenderHTML loads the screen at source and renders it as a full HTML
// document. OnInit actions have run by the time it returns.
func RenderHTML(ctx context.Context, source schema.Source, title string, options ...orchestrator.Option) ([]byte, error) {
	return render(ctx, orchestrator.Request{Source: source}, title, options...)
}

// RenderHTMLFromDocument renders a pre-loaded document, bypassing the loader.
func RenderHTMLFromDocument(ctx context.Context, doc schema.Document, title string, options ...orchestrator.Option) ([]byte, error) {
	return render(ctx, orchestrator.Request{Document: &doc}, title, options...)
}

func render(ctx context.Context, req orchestrator.Request, title string, options ...orchestrator.Option) ([]byte, error) {
	req.Platform = "html"
	result, err := orchestrator.New(options...).Render(ctx, req)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	out, err := result.Output(orchestrator.OutputOptions{Title: title})
	if err != nil {
		return nil, fmt.Errorf("sdui: html output: %w", err)
	}
	return out, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// design tokens are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}

// EmbeddedTemplates exposes the built-in HTML platform templates so callers
// can reuse or extend them without importing the platform package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
