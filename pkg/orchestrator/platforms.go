package orchestrator

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-sdui/pkg/platforms/html"
	"github.com/goliatone/go-sdui/pkg/platforms/terminal"
	"github.com/goliatone/go-sdui/pkg/uithread"
	"github.com/goliatone/go-sdui/pkg/view"
)

// HTMLPlatform renders screens into HTML documents.
type HTMLPlatform struct {
	Renderer *html.Renderer
}

// NewHTMLPlatform returns the HTML platform using the embedded templates.
func NewHTMLPlatform() (*HTMLPlatform, error) {
	renderer, err := html.NewRenderer(nil)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: html renderer: %w", err)
	}
	return &HTMLPlatform{Renderer: renderer}, nil
}

func (p *HTMLPlatform) Name() string { return "html" }

func (p *HTMLPlatform) NewSurface() (*Surface, error) {
	factory := html.NewFactory()
	presenter := html.NewPresenter(nil)
	renderer := p.Renderer
	return &Surface{
		Factory:   factory,
		Presenter: presenter,
		Poster:    uithread.Inline{},
		// Browsers fetch remote images from the emitted src.
		Images: view.URLImageLoader{},
		Output: func(root view.View, opts OutputOptions) ([]byte, error) {
			modal, _ := presenter.Current()
			doc, err := renderer.Document(root, modal, html.DocumentOptions{Title: opts.Title})
			if err != nil {
				return nil, err
			}
			return []byte(doc), nil
		},
	}, nil
}

// TerminalPlatform prints screens and drives them through prompts. Views are
// mutated through Queue, which the session drains.
type TerminalPlatform struct{}

func (TerminalPlatform) Name() string { return "terminal" }

func (TerminalPlatform) NewSurface() (*Surface, error) {
	return &Surface{
		Factory:   terminal.NewFactory(),
		Presenter: &terminal.Presenter{},
		Poster:    uithread.New(),
		Output: func(root view.View, _ OutputOptions) ([]byte, error) {
			widget, ok := root.(*terminal.Widget)
			if !ok {
				return nil, fmt.Errorf("orchestrator: expected *terminal.Widget, got %T", root)
			}
			var buf bytes.Buffer
			if err := terminal.Print(&buf, widget); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	}, nil
}
