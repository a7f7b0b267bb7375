package html

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/view"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from server supplied strings and escapes the
// rest.
func sanitizeText(raw string) string {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy.Sanitize(raw)
}

// DocumentOptions controls the document shell.
type DocumentOptions struct {
	Title string
	Lang  string
}

// Renderer turns Element trees into HTML.
type Renderer struct {
	engine *Engine
}

// NewRenderer returns a renderer using engine, or the embedded templates
// when engine is nil.
func NewRenderer(engine *Engine) (*Renderer, error) {
	if engine == nil {
		var err error
		engine, err = NewEngine()
		if err != nil {
			return nil, err
		}
	}
	return &Renderer{engine: engine}, nil
}

// Fragment renders root and its descendants without the document shell.
func (r *Renderer) Fragment(root view.View) (string, error) {
	el, ok := root.(*Element)
	if !ok {
		return "", fmt.Errorf("html: expected *html.Element, got %T", root)
	}
	return r.element(el)
}

// Document renders a full HTML page for root, including modal when set.
func (r *Renderer) Document(root view.View, modal *action.Modal, opts DocumentOptions) (string, error) {
	body, err := r.Fragment(root)
	if err != nil {
		return "", err
	}
	data := map[string]any{
		"title": opts.Title,
		"lang":  opts.Lang,
		"body":  body,
	}
	if modal != nil {
		rendered, err := r.Modal(*modal)
		if err != nil {
			return "", err
		}
		data["modal"] = rendered
	}
	return r.engine.RenderTemplate("document", data)
}

// Modal renders a modal dialog.
func (r *Renderer) Modal(modal action.Modal) (string, error) {
	buttons := make([]map[string]any, 0, len(modal.Buttons))
	for _, button := range modal.Buttons {
		buttons = append(buttons, map[string]any{
			"label": sanitizeText(button.Label),
			"role":  string(button.Role),
		})
	}
	return r.engine.RenderTemplate("modal", map[string]any{
		"title":   sanitizeText(modal.Title),
		"message": sanitizeText(modal.Message),
		"buttons": buttons,
	})
}

func (r *Renderer) element(el *Element) (string, error) {
	if el == nil {
		return "", errors.New("html: nil element")
	}
	var children strings.Builder
	for _, child := range el.Children {
		rendered, err := r.element(child)
		if err != nil {
			return "", err
		}
		children.WriteString(rendered)
		children.WriteString("\n")
	}

	data := map[string]any{
		"id":            el.ID,
		"component":     el.ComponentType,
		"style_id":      el.StyleID,
		"css":           elementCSS(el),
		"text":          sanitizeText(el.Text),
		"src":           el.Src,
		"resource":      el.Resource,
		"scale":         el.Scale,
		"adjust_bounds": el.AdjustBounds,
		"disabled":      el.Disabled,
		"pressable":     el.Pressable(),
		"children":      strings.TrimSuffix(children.String(), "\n"),
	}
	if a := el.Accessibility; a != nil {
		data["label"] = a.AccessibilityLabel
		data["header"] = a.IsHeader
	}

	out, err := r.engine.RenderTemplate(el.Kind, data)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func elementCSS(el *Element) string {
	css := inlineStyle(el.Style)
	var extra []string
	if el.Color != "" {
		extra = append(extra, "color:"+el.Color)
	}
	if el.Alignment != "" {
		extra = append(extra, "text-align:"+cssKeyword(el.Alignment))
	}
	if len(extra) == 0 {
		return css
	}
	if css != "" {
		extra = append([]string{css}, extra...)
	}
	return strings.Join(extra, ";")
}
