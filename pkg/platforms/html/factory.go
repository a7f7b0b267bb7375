// Package html is a reference platform rendering component trees into HTML
// documents.
package html

import (
	"sync"

	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/view"
)

// Factory produces Elements.
type Factory struct {
	mu       sync.Mutex
	elements []*Element
}

var _ view.Factory = (*Factory)(nil)

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) make(kind string) *Element {
	el := &Element{Kind: kind}
	f.mu.Lock()
	f.elements = append(f.elements, el)
	f.mu.Unlock()
	return el
}

func (f *Factory) MakeImageView() view.ImageView     { return f.make(KindImage) }
func (f *Factory) MakeTextView() view.TextView       { return f.make(KindText) }
func (f *Factory) MakeButton() view.ButtonView       { return f.make(KindButton) }
func (f *Factory) MakeContainer() view.ContainerView { return f.make(KindContainer) }
func (f *Factory) MakeTouchable() view.TouchableView { return f.make(KindTouchable) }

func (f *Factory) MakeEmpty(componentType string) view.View {
	el := f.make(KindEmpty)
	el.ComponentType = componentType
	return el
}

func (f *Factory) ApplyStyle(v view.View, style *schema.Style, accessibility *schema.Accessibility) {
	el, ok := v.(*Element)
	if !ok {
		return
	}
	el.Style = style
	el.Accessibility = accessibility
}

// Element returns the element rendered with id.
func (f *Factory) Element(id string) (*Element, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, el := range f.elements {
		if el.ID == id {
			return el, true
		}
	}
	return nil, false
}

// Press presses the element with id and reports whether a handler ran.
func (f *Factory) Press(id string) bool {
	el, ok := f.Element(id)
	if !ok {
		return false
	}
	return el.Press()
}
