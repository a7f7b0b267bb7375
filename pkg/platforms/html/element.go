package html

import (
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/view"
)

// Element kinds, one template each.
const (
	KindImage     = "image"
	KindText      = "text"
	KindButton    = "button"
	KindContainer = "container"
	KindTouchable = "touchable"
	KindEmpty     = "empty"
)

// Element is a node of the HTML tree. It implements every view interface and
// is mutated on the UI goroutine only.
type Element struct {
	Kind          string
	ComponentType string
	ID            string

	Src          string
	Resource     string
	Scale        string
	AdjustBounds bool

	Text      string
	Color     string
	Alignment string
	StyleID   string
	Disabled  bool

	Style         *schema.Style
	Accessibility *schema.Accessibility
	Children      []*Element

	onPress func()
}

func (e *Element) SetViewID(id string) { e.ID = id }

func (e *Element) SetScaleType(scale view.ScaleType) { e.Scale = scale.String() }

func (e *Element) SetAdjustViewBounds(adjust bool) { e.AdjustBounds = adjust }

func (e *Element) SetImageResource(id designsystem.ResourceID) {
	e.Resource = string(id)
	e.Src = string(id)
}

func (e *Element) SetImageDrawable(drawable *view.Drawable) {
	if drawable == nil {
		e.Src = ""
		e.Resource = ""
		return
	}
	e.Src = drawable.URL
}

func (e *Element) SetText(text string)           { e.Text = text }
func (e *Element) SetTextColor(color string)     { e.Color = color }
func (e *Element) SetTextAlignment(align string) { e.Alignment = align }
func (e *Element) SetStyleID(styleID string)     { e.StyleID = styleID }
func (e *Element) SetEnabled(enabled bool)       { e.Disabled = !enabled }
func (e *Element) SetOnPress(fn func())          { e.onPress = fn }

func (e *Element) AddChild(child view.View) {
	if el, ok := child.(*Element); ok {
		e.Children = append(e.Children, el)
	}
}

func (e *Element) SetChild(child view.View) {
	if el, ok := child.(*Element); ok {
		e.Children = []*Element{el}
	}
}

// Pressable reports whether the element has a press handler and is enabled.
func (e *Element) Pressable() bool {
	return e.onPress != nil && !e.Disabled
}

// Press runs the press handler. Disabled elements ignore presses.
func (e *Element) Press() bool {
	if !e.Pressable() {
		return false
	}
	e.onPress()
	return true
}

// Walk visits e and its descendants in pre-order until fn returns false.
func (e *Element) Walk(fn func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, child := range e.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}
