// Package terminal is a reference platform that prints component trees and
// lets a user press buttons and answer modals through interactive prompts.
package terminal

import (
	"sync"

	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/view"
)

// Widget is a printable view. It is mutated on the UI goroutine only.
type Widget struct {
	Kind          string
	ComponentType string
	ID            string

	Image    string
	Scale    view.ScaleType
	Text     string
	Color    string
	Disabled bool
	Label    string
	Hidden   bool
	Children []*Widget

	onPress func()
}

func (w *Widget) SetViewID(id string)                         { w.ID = id }
func (w *Widget) SetScaleType(scale view.ScaleType)           { w.Scale = scale }
func (w *Widget) SetAdjustViewBounds(bool)                    {}
func (w *Widget) SetImageResource(id designsystem.ResourceID) { w.Image = string(id) }
func (w *Widget) SetText(text string)                         { w.Text = text }
func (w *Widget) SetTextColor(color string)                   { w.Color = color }
func (w *Widget) SetTextAlignment(string)                     {}
func (w *Widget) SetStyleID(string)                           {}
func (w *Widget) SetEnabled(enabled bool)                     { w.Disabled = !enabled }
func (w *Widget) SetOnPress(fn func())                        { w.onPress = fn }

func (w *Widget) SetImageDrawable(drawable *view.Drawable) {
	if drawable == nil {
		w.Image = ""
		return
	}
	w.Image = drawable.URL
}

func (w *Widget) AddChild(child view.View) {
	if c, ok := child.(*Widget); ok {
		w.Children = append(w.Children, c)
	}
}

func (w *Widget) SetChild(child view.View) {
	if c, ok := child.(*Widget); ok {
		w.Children = []*Widget{c}
	}
}

// Pressable reports whether the widget reacts to presses.
func (w *Widget) Pressable() bool {
	return w.onPress != nil && !w.Disabled && !w.Hidden
}

// Press runs the press handler of an enabled widget.
func (w *Widget) Press() bool {
	if !w.Pressable() {
		return false
	}
	w.onPress()
	return true
}

// Factory produces Widgets.
type Factory struct {
	mu   sync.Mutex
	made []*Widget
}

var _ view.Factory = (*Factory)(nil)

// NewFactory returns an empty factory.
func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) make(kind string) *Widget {
	w := &Widget{Kind: kind}
	f.mu.Lock()
	f.made = append(f.made, w)
	f.mu.Unlock()
	return w
}

func (f *Factory) MakeImageView() view.ImageView     { return f.make("image") }
func (f *Factory) MakeTextView() view.TextView       { return f.make("text") }
func (f *Factory) MakeButton() view.ButtonView       { return f.make("button") }
func (f *Factory) MakeContainer() view.ContainerView { return f.make("container") }
func (f *Factory) MakeTouchable() view.TouchableView { return f.make("touchable") }

func (f *Factory) MakeEmpty(componentType string) view.View {
	w := f.make("empty")
	w.ComponentType = componentType
	return w
}

func (f *Factory) ApplyStyle(v view.View, style *schema.Style, accessibility *schema.Accessibility) {
	w, ok := v.(*Widget)
	if !ok {
		return
	}
	if style != nil && style.Display == "NONE" {
		w.Hidden = true
	}
	if accessibility != nil {
		w.Label = accessibility.AccessibilityLabel
	}
}
