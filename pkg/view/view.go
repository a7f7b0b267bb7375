// Package view turns component trees into platform views. Platforms supply a
// Factory producing their native views; builders registered per component
// type configure those views from the component, the design system and the
// context store.
package view

import (
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/schema"
)

// ScaleType is the platform-neutral image scaling mode.
type ScaleType int

const (
	ScaleFitCenter ScaleType = iota
	ScaleFitXY
	ScaleCenterCrop
	ScaleCenter
)

func (s ScaleType) String() string {
	switch s {
	case ScaleFitXY:
		return "FIT_XY"
	case ScaleCenterCrop:
		return "CENTER_CROP"
	case ScaleCenter:
		return "CENTER"
	default:
		return "FIT_CENTER"
	}
}

// ScaleTypeFor maps a content mode onto a scale type. Unknown modes map to
// FIT_CENTER.
func ScaleTypeFor(mode schema.ImageContentMode) ScaleType {
	switch mode {
	case schema.ContentModeFitXY:
		return ScaleFitXY
	case schema.ContentModeCenterCrop:
		return ScaleCenterCrop
	case schema.ContentModeCenter:
		return ScaleCenter
	default:
		return ScaleFitCenter
	}
}

// Drawable is loaded image content.
type Drawable struct {
	URL         string
	ContentType string
	Data        []byte
}

// View is a platform view handle.
type View interface {
	SetViewID(id string)
}

// ImageView displays an image.
type ImageView interface {
	View
	SetScaleType(scale ScaleType)
	SetAdjustViewBounds(adjust bool)
	SetImageResource(id designsystem.ResourceID)
	// SetImageDrawable replaces the content; nil clears it.
	SetImageDrawable(drawable *Drawable)
}

// TextView displays text.
type TextView interface {
	View
	SetText(text string)
	SetTextColor(color string)
	SetTextAlignment(alignment string)
	SetStyleID(styleID string)
}

// ButtonView is a pressable labelled view.
type ButtonView interface {
	View
	SetText(text string)
	SetEnabled(enabled bool)
	SetStyleID(styleID string)
	SetOnPress(fn func())
}

// ContainerView lays out children.
type ContainerView interface {
	View
	AddChild(child View)
}

// TouchableView makes its child pressable.
type TouchableView interface {
	View
	SetChild(child View)
	SetOnPress(fn func())
}

// Factory creates platform views. Builders call it on the UI goroutine.
type Factory interface {
	MakeImageView() ImageView
	MakeTextView() TextView
	MakeButton() ButtonView
	MakeContainer() ContainerView
	MakeTouchable() TouchableView
	// MakeEmpty returns a placeholder for components the platform cannot
	// build, e.g. unknown types.
	MakeEmpty(componentType string) View
	ApplyStyle(v View, style *schema.Style, accessibility *schema.Accessibility)
}
