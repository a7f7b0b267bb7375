package schema

import (
	"encoding/json"
	"fmt"
)

// Built-in component types. Values are the normalised tags.
const (
	TypeImage     = "sdui:image"
	TypeText      = "sdui:text"
	TypeButton    = "sdui:button"
	TypeContainer = "sdui:container"
	TypeTouchable = "sdui:touchable"
)

// Component is a node of the UI tree.
type Component interface {
	ComponentType() string
}

// Widget holds the properties every built-in component shares. Embedding it
// promotes Common, which renderers use to reach ids and styles without a type
// switch.
type Widget struct {
	ID            string         `json:"id,omitempty"`
	Style         *Style         `json:"style,omitempty"`
	Accessibility *Accessibility `json:"accessibility,omitempty"`
}

// Common returns the shared widget properties.
func (w Widget) Common() Widget {
	return w
}

// Common is implemented by components embedding Widget.
type Common interface {
	Common() Widget
}

// ImageContentMode controls how image content fits within its bounds.
type ImageContentMode string

const (
	ContentModeFitXY      ImageContentMode = "FIT_XY"
	ContentModeFitCenter  ImageContentMode = "FIT_CENTER"
	ContentModeCenterCrop ImageContentMode = "CENTER_CROP"
	ContentModeCenter     ImageContentMode = "CENTER"
)

// Valid reports whether the mode is one of the known values.
func (m ImageContentMode) Valid() bool {
	switch m {
	case ContentModeFitXY, ContentModeFitCenter, ContentModeCenterCrop, ContentModeCenter:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects unknown content modes.
func (m *ImageContentMode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mode := ImageContentMode(raw)
	if !mode.Valid() {
		return fmt.Errorf("unknown content mode %q", raw)
	}
	*m = mode
	return nil
}

// Mode returns a pointer to the mode, handy for optional fields.
func (m ImageContentMode) Mode() *ImageContentMode {
	return &m
}

// ImagePath is either a LocalImage or a RemoteImage.
type ImagePath interface {
	imagePath()
}

// LocalImage references an image shipped with the client, resolved through
// the design system.
type LocalImage struct {
	Name string `json:"name"`
}

func (*LocalImage) imagePath() {}

// MarshalJSON adds the path discriminator.
func (l *LocalImage) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{ImagePathTag: "local", "name": l.Name})
}

// RemoteImage references an image fetched over the network. Placeholder is
// shown while the image loads and when it fails.
type RemoteImage struct {
	URL         Bind[string] `json:"url"`
	Placeholder *LocalImage  `json:"placeholder,omitempty"`
}

func (*RemoteImage) imagePath() {}

// MarshalJSON adds the path discriminator.
func (r *RemoteImage) MarshalJSON() ([]byte, error) {
	out := map[string]any{ImagePathTag: "remote", "url": r.URL}
	if r.Placeholder != nil {
		out["placeholder"] = r.Placeholder
	}
	return json.Marshal(out)
}

// Local is a shorthand constructor for a LocalImage.
func Local(name string) *LocalImage {
	return &LocalImage{Name: name}
}

// Remote is a shorthand constructor for a RemoteImage.
func Remote(url string, placeholder *LocalImage) *RemoteImage {
	return &RemoteImage{URL: Literal(url), Placeholder: placeholder}
}

// Image displays a local or remote image.
type Image struct {
	Widget
	Path ImagePath         `json:"path"`
	Mode *ImageContentMode `json:"mode,omitempty"`
}

func (*Image) ComponentType() string { return TypeImage }

// Text displays a, possibly bound, string.
type Text struct {
	Widget
	Text          Bind[string]  `json:"text"`
	StyleID       string        `json:"styleId,omitempty"`
	TextColor     *Bind[string] `json:"textColor,omitempty"`
	TextAlignment string        `json:"alignment,omitempty"`
}

func (*Text) ComponentType() string { return TypeText }

// Button raises onPress when tapped.
type Button struct {
	Widget
	Text    Bind[string] `json:"text"`
	StyleID string       `json:"styleId,omitempty"`
	Enabled *Bind[bool]  `json:"enabled,omitempty"`
	OnPress []Action     `json:"onPress,omitempty"`
}

func (*Button) ComponentType() string { return TypeButton }

// ContextData declares a context visible to a container and its descendants.
type ContextData struct {
	ID    string `json:"id"`
	Value any    `json:"value"`
}

// Container groups children and may declare a context.
type Container struct {
	Widget
	Children []Component  `json:"children,omitempty"`
	Context  *ContextData `json:"context,omitempty"`
	OnInit   []Action     `json:"onInit,omitempty"`
}

func (*Container) ComponentType() string { return TypeContainer }

// DeclaredContext returns the context the container opens, if any.
func (c *Container) DeclaredContext() *ContextData { return c.Context }

// ContextDeclarer is implemented by components that open a context scope.
type ContextDeclarer interface {
	DeclaredContext() *ContextData
}

// Touchable makes its child respond to taps.
type Touchable struct {
	Widget
	Child   Component `json:"child"`
	OnPress []Action  `json:"onPress,omitempty"`
}

func (*Touchable) ComponentType() string { return TypeTouchable }

// UnknownComponent stands in for a component whose tag has no registered
// factory. Raw keeps the original payload so it can be forwarded untouched.
type UnknownComponent struct {
	Type string
	Raw  json.RawMessage
}

func (u *UnknownComponent) ComponentType() string { return u.Type }

// MarshalJSON returns the original payload.
func (u *UnknownComponent) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return json.Marshal(map[string]string{ComponentTag: u.Type})
	}
	return u.Raw, nil
}
