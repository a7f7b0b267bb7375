package schema

// UnitType describes how a UnitValue is interpreted by the platform layer.
type UnitType string

const (
	UnitReal    UnitType = "REAL"
	UnitPercent UnitType = "PERCENT"
	UnitAuto    UnitType = "AUTO"
)

// UnitValue is a dimension expressed in platform independent units.
type UnitValue struct {
	Value float64  `json:"value"`
	Type  UnitType `json:"type"`
}

// Real returns a UnitValue in real (density independent) units.
func Real(value float64) *UnitValue {
	return &UnitValue{Value: value, Type: UnitReal}
}

// Percent returns a UnitValue relative to the parent.
func Percent(value float64) *UnitValue {
	return &UnitValue{Value: value, Type: UnitPercent}
}

// Size holds the optional width and height constraints of a component.
type Size struct {
	Width     *UnitValue `json:"width,omitempty"`
	Height    *UnitValue `json:"height,omitempty"`
	MaxWidth  *UnitValue `json:"maxWidth,omitempty"`
	MaxHeight *UnitValue `json:"maxHeight,omitempty"`
	MinWidth  *UnitValue `json:"minWidth,omitempty"`
	MinHeight *UnitValue `json:"minHeight,omitempty"`
}

// EdgeValue describes margins or paddings. More specific edges win over the
// Horizontal/Vertical shorthands, which win over All.
type EdgeValue struct {
	All        *UnitValue `json:"all,omitempty"`
	Top        *UnitValue `json:"top,omitempty"`
	Left       *UnitValue `json:"left,omitempty"`
	Right      *UnitValue `json:"right,omitempty"`
	Bottom     *UnitValue `json:"bottom,omitempty"`
	Horizontal *UnitValue `json:"horizontal,omitempty"`
	Vertical   *UnitValue `json:"vertical,omitempty"`
}

// Flex captures the subset of flexbox the layout engines agree on.
type Flex struct {
	FlexDirection  string   `json:"flexDirection,omitempty"`
	JustifyContent string   `json:"justifyContent,omitempty"`
	AlignItems     string   `json:"alignItems,omitempty"`
	AlignSelf      string   `json:"alignSelf,omitempty"`
	Grow           *float64 `json:"grow,omitempty"`
	Shrink         *float64 `json:"shrink,omitempty"`
}

// CornerRadius rounds the component bounds.
type CornerRadius struct {
	Radius float64 `json:"radius"`
}

// Style groups the visual and layout attributes shared by every component.
type Style struct {
	Size            *Size         `json:"size,omitempty"`
	Margin          *EdgeValue    `json:"margin,omitempty"`
	Padding         *EdgeValue    `json:"padding,omitempty"`
	Flex            *Flex         `json:"flex,omitempty"`
	BackgroundColor string        `json:"backgroundColor,omitempty"`
	CornerRadius    *CornerRadius `json:"cornerRadius,omitempty"`
	Display         string        `json:"display,omitempty"`
}

// Accessibility carries the hints exposed to assistive technologies and UI
// automation.
type Accessibility struct {
	Accessible         bool   `json:"accessible"`
	AccessibilityLabel string `json:"accessibilityLabel,omitempty"`
	IsHeader           bool   `json:"isHeader,omitempty"`
}
