package html

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-sdui/pkg/schema"
)

// inlineStyle renders the layout subset of a style as a CSS declaration list.
func inlineStyle(style *schema.Style) string {
	if style == nil {
		return ""
	}
	var decls []string
	add := func(prop, value string) {
		if value != "" {
			decls = append(decls, prop+":"+value)
		}
	}

	if size := style.Size; size != nil {
		add("width", unit(size.Width))
		add("height", unit(size.Height))
		add("max-width", unit(size.MaxWidth))
		add("max-height", unit(size.MaxHeight))
		add("min-width", unit(size.MinWidth))
		add("min-height", unit(size.MinHeight))
	}
	edges("margin", style.Margin, add)
	edges("padding", style.Padding, add)
	if flex := style.Flex; flex != nil {
		add("flex-direction", cssKeyword(flex.FlexDirection))
		add("justify-content", cssKeyword(flex.JustifyContent))
		add("align-items", cssKeyword(flex.AlignItems))
		add("align-self", cssKeyword(flex.AlignSelf))
		if flex.Grow != nil {
			add("flex-grow", number(*flex.Grow))
		}
		if flex.Shrink != nil {
			add("flex-shrink", number(*flex.Shrink))
		}
	}
	add("background-color", style.BackgroundColor)
	if style.CornerRadius != nil {
		add("border-radius", number(style.CornerRadius.Radius)+"px")
	}
	add("display", cssKeyword(style.Display))
	return strings.Join(decls, ";")
}

// edges resolves edge shorthands: specific sides win over Horizontal and
// Vertical, which win over All.
func edges(prop string, value *schema.EdgeValue, add func(string, string)) {
	if value == nil {
		return
	}
	pick := func(values ...*schema.UnitValue) string {
		for _, v := range values {
			if v != nil {
				return unit(v)
			}
		}
		return ""
	}
	add(prop+"-top", pick(value.Top, value.Vertical, value.All))
	add(prop+"-right", pick(value.Right, value.Horizontal, value.All))
	add(prop+"-bottom", pick(value.Bottom, value.Vertical, value.All))
	add(prop+"-left", pick(value.Left, value.Horizontal, value.All))
}

func unit(value *schema.UnitValue) string {
	if value == nil {
		return ""
	}
	switch value.Type {
	case schema.UnitPercent:
		return number(value.Value) + "%"
	case schema.UnitAuto:
		return "auto"
	default:
		return number(value.Value) + "px"
	}
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// cssKeyword converts SCREAMING_CASE enum values into CSS keywords, e.g.
// SPACE_BETWEEN becomes space-between.
func cssKeyword(value string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "_", "-")
}
