package view

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/schema"
)

// buildImage configures an image view. Bounds adjustment is always on. The
// scale type is FIT_CENTER unless a mode is given. Local names and remote
// placeholders resolve through the design system only when one is
// configured; misses leave the view empty.
func buildImage(b *BuildContext, component schema.Component) (View, error) {
	image, ok := component.(*schema.Image)
	if !ok {
		return nil, unexpectedComponent("image", component)
	}

	v := b.Factory.MakeImageView()
	v.SetAdjustViewBounds(true)
	scale := ScaleFitCenter
	if image.Mode != nil {
		scale = ScaleTypeFor(*image.Mode)
	}
	v.SetScaleType(scale)

	switch path := image.Path.(type) {
	case *schema.LocalImage:
		applyLocalImage(b, v, path)
	case *schema.RemoteImage:
		placeholder, ok := applyLocalImage(b, v, path.Placeholder)
		loadRemoteImage(b, v, path.URL, placeholder, ok)
	default:
		v.SetImageDrawable(nil)
	}
	return v, nil
}

// applyLocalImage returns the design system resource it applied, if any.
func applyLocalImage(b *BuildContext, v ImageView, local *schema.LocalImage) (designsystem.ResourceID, bool) {
	if local == nil || b.Design == nil {
		return "", false
	}
	id, ok := b.Design.Image(local.Name)
	if !ok {
		b.Logger.WithField("image", local.Name).Debug("view: design system has no image")
		return "", false
	}
	v.SetImageResource(id)
	return id, true
}

// loadRemoteImage keeps the view on the latest URL. An empty URL or a failed
// load shows the placeholder again, or clears the view when there is none.
func loadRemoteImage(b *BuildContext, v ImageView, url schema.Bind[string], placeholder designsystem.ResourceID, hasPlaceholder bool) {
	// remote is set while a loaded drawable replaces the placeholder.
	remote := false
	fallback := func() {
		switch {
		case !hasPlaceholder:
			v.SetImageDrawable(nil)
		case remote:
			v.SetImageResource(placeholder)
		}
		remote = false
	}
	// generation discards results of loads superseded by a newer URL. It is
	// only touched on the UI goroutine.
	generation := 0
	Observe(b, url, func(u string) {
		generation++
		current := generation
		u = strings.TrimSpace(u)
		if u == "" || b.Images == nil {
			fallback()
			return
		}
		logger := b.Logger.WithField("url", u)
		b.Images.Load(b.Context, u, func(drawable *Drawable, err error) {
			b.Post(func() {
				if current != generation {
					return
				}
				if err != nil || drawable == nil {
					if err != nil {
						logger.WithError(err).Debug("view: remote image failed")
					}
					fallback()
					return
				}
				v.SetImageDrawable(drawable)
				remote = true
			})
		})
	})
}

func buildText(b *BuildContext, component schema.Component) (View, error) {
	text, ok := component.(*schema.Text)
	if !ok {
		return nil, unexpectedComponent("text", component)
	}

	v := b.Factory.MakeTextView()
	if text.StyleID != "" {
		v.SetStyleID(text.StyleID)
	}
	if text.TextAlignment != "" {
		v.SetTextAlignment(text.TextAlignment)
	}
	Observe(b, text.Text, v.SetText)
	if text.TextColor != nil {
		design := b.Design
		Observe(b, *text.TextColor, func(color string) {
			v.SetTextColor(designsystem.ResolveColor(design, color))
		})
	}
	return v, nil
}

func buildButton(b *BuildContext, component schema.Component) (View, error) {
	button, ok := component.(*schema.Button)
	if !ok {
		return nil, unexpectedComponent("button", component)
	}

	v := b.Factory.MakeButton()
	if button.StyleID != "" {
		v.SetStyleID(button.StyleID)
	}
	Observe(b, button.Text, v.SetText)
	if button.Enabled != nil {
		Observe(b, *button.Enabled, v.SetEnabled)
	}
	if handler := b.Handler(button.OnPress, action.EventOnPress); handler != nil {
		v.SetOnPress(handler)
	}
	return v, nil
}

func buildContainer(b *BuildContext, component schema.Component) (View, error) {
	container, ok := component.(*schema.Container)
	if !ok {
		return nil, unexpectedComponent("container", component)
	}

	v := b.Factory.MakeContainer()
	for i, child := range container.Children {
		if child == nil {
			continue
		}
		v.AddChild(b.Build(child, fmt.Sprintf(".children[%d]", i)))
	}
	b.OnInit(container.OnInit)
	return v, nil
}

func buildTouchable(b *BuildContext, component schema.Component) (View, error) {
	touchable, ok := component.(*schema.Touchable)
	if !ok {
		return nil, unexpectedComponent("touchable", component)
	}

	v := b.Factory.MakeTouchable()
	if touchable.Child != nil {
		v.SetChild(b.Build(touchable.Child, ".child"))
	}
	if handler := b.Handler(touchable.OnPress, action.EventOnPress); handler != nil {
		v.SetOnPress(handler)
	}
	return v, nil
}
