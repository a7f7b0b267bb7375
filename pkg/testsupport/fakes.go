package testsupport

import (
	"context"
	"sync"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/analytics"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/view"
)

// Kinds reported by RecordedView.Kind.
const (
	KindImage     = "image"
	KindText      = "text"
	KindButton    = "button"
	KindContainer = "container"
	KindTouchable = "touchable"
	KindEmpty     = "empty"
)

// RecordedView implements every view interface and records what builders
// set on it.
type RecordedView struct {
	Kind          string
	ID            string
	ComponentType string

	ScaleType        view.ScaleType
	ScaleTypeCalls   int
	AdjustViewBounds bool
	Resources        []designsystem.ResourceID
	Drawables        []*view.Drawable

	Text      string
	TextColor string
	Alignment string
	StyleID   string
	Enabled   *bool
	OnPress   func()

	Children []*RecordedView
	Child    *RecordedView

	Style         *schema.Style
	Accessibility *schema.Accessibility
}

func (v *RecordedView) SetViewID(id string) { v.ID = id }

func (v *RecordedView) SetScaleType(scale view.ScaleType) {
	v.ScaleType = scale
	v.ScaleTypeCalls++
}

func (v *RecordedView) SetAdjustViewBounds(adjust bool) { v.AdjustViewBounds = adjust }

func (v *RecordedView) SetImageResource(id designsystem.ResourceID) {
	v.Resources = append(v.Resources, id)
}

func (v *RecordedView) SetImageDrawable(drawable *view.Drawable) {
	v.Drawables = append(v.Drawables, drawable)
}

func (v *RecordedView) SetText(text string)           { v.Text = text }
func (v *RecordedView) SetTextColor(color string)     { v.TextColor = color }
func (v *RecordedView) SetTextAlignment(align string) { v.Alignment = align }
func (v *RecordedView) SetStyleID(styleID string)     { v.StyleID = styleID }
func (v *RecordedView) SetOnPress(fn func())          { v.OnPress = fn }

func (v *RecordedView) SetEnabled(enabled bool) {
	v.Enabled = &enabled
}

func (v *RecordedView) AddChild(child view.View) {
	if recorded, ok := child.(*RecordedView); ok {
		v.Children = append(v.Children, recorded)
	}
}

func (v *RecordedView) SetChild(child view.View) {
	if recorded, ok := child.(*RecordedView); ok {
		v.Child = recorded
	}
}

// Press invokes the recorded press handler, if any.
func (v *RecordedView) Press() bool {
	if v.OnPress == nil {
		return false
	}
	v.OnPress()
	return true
}

// RecordingFactory is a view.Factory producing RecordedViews.
type RecordingFactory struct {
	mu    sync.Mutex
	Views []*RecordedView
}

func (f *RecordingFactory) make(kind string) *RecordedView {
	v := &RecordedView{Kind: kind}
	f.mu.Lock()
	f.Views = append(f.Views, v)
	f.mu.Unlock()
	return v
}

func (f *RecordingFactory) MakeImageView() view.ImageView     { return f.make(KindImage) }
func (f *RecordingFactory) MakeTextView() view.TextView       { return f.make(KindText) }
func (f *RecordingFactory) MakeButton() view.ButtonView       { return f.make(KindButton) }
func (f *RecordingFactory) MakeContainer() view.ContainerView { return f.make(KindContainer) }
func (f *RecordingFactory) MakeTouchable() view.TouchableView { return f.make(KindTouchable) }

func (f *RecordingFactory) MakeEmpty(componentType string) view.View {
	v := f.make(KindEmpty)
	v.ComponentType = componentType
	return v
}

func (f *RecordingFactory) ApplyStyle(v view.View, style *schema.Style, accessibility *schema.Accessibility) {
	if recorded, ok := v.(*RecordedView); ok {
		recorded.Style = style
		recorded.Accessibility = accessibility
	}
}

// ByID returns the view with id.
func (f *RecordingFactory) ByID(id string) (*RecordedView, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range f.Views {
		if v.ID == id {
			return v, true
		}
	}
	return nil, false
}

// CountingDesignSystem resolves images from a map and counts lookups. A nil
// map resolves nothing.
type CountingDesignSystem struct {
	mu      sync.Mutex
	Images  map[string]designsystem.ResourceID
	Lookups []string
}

func (d *CountingDesignSystem) Image(name string) (designsystem.ResourceID, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Lookups = append(d.Lookups, name)
	id, ok := d.Images[name]
	return id, ok
}

// Calls returns the number of lookups.
func (d *CountingDesignSystem) Calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Lookups)
}

// ExecuteCall is one Controller.Execute invocation.
type ExecuteCall struct {
	Actions []schema.Action
	Event   string
	Origin  action.Origin
}

// RecordingController records modals and execute calls.
type RecordingController struct {
	mu       sync.Mutex
	Modals   []action.Modal
	Executes []ExecuteCall
}

func (c *RecordingController) Present(modal action.Modal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Modals = append(c.Modals, modal)
}

func (c *RecordingController) Execute(actions []schema.Action, event string, origin action.Origin) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Executes = append(c.Executes, ExecuteCall{Actions: actions, Event: event, Origin: origin})
}

// ManualImageLoader holds load requests until the test completes them.
type ManualImageLoader struct {
	mu      sync.Mutex
	pending map[string][]func(*view.Drawable, error)
	URLs    []string
}

func (l *ManualImageLoader) Load(_ context.Context, url string, done func(*view.Drawable, error)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pending == nil {
		l.pending = map[string][]func(*view.Drawable, error){}
	}
	l.pending[url] = append(l.pending[url], done)
	l.URLs = append(l.URLs, url)
}

// Complete resolves every pending load of url and reports how many there were.
func (l *ManualImageLoader) Complete(url string, drawable *view.Drawable, err error) int {
	l.mu.Lock()
	callbacks := l.pending[url]
	delete(l.pending, url)
	l.mu.Unlock()
	for _, done := range callbacks {
		done(drawable, err)
	}
	return len(callbacks)
}

// MemoryAnalytics keeps records in memory.
type MemoryAnalytics struct {
	mu      sync.Mutex
	Cfg     analytics.Config
	Records []analytics.Record
}

func (m *MemoryAnalytics) Config() analytics.Config {
	return m.Cfg
}

func (m *MemoryAnalytics) CreateRecord(record analytics.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Records = append(m.Records, record)
}
