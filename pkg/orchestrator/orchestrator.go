package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"github.com/sirupsen/logrus"

	internalLoader "github.com/goliatone/go-sdui/internal/loader"
	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/analytics"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/expression"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/uithread"
	"github.com/goliatone/go-sdui/pkg/view"
)

const defaultPlatformName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom screen loader.
func WithLoader(loader schema.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithDecoder injects a decoder, typically one with custom components or
// actions registered.
func WithDecoder(decoder *schema.Decoder) Option {
	return func(o *Orchestrator) {
		o.decoder = decoder
	}
}

// WithPlatforms injects a platform registry.
func WithPlatforms(registry *PlatformRegistry) Option {
	return func(o *Orchestrator) {
		o.platforms = registry
	}
}

// WithDefaultPlatform overrides the platform used when a request omits an
// explicit Platform field.
func WithDefaultPlatform(name string) Option {
	return func(o *Orchestrator) {
		o.defaultPlatform = name
	}
}

// WithBuilders swaps the view builder registry.
func WithBuilders(registry *view.Registry) Option {
	return func(o *Orchestrator) {
		o.builders = registry
	}
}

// WithDesignSystem sets the design system provider.
func WithDesignSystem(provider designsystem.Provider) Option {
	return func(o *Orchestrator) {
		o.design = provider
	}
}

// WithThemeSelector resolves the design system from a go-theme selection
// when the orchestrator initialises.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithAnalytics sets the analytics provider.
func WithAnalytics(provider analytics.Provider) Option {
	return func(o *Orchestrator) {
		o.analytics = provider
	}
}

// WithActionHandlers registers extra action handlers on every dispatcher the
// orchestrator creates.
func WithActionHandlers(handlers map[string]action.Handler) Option {
	return func(o *Orchestrator) {
		if len(handlers) == 0 {
			return
		}
		if o.handlers == nil {
			o.handlers = make(map[string]action.Handler, len(handlers))
		}
		for name, handler := range handlers {
			o.handlers[name] = handler
		}
	}
}

// WithImageLoader sets the remote image loader for platforms that drain a
// UI queue, such as the terminal. Surfaces that pin their own loader (the
// HTML platform emits the URL and lets the browser fetch it) ignore it.
func WithImageLoader(loader view.ImageLoader) Option {
	return func(o *Orchestrator) {
		o.images = loader
	}
}

// WithLogger sets the logger handed to every stage.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from screen document to a rendered
// platform tree. It applies defaults (file/fs loader, built-in decoder, html
// and terminal platforms) while remaining open to dependency injection.
type Orchestrator struct {
	loader          schema.Loader
	decoder         *schema.Decoder
	platforms       *PlatformRegistry
	defaultPlatform string
	builders        *view.Registry
	design          designsystem.Provider
	themeSelector   theme.ThemeSelector
	themeName       string
	themeVariant    string
	analytics       analytics.Provider
	handlers        map[string]action.Handler
	images          view.ImageLoader
	logger          logrus.FieldLogger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultPlatform: defaultPlatformName,
		logger:          logrus.StandardLogger(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source identifies where the screen document lives. Optional when
	// Document or Component is supplied.
	Source schema.Source

	// Document bypasses the loader.
	Document *schema.Document

	// Component bypasses loading and decoding.
	Component schema.Component

	// Platform names the platform to render on; empty uses the default.
	Platform string

	// Screen names the screen for analytics.
	Screen string

	// Store carries pre-populated contexts. Nil starts empty.
	Store *expression.Store
}

// Result is a live rendered screen.
type Result struct {
	Platform string
	Screen   *view.Screen
	Host     *action.Host
	Surface  *Surface
}

// Output serialises the current tree through the platform.
func (r *Result) Output(opts OutputOptions) ([]byte, error) {
	if r == nil || r.Screen == nil || r.Surface == nil {
		return nil, errors.New("orchestrator: result is empty")
	}
	if r.Surface.Output == nil {
		return nil, fmt.Errorf("orchestrator: platform %q has no output", r.Platform)
	}
	return r.Surface.Output(r.Screen.Root(), opts)
}

// Queue returns the UI queue when the platform uses one.
func (r *Result) Queue() (*uithread.Queue, bool) {
	if r == nil || r.Surface == nil {
		return nil, false
	}
	q, ok := r.Surface.Poster.(*uithread.Queue)
	return q, ok
}

// Close tears the screen down and releases the host.
func (r *Result) Close() {
	if r == nil {
		return
	}
	if r.Screen != nil {
		r.Screen.Close()
	}
	if r.Host != nil {
		r.Host.Close()
	}
	if q, ok := r.Queue(); ok {
		q.Close()
	}
}

// Render executes load → decode → render on the selected platform. It must
// run on the goroutine owning the platform's UI.
func (o *Orchestrator) Render(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	root, err := o.resolveComponent(ctx, req)
	if err != nil {
		return nil, err
	}

	name, platform, err := o.platformFor(req.Platform)
	if err != nil {
		return nil, err
	}
	surface, err := platform.NewSurface()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: platform %q surface: %w", name, err)
	}
	if surface == nil || surface.Factory == nil {
		return nil, fmt.Errorf("orchestrator: platform %q returned no factory", name)
	}

	logger := o.logger.WithField("platform", name)
	if req.Screen != "" {
		logger = logger.WithField("screen", req.Screen)
	}

	var recorder *analytics.Recorder
	if o.analytics != nil {
		recorder = analytics.NewRecorder(o.analytics, analytics.WithPlatform(name))
	}

	dispatcher := action.NewDispatcher(action.WithRecorder(recorder), action.WithLogger(logger))
	for actionType, handler := range o.handlers {
		if err := dispatcher.Register(actionType, handler); err != nil {
			return nil, fmt.Errorf("orchestrator: register action handler: %w", err)
		}
	}

	var hostOpts []action.HostOption
	if surface.Navigator != nil {
		hostOpts = append(hostOpts, action.WithNavigator(surface.Navigator))
	}
	host := action.NewHost(dispatcher, surface.Presenter, hostOpts...)

	viewOpts := []view.Option{
		view.WithPoster(surface.Poster),
		view.WithLogger(logger),
		view.WithDesignSystem(o.design),
	}
	if o.builders != nil {
		viewOpts = append(viewOpts, view.WithRegistry(o.builders))
	}
	images := o.images
	if surface.Images != nil {
		if images != nil {
			logger.Debug("platform pins its image loader; configured loader not used")
		}
		images = surface.Images
	}
	if images != nil {
		viewOpts = append(viewOpts, view.WithImageLoader(images))
	}

	screen, err := view.NewRenderer(surface.Factory, viewOpts...).Render(ctx, view.Request{
		Root:       root,
		Controller: host.Ref(),
		Store:      req.Store,
	})
	if err != nil {
		host.Close()
		return nil, fmt.Errorf("orchestrator: render: %w", err)
	}

	if req.Screen != "" {
		recorder.RecordScreen(req.Screen)
	}

	return &Result{Platform: name, Screen: screen, Host: host, Surface: surface}, nil
}

func (o *Orchestrator) resolveComponent(ctx context.Context, req Request) (schema.Component, error) {
	if req.Component != nil {
		return req.Component, nil
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return nil, err
	}
	component, err := o.decoder.DecodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: decode %s: %w", doc.Location(), err)
	}
	return component, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (schema.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return schema.Document{}, errors.New("orchestrator: source, document or component is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return schema.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) platformFor(name string) (string, Platform, error) {
	if o.platforms == nil {
		return "", nil, errors.New("orchestrator: platform registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultPlatform
	}

	if target != "" {
		platform, err := o.platforms.Get(target)
		if err == nil {
			return normalizePlatformName(target), platform, nil
		}
		if name != "" {
			return "", nil, err
		}
	}

	names := o.platforms.List()
	if len(names) == 0 {
		return "", nil, errors.New("orchestrator: no platforms registered")
	}
	platform, err := o.platforms.Get(names[0])
	if err != nil {
		return "", nil, err
	}
	return names[0], platform, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(schema.NewLoaderOptions())
	}
	if o.decoder == nil {
		o.decoder = schema.NewDecoder()
	}
	if o.platforms == nil {
		o.platforms = NewPlatformRegistry()
		platform, err := NewHTMLPlatform()
		if err != nil {
			o.initialiseErr = err
		} else {
			o.platforms.MustRegister(platform)
		}
		o.platforms.MustRegister(TerminalPlatform{})
	}
	if o.defaultPlatform == "" {
		o.defaultPlatform = defaultPlatformName
	}
	if o.design == nil && o.themeSelector != nil {
		design, err := designsystem.NewTheme(o.themeSelector, o.themeName, o.themeVariant)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: resolve theme: %w", err)
			return
		}
		o.design = design
	}
}
