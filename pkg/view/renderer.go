package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/expression"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/uithread"
)

// Renderer builds screens from component trees.
type Renderer struct {
	factory  Factory
	registry *Registry
	design   designsystem.Provider
	images   ImageLoader
	poster   uithread.Poster
	logger   logrus.FieldLogger
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithRegistry swaps the builder registry.
func WithRegistry(registry *Registry) Option {
	return func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	}
}

// WithDesignSystem injects the design system. Nil means none is configured
// and builders never perform resource lookups.
func WithDesignSystem(provider designsystem.Provider) Option {
	return func(r *Renderer) {
		r.design = provider
	}
}

// WithImageLoader sets the remote image loader.
func WithImageLoader(loader ImageLoader) Option {
	return func(r *Renderer) {
		r.images = loader
	}
}

// WithPoster sets where asynchronous results and context updates are applied.
func WithPoster(poster uithread.Poster) Option {
	return func(r *Renderer) {
		if poster != nil {
			r.poster = poster
		}
	}
}

// WithLogger sets the renderer logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer returns a renderer producing views with factory.
func NewRenderer(factory Factory, opts ...Option) *Renderer {
	r := &Renderer{
		factory:  factory,
		registry: NewRegistry(),
		images:   URLImageLoader{},
		poster:   uithread.Inline{},
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Registry returns the builder registry.
func (r *Renderer) Registry() *Registry {
	return r.registry
}

// Request describes one render.
type Request struct {
	Root schema.Component
	// Controller is the handle events execute through. Screen.Close releases
	// it.
	Controller *action.Ref
	// Store holds the context scopes; nil creates an empty store.
	Store *expression.Store
}

// Render builds the view tree for req.Root. It must run on the UI goroutine.
// Builder failures degrade to empty views and are logged.
func (r *Renderer) Render(ctx context.Context, req Request) (*Screen, error) {
	if r.factory == nil {
		return nil, errors.New("view: factory is required")
	}
	if req.Root == nil {
		return nil, errors.New("view: root component is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	store := req.Store
	if store == nil {
		store = expression.NewStore(nil)
	}

	screenCtx, cancel := context.WithCancel(ctx)
	screen := &Screen{
		renderer: r,
		ctx:      screenCtx,
		cancel:   cancel,
		ref:      req.Controller,
		store:    store,
		nodes:    map[string]*Node{},
	}
	screen.unsubscribe = store.Subscribe(screen.onChange)

	screen.root = screen.build(req.Root, "$", store.Root())

	inits := screen.inits
	screen.inits = nil
	for _, fn := range inits {
		screen.post(fn)
	}
	return screen, nil
}

// Screen is a rendered tree. Close tears it down.
type Screen struct {
	renderer *Renderer
	ctx      context.Context
	cancel   context.CancelFunc
	ref      *action.Ref
	store    *expression.Store
	root     View

	mu          sync.Mutex
	nodes       map[string]*Node
	order       []string
	bindings    []*binding
	inits       []func()
	unsubscribe func()
	closed      bool
}

type binding struct {
	deps  []string
	apply func()
}

// Root returns the root view.
func (s *Screen) Root() View {
	return s.root
}

// Store returns the context store bindings read from.
func (s *Screen) Store() *expression.Store {
	return s.store
}

// Context is cancelled when the screen closes.
func (s *Screen) Context() context.Context {
	return s.ctx
}

// Node returns the rendered node with id.
func (s *Screen) Node(id string) (*Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	node, ok := s.nodes[id]
	return node, ok
}

// IDs returns the node ids in tree order.
func (s *Screen) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Close cancels pending work, stops reacting to context changes and releases
// the controller handle. It is safe to call more than once.
func (s *Screen) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	unsubscribe := s.unsubscribe
	s.bindings = nil
	s.mu.Unlock()

	s.cancel()
	if unsubscribe != nil {
		unsubscribe()
	}
	s.ref.Release()
}

// post schedules fn on the UI goroutine unless the screen has closed.
func (s *Screen) post(fn func()) {
	ctx := s.ctx
	s.renderer.poster.Post(func() {
		if ctx.Err() != nil {
			return
		}
		fn()
	})
}

func (s *Screen) onChange(change expression.Change) {
	if s.ctx.Err() != nil {
		return
	}
	s.mu.Lock()
	var matched []*binding
	for _, b := range s.bindings {
		for _, dep := range b.deps {
			if dep == change.ContextID {
				matched = append(matched, b)
				break
			}
		}
	}
	s.mu.Unlock()

	for _, b := range matched {
		s.post(b.apply)
	}
}

func (s *Screen) addBinding(deps []string, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.bindings = append(s.bindings, &binding{deps: deps, apply: apply})
}

func (s *Screen) register(node *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.nodes[node.id]; exists {
		s.renderer.logger.WithFields(logrus.Fields{
			"view_id": node.id,
			"path":    node.path,
		}).Warn("view: duplicate component id, using generated id")
		node.id = StableID("", node.path)
	}
	s.nodes[node.id] = node
	s.order = append(s.order, node.id)
}

func (s *Screen) build(component schema.Component, path string, scope *expression.Scope) View {
	r := s.renderer
	componentType := component.ComponentType()

	var common schema.Widget
	if c, ok := component.(schema.Common); ok {
		common = c.Common()
	}
	logger := r.logger.WithFields(logrus.Fields{
		"component": componentType,
		"path":      path,
	})

	if declarer, ok := component.(schema.ContextDeclarer); ok {
		if declared := declarer.DeclaredContext(); declared != nil {
			scope = declareContext(scope, declared, logger)
		}
	}

	node := &Node{
		id:            StableID(common.ID, path),
		path:          path,
		componentType: componentType,
		component:     component,
		scope:         scope,
	}
	s.register(node)

	b := &BuildContext{
		Context: s.ctx,
		Factory: r.factory,
		Design:  r.design,
		Images:  r.images,
		Logger:  logger.WithField("view_id", node.id),
		Node:    node,
		Scope:   scope,
		screen:  s,
	}

	v := s.runBuilder(b, component)
	v.SetViewID(node.id)
	r.factory.ApplyStyle(v, resolveStyle(r.design, common.Style), common.Accessibility)
	node.view = v
	return v
}

func (s *Screen) runBuilder(b *BuildContext, component schema.Component) (v View) {
	r := s.renderer
	componentType := component.ComponentType()
	builder, ok := r.registry.Get(componentType)
	if !ok {
		b.Logger.Debug("view: no builder, using empty view")
		return r.factory.MakeEmpty(componentType)
	}

	defer func() {
		if rec := recover(); rec != nil {
			b.Logger.WithField("panic", rec).Error("view: builder panicked")
			v = r.factory.MakeEmpty(componentType)
		}
	}()
	built, err := builder(b, component)
	if err != nil || built == nil {
		if err == nil {
			err = errors.New("builder returned no view")
		}
		b.Logger.WithError(err).Warn("view: build failed, using empty view")
		return r.factory.MakeEmpty(componentType)
	}
	return built
}

func declareContext(scope *expression.Scope, declared *schema.ContextData, logger logrus.FieldLogger) *expression.Scope {
	child := scope.Child()
	value, err := expression.EvaluateValue(scope, declared.Value)
	if err != nil {
		logger.WithError(err).Warn("view: context value evaluation failed")
		value = declared.Value
	}
	if err := child.Declare(declared.ID, value); err != nil {
		logger.WithError(err).Warn("view: context declaration failed")
	}
	return child
}

func resolveStyle(provider designsystem.Provider, style *schema.Style) *schema.Style {
	if style == nil || style.BackgroundColor == "" || provider == nil {
		return style
	}
	resolved := *style
	resolved.BackgroundColor = designsystem.ResolveColor(provider, style.BackgroundColor)
	return &resolved
}

// Node is one rendered component. It is the Origin of the events the
// component raises.
type Node struct {
	id            string
	path          string
	componentType string
	component     schema.Component
	scope         *expression.Scope
	view          View
}

func (n *Node) ViewID() string              { return n.id }
func (n *Node) ComponentType() string       { return n.componentType }
func (n *Node) Scope() *expression.Scope    { return n.scope }
func (n *Node) Path() string                { return n.path }
func (n *Node) Component() schema.Component { return n.component }
func (n *Node) View() View                  { return n.view }

// BuildContext is handed to builders.
type BuildContext struct {
	// Context is cancelled when the screen closes.
	Context context.Context
	Factory Factory
	// Design is nil when no design system is configured.
	Design designsystem.Provider
	Images ImageLoader
	Logger logrus.FieldLogger
	Node   *Node
	Scope  *expression.Scope

	screen *Screen
}

// Build renders a nested component. segment is appended to the node path,
// e.g. ".children[0]".
func (b *BuildContext) Build(component schema.Component, segment string) View {
	return b.screen.build(component, b.Node.path+segment, b.Scope)
}

// Post schedules fn on the UI goroutine; it is dropped once the screen
// closes.
func (b *BuildContext) Post(fn func()) {
	b.screen.post(fn)
}

// Handler returns a callback executing actions for event through the screen
// controller, or nil when there is nothing to execute. The controller is
// resolved when the callback fires.
func (b *BuildContext) Handler(actions []schema.Action, event string) func() {
	if len(actions) == 0 {
		return nil
	}
	ref := b.screen.ref
	ctx := b.Context
	origin := b.Node
	return func() {
		if ctx.Err() != nil {
			return
		}
		controller, ok := ref.Get()
		if !ok {
			return
		}
		controller.Execute(actions, event, origin)
	}
}

// OnInit schedules actions to run once the whole tree is built.
func (b *BuildContext) OnInit(actions []schema.Action) {
	handler := b.Handler(actions, action.EventOnInit)
	if handler == nil {
		return
	}
	b.screen.mu.Lock()
	b.screen.inits = append(b.screen.inits, handler)
	b.screen.mu.Unlock()
}

// Observe applies the value of bind now and again whenever a context it
// depends on changes. Evaluation errors are logged and leave the view as is.
func Observe[T any](b *BuildContext, bind schema.Bind[T], apply func(T)) {
	if !bind.IsExpression() {
		apply(bind.Value)
		return
	}
	scope := b.Scope
	logger := b.Logger
	evaluate := func() {
		value, err := expression.Resolve(scope, bind)
		if err != nil {
			logger.WithError(err).WithField("expression", bind.Expression).Warn("view: binding evaluation failed")
			return
		}
		apply(value)
	}
	evaluate()

	deps, err := b.screen.store.Evaluator().Dependencies(bind.Expression)
	if err != nil || len(deps) == 0 {
		return
	}
	b.screen.addBinding(deps, evaluate)
}

func unexpectedComponent(want string, got schema.Component) error {
	return fmt.Errorf("view: %s builder got %T", want, got)
}
