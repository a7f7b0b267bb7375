package action

import (
	"sync"

	"github.com/goliatone/go-sdui/pkg/expression"
	"github.com/goliatone/go-sdui/pkg/schema"
)

// Event names raised by the built-in components and actions.
const (
	EventOnPress       = "onPress"
	EventOnInit        = "onInit"
	EventOnPressOk     = "onPressOk"
	EventOnPressCancel = "onPressCancel"
	EventOnTrue        = "onTrue"
	EventOnFalse       = "onFalse"
)

// Origin identifies the rendered component that raised an event.
type Origin interface {
	ViewID() string
	ComponentType() string
	// Scope is the context scope bindings of the component resolve against.
	Scope() *expression.Scope
}

// ButtonRole distinguishes modal buttons for platforms that style them.
type ButtonRole string

const (
	RolePositive ButtonRole = "positive"
	RoleNegative ButtonRole = "negative"
)

// ModalButton is one choice of a Modal. OnPress runs on the UI goroutine
// when the user picks the button.
type ModalButton struct {
	Label   string
	Role    ButtonRole
	OnPress func()
}

// Modal is a blocking-looking surface presented asynchronously: Present
// returns immediately and the chosen button's OnPress runs later.
type Modal struct {
	Title   string
	Message string
	Buttons []ModalButton
}

// Controller hosts a rendered screen.
type Controller interface {
	Present(modal Modal)
	Execute(actions []schema.Action, event string, origin Origin)
}

// Navigator is implemented by controllers able to leave the current screen.
type Navigator interface {
	OpenURL(url string) error
	Push(route string) error
	Pop() error
}

// Ref is a non-owning handle on a Controller. Callbacks that outlive a
// dispatch hold the Ref instead of the controller and resolve it when they
// fire; after Release they resolve to nothing.
type Ref struct {
	mu         sync.RWMutex
	controller Controller
}

// NewRef wraps controller.
func NewRef(controller Controller) *Ref {
	return &Ref{controller: controller}
}

// Get returns the controller while it is alive.
func (r *Ref) Get() (Controller, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.controller, r.controller != nil
}

// Release drops the controller. It is safe to call more than once.
func (r *Ref) Release() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.controller = nil
	r.mu.Unlock()
}

// Alive reports whether the controller has not been released.
func (r *Ref) Alive() bool {
	_, ok := r.Get()
	return ok
}
