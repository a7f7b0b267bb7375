package action

import (
	"github.com/goliatone/go-sdui/pkg/schema"
)

// Presenter shows modals on a platform.
type Presenter interface {
	Present(modal Modal)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(modal Modal)

func (f PresenterFunc) Present(modal Modal) { f(modal) }

// Host is the default Controller: it executes actions through a Dispatcher,
// presents modals through a Presenter and forwards navigation to an optional
// Navigator. Its Ref is released by Close.
type Host struct {
	dispatcher *Dispatcher
	presenter  Presenter
	navigator  Navigator
	ref        *Ref
}

// HostOption customises a Host.
type HostOption func(*Host)

// WithNavigator forwards navigation actions to navigator.
func WithNavigator(navigator Navigator) HostOption {
	return func(h *Host) {
		h.navigator = navigator
	}
}

// NewHost returns a controller using dispatcher and presenter. A nil
// dispatcher uses one with the built-in handlers.
func NewHost(dispatcher *Dispatcher, presenter Presenter, opts ...HostOption) *Host {
	if dispatcher == nil {
		dispatcher = NewDispatcher()
	}
	h := &Host{dispatcher: dispatcher, presenter: presenter}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.ref = NewRef(h)
	return h
}

// Ref returns the weak handle callbacks should hold.
func (h *Host) Ref() *Ref {
	return h.ref
}

// Dispatcher returns the dispatcher actions run through.
func (h *Host) Dispatcher() *Dispatcher {
	return h.dispatcher
}

// Close releases the handle; pending callbacks become no-ops.
func (h *Host) Close() {
	h.ref.Release()
}

func (h *Host) Present(modal Modal) {
	if h.presenter == nil {
		return
	}
	h.presenter.Present(modal)
}

func (h *Host) Execute(actions []schema.Action, event string, origin Origin) {
	h.dispatcher.Dispatch(h.ref, actions, event, origin)
}

func (h *Host) OpenURL(url string) error {
	if h.navigator == nil {
		return nil
	}
	return h.navigator.OpenURL(url)
}

func (h *Host) Push(route string) error {
	if h.navigator == nil {
		return nil
	}
	return h.navigator.Push(route)
}

func (h *Host) Pop() error {
	if h.navigator == nil {
		return nil
	}
	return h.navigator.Pop()
}
