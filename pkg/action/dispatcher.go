// Package action executes the actions attached to component events.
//
// Dispatch never fails: handler errors are logged, handler panics are
// recovered and actions without a registered handler are skipped. Callbacks
// that fire after a dispatch returns (modal buttons, nested chains) hold a
// Ref rather than the controller and do nothing once it is released.
package action

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/pkg/analytics"
	"github.com/goliatone/go-sdui/pkg/metrics"
	"github.com/goliatone/go-sdui/pkg/schema"
)

// Invocation carries what a handler needs to execute one action.
type Invocation struct {
	Ref    *Ref
	Event  string
	Origin Origin
	Logger logrus.FieldLogger
}

// Handler executes one action type.
type Handler func(inv Invocation, action schema.Action) error

// Dispatcher routes actions to handlers by type.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	recorder *analytics.Recorder
	logger   logrus.FieldLogger
}

// Option customises a Dispatcher.
type Option func(*Dispatcher)

// WithRecorder enables analytics records for dispatched actions.
func WithRecorder(recorder *analytics.Recorder) Option {
	return func(d *Dispatcher) {
		d.recorder = recorder
	}
}

// WithLogger sets the dispatcher logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher returns a dispatcher with the built-in handlers registered.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		handlers: map[string]Handler{
			schema.TypeConfirm:         handleConfirm,
			schema.TypeAlert:           handleAlert,
			schema.TypeSetContext:      handleSetContext,
			schema.TypeOpenExternalURL: handleOpenExternalURL,
			schema.TypePushView:        handlePushView,
			schema.TypePopView:         handlePopView,
			schema.TypeCondition:       handleCondition,
		},
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

// Register adds a handler for a custom action type. Duplicate types return an
// error.
func (d *Dispatcher) Register(actionType string, handler Handler) error {
	key := schema.NormalizeTag(actionType)
	if key == "" {
		return fmt.Errorf("action: action type is required")
	}
	if handler == nil {
		return fmt.Errorf("action: handler for %q is required", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[key]; exists {
		return fmt.Errorf("action: handler %q already registered", key)
	}
	d.handlers[key] = handler
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (d *Dispatcher) MustRegister(actionType string, handler Handler) {
	if err := d.Register(actionType, handler); err != nil {
		panic(err)
	}
}

// Has reports whether a handler is registered for actionType.
func (d *Dispatcher) Has(actionType string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.handlers[schema.NormalizeTag(actionType)]
	return ok
}

// List returns the registered action types, sorted.
func (d *Dispatcher) List() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch executes actions in order for event raised by origin.
func (d *Dispatcher) Dispatch(ref *Ref, actions []schema.Action, event string, origin Origin) {
	for _, a := range actions {
		if a == nil {
			continue
		}
		d.dispatchOne(ref, a, event, origin)
	}
}

func (d *Dispatcher) dispatchOne(ref *Ref, a schema.Action, event string, origin Origin) {
	actionType := a.ActionType()
	logger := d.logger.WithFields(logrus.Fields{
		"action": actionType,
		"event":  event,
	})
	if origin != nil {
		logger = logger.WithFields(logrus.Fields{
			"component": origin.ComponentType(),
			"view_id":   origin.ViewID(),
		})
	}

	defer func() {
		if r := recover(); r != nil {
			metrics.RecordActionPanic(actionType)
			logger.WithField("panic", r).Error("action: handler panicked")
		}
	}()

	d.recorder.RecordAction(a, event, componentRef(origin))

	d.mu.RLock()
	handler, ok := d.handlers[schema.NormalizeTag(actionType)]
	d.mu.RUnlock()
	if !ok {
		logger.Debug("action: no handler, skipping")
		return
	}

	metrics.RecordActionDispatched(actionType, event)
	inv := Invocation{Ref: ref, Event: event, Origin: origin, Logger: logger}
	if err := handler(inv, a); err != nil {
		logger.WithError(err).Warn("action: handler failed")
	}
}

func componentRef(origin Origin) analytics.ComponentRef {
	if origin == nil {
		return analytics.ComponentRef{}
	}
	return analytics.ComponentRef{ID: origin.ViewID(), Type: origin.ComponentType()}
}
