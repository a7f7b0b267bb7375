package expression

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/PaesslerAG/jsonpath"
)

// GlobalContext is the id of the context declared on the root scope.
const GlobalContext = "global"

// ErrUnknownContext is returned when writing to a context no enclosing scope
// declares.
var ErrUnknownContext = errors.New("expression: unknown context")

// Change describes one write to a context.
type Change struct {
	ContextID string
	Path      string
	// Value is the full context value after the write.
	Value any
	Scope *Scope
}

// Store owns the scope tree and notifies subscribers of context writes. All
// scopes of a store share its lock.
type Store struct {
	mu        sync.RWMutex
	root      *Scope
	evaluator *Evaluator
	subs      map[uint64]func(Change)
	nextSub   uint64
}

// StoreOption customises a Store.
type StoreOption func(*Store)

// WithEvaluator overrides the evaluator used by Resolve and Evaluate.
func WithEvaluator(evaluator *Evaluator) StoreOption {
	return func(s *Store) {
		if evaluator != nil {
			s.evaluator = evaluator
		}
	}
}

// NewStore creates a store whose root scope declares the global context with
// the given initial value.
func NewStore(global any, opts ...StoreOption) *Store {
	store := &Store{
		evaluator: Default,
		subs:      make(map[uint64]func(Change)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	store.root = &Scope{store: store, contexts: map[string]any{}}
	normalized, err := normalize(global)
	if err != nil {
		normalized = nil
	}
	store.root.contexts[GlobalContext] = normalized
	return store
}

// Root returns the root scope.
func (s *Store) Root() *Scope {
	return s.root
}

// Evaluator returns the evaluator bound to the store.
func (s *Store) Evaluator() *Evaluator {
	return s.evaluator
}

// Subscribe registers fn for every context write and returns a function that
// removes the subscription. fn runs on the goroutine that performed the write.
func (s *Store) Subscribe(fn func(Change)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) notify(change Change) {
	s.mu.RLock()
	ids := make([]uint64, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	subs := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subs[id])
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(change)
	}
}

// Scope is a node of the context tree. Containers declaring a context open a
// child scope; lookups walk towards the root.
type Scope struct {
	store    *Store
	parent   *Scope
	contexts map[string]any
}

// Child opens a nested scope.
func (sc *Scope) Child() *Scope {
	return &Scope{store: sc.store, parent: sc, contexts: map[string]any{}}
}

// Parent returns the enclosing scope, nil for the root.
func (sc *Scope) Parent() *Scope {
	return sc.parent
}

// Store returns the owning store.
func (sc *Scope) Store() *Store {
	return sc.store
}

// Declare binds id to value in this scope, shadowing outer declarations.
func (sc *Scope) Declare(id string, value any) error {
	if id == "" {
		return errors.New("expression: context id is required")
	}
	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("expression: declare %q: %w", id, err)
	}
	sc.store.mu.Lock()
	sc.contexts[id] = normalized
	sc.store.mu.Unlock()
	return nil
}

// Context returns the value of the nearest context named id.
func (sc *Scope) Context(id string) (any, bool) {
	sc.store.mu.RLock()
	defer sc.store.mu.RUnlock()

	owner := sc.owner(id)
	if owner == nil {
		return nil, false
	}
	return owner.contexts[id], true
}

// Lookup resolves a binding path such as `user.address[0].city`. Missing
// contexts and missing keys report false.
func (sc *Scope) Lookup(path string) (any, bool) {
	id, rest := splitRoot(path)
	if id == "" {
		return nil, false
	}
	value, ok := sc.Context(id)
	if !ok {
		return nil, false
	}
	if rest == "" {
		return value, true
	}
	if value == nil {
		return nil, false
	}

	query := "$." + rest
	if rest[0] == '[' {
		query = "$" + rest
	}
	result, err := jsonpath.Get(query, value)
	if err != nil {
		return nil, false
	}
	return result, true
}

// Set writes value into the nearest context named contextID, at path when
// given, then notifies subscribers.
func (sc *Scope) Set(contextID, path string, value any) error {
	normalized, err := normalize(value)
	if err != nil {
		return fmt.Errorf("expression: set %q: %w", contextID, err)
	}
	segments, err := parsePath(path)
	if err != nil {
		return fmt.Errorf("expression: set %q: %w", contextID, err)
	}

	sc.store.mu.Lock()
	owner := sc.owner(contextID)
	if owner == nil {
		sc.store.mu.Unlock()
		return fmt.Errorf("%w %q", ErrUnknownContext, contextID)
	}
	current, err := normalize(owner.contexts[contextID])
	if err != nil {
		sc.store.mu.Unlock()
		return fmt.Errorf("expression: set %q: %w", contextID, err)
	}
	updated, err := setPath(current, segments, normalized)
	if err != nil {
		sc.store.mu.Unlock()
		return fmt.Errorf("expression: set %q at %q: %w", contextID, path, err)
	}
	owner.contexts[contextID] = updated
	sc.store.mu.Unlock()

	sc.store.notify(Change{ContextID: contextID, Path: path, Value: updated, Scope: owner})
	return nil
}

// owner returns the nearest scope declaring id. Callers hold the store lock.
func (sc *Scope) owner(id string) *Scope {
	for scope := sc; scope != nil; scope = scope.parent {
		if _, ok := scope.contexts[id]; ok {
			return scope
		}
	}
	return nil
}

// normalize converts value into the generic JSON shape (maps, slices,
// float64) so paths and jsonpath queries behave the same for every input.
// The result never aliases value.
func normalize(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, float64:
		return value, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
