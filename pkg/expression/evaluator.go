package expression

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-sdui/pkg/schema"
)

// Operation implements a function callable from expressions, e.g.
// `@{sum(cart.total, 10)}`.
type Operation func(args ...any) (any, error)

// Evaluator compiles and evaluates binding strings.
//
// Supported syntax:
//   - bindings: `@{user.name}`, `@{items[0].title}`
//   - interpolation: `Hello @{user.name}!`
//   - escaping: `\@{` renders a literal `@{`
//   - literals inside expressions: 'text', 42, true, false, null
//   - operations: `@{condition(isEmpty(user.name), 'anon', user.name)}`
type Evaluator struct {
	mu    sync.RWMutex
	ops   map[string]Operation
	cache sync.Map
}

// Default is the evaluator stores use unless configured otherwise.
var Default = New()

// New returns an evaluator with the built-in operations registered.
func New() *Evaluator {
	ev := &Evaluator{ops: make(map[string]Operation, len(builtinOperations))}
	for name, op := range builtinOperations {
		ev.ops[name] = op
	}
	return ev
}

// Register adds a custom operation. Duplicate names return an error.
func (e *Evaluator) Register(name string, op Operation) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("expression: operation name is required")
	}
	if op == nil {
		return fmt.Errorf("expression: operation %q is nil", name)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.ops[name]; exists {
		return fmt.Errorf("expression: operation %q already registered", name)
	}
	e.ops[name] = op
	return nil
}

// Operations lists the registered operation names, sorted.
func (e *Evaluator) Operations() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.ops))
	for name := range e.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Evaluator) operation(name string) (Operation, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	op, ok := e.ops[name]
	return op, ok
}

// Evaluate resolves raw against scope. A string made of exactly one
// expression yields the typed value; anything else yields the interpolated
// string. Paths that do not resolve evaluate to nil.
func (e *Evaluator) Evaluate(scope *Scope, raw string) (any, error) {
	tmpl, err := e.compile(raw)
	if err != nil {
		return nil, err
	}
	if tmpl.single() {
		return tmpl.parts[0].expr.eval(e, scope)
	}

	var b strings.Builder
	for _, p := range tmpl.parts {
		if p.expr == nil {
			b.WriteString(p.text)
			continue
		}
		value, err := p.expr.eval(e, scope)
		if err != nil {
			return nil, err
		}
		b.WriteString(coerceString(value))
	}
	return b.String(), nil
}

// Dependencies returns the context ids raw reads from, sorted and unique.
func (e *Evaluator) Dependencies(raw string) ([]string, error) {
	tmpl, err := e.compile(raw)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var ids []string
	for _, p := range tmpl.parts {
		if p.expr == nil {
			continue
		}
		for _, path := range p.expr.paths(nil) {
			id, _ := splitRoot(path)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Evaluate evaluates raw with the evaluator bound to scope's store.
func Evaluate(scope *Scope, raw string) (any, error) {
	return evaluatorFor(scope).Evaluate(scope, raw)
}

// Dependencies returns the context ids raw depends on using Default.
func Dependencies(raw string) ([]string, error) {
	return Default.Dependencies(raw)
}

// Resolve returns the literal of bind, or evaluates its expression and
// coerces the result to T.
func Resolve[T any](scope *Scope, bind schema.Bind[T]) (T, error) {
	if !bind.IsExpression() {
		return bind.Value, nil
	}
	value, err := evaluatorFor(scope).Evaluate(scope, bind.Expression)
	if err != nil {
		var zero T
		return zero, err
	}
	return Convert[T](value)
}

// Convert coerces an evaluated value to T.
func Convert[T any](value any) (T, error) {
	var out T
	switch target := any(&out).(type) {
	case *string:
		*target = coerceString(value)
	case *bool:
		*target, _ = coerceBool(value)
	case *float64:
		n, ok := coerceNumber(value)
		if !ok && value != nil {
			return out, fmt.Errorf("expression: cannot convert %T to number", value)
		}
		*target = n
	case *int:
		n, ok := coerceNumber(value)
		if !ok && value != nil {
			return out, fmt.Errorf("expression: cannot convert %T to int", value)
		}
		*target = int(n)
	case *any:
		*target = value
	default:
		if value == nil {
			return out, nil
		}
		data, err := json.Marshal(value)
		if err != nil {
			return out, fmt.Errorf("expression: convert: %w", err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return out, fmt.Errorf("expression: convert to %T: %w", out, err)
		}
	}
	return out, nil
}

func evaluatorFor(scope *Scope) *Evaluator {
	if scope != nil && scope.store != nil && scope.store.evaluator != nil {
		return scope.store.evaluator
	}
	return Default
}

type templatePart struct {
	text string
	expr node
}

type template struct {
	parts []templatePart
}

func (t *template) single() bool {
	return len(t.parts) == 1 && t.parts[0].expr != nil
}

func (e *Evaluator) compile(raw string) (*template, error) {
	if cached, ok := e.cache.Load(raw); ok {
		return cached.(*template), nil
	}

	tmpl := &template{}
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			tmpl.parts = append(tmpl.parts, templatePart{text: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(raw) {
		if strings.HasPrefix(raw[i:], `\@{`) {
			text.WriteString("@{")
			i += 3
			continue
		}
		if !strings.HasPrefix(raw[i:], "@{") {
			text.WriteByte(raw[i])
			i++
			continue
		}
		end := closingBrace(raw, i+2)
		if end < 0 {
			return nil, fmt.Errorf("expression: unterminated expression in %q", raw)
		}
		expr, err := parseExpression(raw[i+2 : end])
		if err != nil {
			return nil, fmt.Errorf("%w (in %q)", err, raw)
		}
		flush()
		tmpl.parts = append(tmpl.parts, templatePart{expr: expr})
		i = end + 1
	}
	flush()

	e.cache.Store(raw, tmpl)
	return tmpl, nil
}

// closingBrace finds the `}` closing an expression opened before start,
// skipping quoted strings.
func closingBrace(raw string, start int) int {
	var quote byte
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '}':
			return i
		}
	}
	return -1
}

// EvaluateValue resolves expression strings nested anywhere inside value,
// leaving other values untouched.
func EvaluateValue(scope *Scope, value any) (any, error) {
	switch typed := value.(type) {
	case string:
		if !schema.IsExpression(typed) {
			return typed, nil
		}
		return Evaluate(scope, typed)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			resolved, err := EvaluateValue(scope, v)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			resolved, err := EvaluateValue(scope, v)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil
	default:
		return value, nil
	}
}
