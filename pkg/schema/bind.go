package schema

import (
	"encoding/json"
	"strings"
)

// Bind is a property value that is either a literal of type T or an
// expression resolved against the context store at render time.
type Bind[T any] struct {
	Value      T
	Expression string
}

// Literal wraps a literal value.
func Literal[T any](value T) Bind[T] {
	return Bind[T]{Value: value}
}

// Expr wraps an expression string such as "@{user.name}".
func Expr[T any](expression string) Bind[T] {
	return Bind[T]{Expression: expression}
}

// IsExpression reports whether the binding needs evaluation.
func (b Bind[T]) IsExpression() bool {
	return b.Expression != ""
}

// UnmarshalJSON accepts either a literal T or a string containing an
// expression.
func (b *Bind[T]) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil && IsExpression(raw) {
		var zero T
		b.Value = zero
		b.Expression = raw
		return nil
	}
	b.Expression = ""
	return json.Unmarshal(data, &b.Value)
}

// MarshalJSON writes the expression when present, the literal otherwise.
func (b Bind[T]) MarshalJSON() ([]byte, error) {
	if b.Expression != "" {
		return json.Marshal(b.Expression)
	}
	return json.Marshal(b.Value)
}

// IsExpression reports whether a raw string holds at least one `@{` marker.
// Escaped markers (`\@{`) still count so the resolver can unescape them.
func IsExpression(raw string) bool {
	return strings.Contains(raw, "@{")
}
