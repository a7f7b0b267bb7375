package expression

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"
)

var builtinOperations = map[string]Operation{
	// number
	"sum":      sumOp,
	"subtract": subtractOp,
	"multiply": multiplyOp,
	"divide":   divideOp,
	// logic
	"condition": conditionOp,
	"not":       notOp,
	"and":       andOp,
	"or":        orOp,
	// comparison
	"eq":  eqOp,
	"gt":  compareOp(func(a, b float64) bool { return a > b }),
	"gte": compareOp(func(a, b float64) bool { return a >= b }),
	"lt":  compareOp(func(a, b float64) bool { return a < b }),
	"lte": compareOp(func(a, b float64) bool { return a <= b }),
	// string
	"concat":    concatOp,
	"uppercase": stringOp(strings.ToUpper),
	"lowercase": stringOp(strings.ToLower),
	// collection
	"length":   lengthOp,
	"isEmpty":  isEmptyOp,
	"isNull":   isNullOp,
	"contains": containsOp,
}

func numbers(args []any) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for i, arg := range args {
		n, ok := coerceNumber(arg)
		if !ok {
			return nil, fmt.Errorf("argument %d: %v is not a number", i, arg)
		}
		out = append(out, n)
	}
	return out, nil
}

func sumOp(args ...any) (any, error) {
	values, err := numbers(args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total, nil
}

func subtractOp(args ...any) (any, error) {
	values, err := numbers(args)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	total := values[0]
	for _, v := range values[1:] {
		total -= v
	}
	return total, nil
}

func multiplyOp(args ...any) (any, error) {
	values, err := numbers(args)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	total := 1.0
	for _, v := range values {
		total *= v
	}
	return total, nil
}

func divideOp(args ...any) (any, error) {
	values, err := numbers(args)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return 0.0, nil
	}
	total := values[0]
	for _, v := range values[1:] {
		if v == 0 {
			return nil, errors.New("division by zero")
		}
		total /= v
	}
	return total, nil
}

func conditionOp(args ...any) (any, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("want 3 arguments, got %d", len(args))
	}
	if ok, _ := coerceBool(args[0]); ok {
		return args[1], nil
	}
	return args[2], nil
}

func notOp(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	ok, _ := coerceBool(args[0])
	return !ok, nil
}

func andOp(args ...any) (any, error) {
	for _, arg := range args {
		if ok, _ := coerceBool(arg); !ok {
			return false, nil
		}
	}
	return len(args) > 0, nil
}

func orOp(args ...any) (any, error) {
	for _, arg := range args {
		if ok, _ := coerceBool(arg); ok {
			return true, nil
		}
	}
	return false, nil
}

func eqOp(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("want 2 arguments, got %d", len(args))
	}
	return equal(args[0], args[1]), nil
}

func compareOp(cmp func(a, b float64) bool) Operation {
	return func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("want 2 arguments, got %d", len(args))
		}
		values, err := numbers(args)
		if err != nil {
			return nil, err
		}
		return cmp(values[0], values[1]), nil
	}
}

func concatOp(args ...any) (any, error) {
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(coerceString(arg))
	}
	return b.String(), nil
}

func stringOp(fn func(string) string) Operation {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("want 1 argument, got %d", len(args))
		}
		return fn(coerceString(args[0])), nil
	}
}

func lengthOp(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	return float64(length(args[0])), nil
}

func isEmptyOp(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	return length(args[0]) == 0, nil
}

func isNullOp(args ...any) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("want 1 argument, got %d", len(args))
	}
	return args[0] == nil, nil
}

func containsOp(args ...any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("want 2 arguments, got %d", len(args))
	}
	switch haystack := args[0].(type) {
	case nil:
		return false, nil
	case string:
		return strings.Contains(haystack, coerceString(args[1])), nil
	case []any:
		for _, item := range haystack {
			if equal(item, args[1]) {
				return true, nil
			}
		}
		return false, nil
	case map[string]any:
		_, ok := haystack[coerceString(args[1])]
		return ok, nil
	default:
		return nil, fmt.Errorf("cannot search %T", args[0])
	}
}

func length(value any) int {
	switch typed := value.(type) {
	case nil:
		return 0
	case string:
		return utf8.RuneCountInString(typed)
	case []any:
		return len(typed)
	case map[string]any:
		return len(typed)
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
			return rv.Len()
		}
		return 1
	}
}

func equal(a, b any) bool {
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			return an == bn
		}
	}
	return reflect.DeepEqual(a, b)
}
