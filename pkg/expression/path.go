package expression

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrIndexOutOfRange is returned when a write targets an index past the end
// of a list. Writes may replace an item or append exactly one.
var ErrIndexOutOfRange = errors.New("expression: index out of range")

type segment struct {
	key     string
	index   int
	isIndex bool
}

// splitRoot separates the context id from the remaining path.
func splitRoot(path string) (string, string) {
	path = strings.TrimSpace(path)
	end := strings.IndexAny(path, ".[")
	if end < 0 {
		return path, ""
	}
	rest := path[end:]
	if rest[0] == '.' {
		rest = rest[1:]
	}
	return path[:end], rest
}

// parsePath splits `a.b[0].c` into segments.
func parsePath(path string) ([]segment, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	var segments []segment
	i := 0
	for i < len(path) {
		switch path[i] {
		case '.':
			i++
		case '[':
			end := strings.IndexByte(path[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index in %q", path)
			}
			index, err := strconv.Atoi(path[i+1 : i+end])
			if err != nil || index < 0 {
				return nil, fmt.Errorf("invalid index in %q", path)
			}
			segments = append(segments, segment{index: index, isIndex: true})
			i += end + 1
		default:
			end := strings.IndexAny(path[i:], ".[")
			if end < 0 {
				end = len(path) - i
			}
			segments = append(segments, segment{key: path[i : i+end]})
			i += end
		}
	}
	return segments, nil
}

// setPath returns current with value stored at segments, creating
// intermediate maps. Lists grow by at most one item per write.
func setPath(current any, segments []segment, value any) (any, error) {
	if len(segments) == 0 {
		return value, nil
	}
	head, rest := segments[0], segments[1:]

	if head.isIndex {
		var items []any
		switch typed := current.(type) {
		case nil:
		case []any:
			items = typed
		default:
			return nil, fmt.Errorf("cannot index %T", current)
		}
		if head.index > len(items) {
			return nil, fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, head.index, len(items))
		}
		if head.index == len(items) {
			items = append(items, nil)
		}
		next, err := setPath(items[head.index], rest, value)
		if err != nil {
			return nil, err
		}
		items[head.index] = next
		return items, nil
	}

	var fields map[string]any
	switch typed := current.(type) {
	case nil:
		fields = map[string]any{}
	case map[string]any:
		fields = typed
	default:
		return nil, fmt.Errorf("cannot set key %q on %T", head.key, current)
	}
	next, err := setPath(fields[head.key], rest, value)
	if err != nil {
		return nil, err
	}
	fields[head.key] = next
	return fields, nil
}
