package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-sdui/pkg/metrics"
)

// ComponentFactory decodes the payload of one component node. path locates the
// node for error reporting and nested decoding.
type ComponentFactory func(dec *Decoder, path string, raw json.RawMessage) (Component, error)

// ActionFactory decodes the payload of one action node.
type ActionFactory func(dec *Decoder, path string, raw json.RawMessage) (Action, error)

// Decoder turns screen payloads into component trees. Factories are keyed by
// normalised tag; the built-in variants are registered by NewDecoder.
type Decoder struct {
	mu         sync.RWMutex
	components map[string]ComponentFactory
	actions    map[string]ActionFactory
}

// NewDecoder returns a decoder with the built-in components and actions.
func NewDecoder() *Decoder {
	dec := &Decoder{
		components: map[string]ComponentFactory{
			TypeImage:     decodeImage,
			TypeText:      decodeText,
			TypeButton:    decodeButton,
			TypeContainer: decodeContainer,
			TypeTouchable: decodeTouchable,
		},
		actions: map[string]ActionFactory{
			TypeConfirm:         decodeConfirm,
			TypeAlert:           decodeAlert,
			TypeSetContext:      decodeSetContext,
			TypeOpenExternalURL: decodeOpenExternalURL,
			TypePushView:        decodePushView,
			TypePopView:         decodePopView,
			TypeCondition:       decodeCondition,
		},
	}
	return dec
}

var defaultDecoder = NewDecoder()

// Decode decodes data with a decoder holding only the built-in variants.
func Decode(data []byte) (Component, error) {
	return defaultDecoder.Decode(data)
}

// NormalizeTag lowercases tag and applies the default namespace when the tag
// has none.
func NormalizeTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return ""
	}
	if !strings.Contains(tag, ":") {
		return Namespace + ":" + tag
	}
	return tag
}

// RegisterComponent adds a factory for a custom component tag.
func (d *Decoder) RegisterComponent(tag string, factory ComponentFactory) error {
	key := NormalizeTag(tag)
	if key == "" {
		return fmt.Errorf("schema: component tag is required")
	}
	if factory == nil {
		return fmt.Errorf("schema: component factory for %q is required", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.components[key]; exists {
		return fmt.Errorf("schema: component %q already registered", key)
	}
	d.components[key] = factory
	return nil
}

// RegisterAction adds a factory for a custom action tag.
func (d *Decoder) RegisterAction(tag string, factory ActionFactory) error {
	key := NormalizeTag(tag)
	if key == "" {
		return fmt.Errorf("schema: action tag is required")
	}
	if factory == nil {
		return fmt.Errorf("schema: action factory for %q is required", key)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.actions[key]; exists {
		return fmt.Errorf("schema: action %q already registered", key)
	}
	d.actions[key] = factory
	return nil
}

// Components lists the registered component tags, sorted.
func (d *Decoder) Components() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sortedKeys(d.components)
}

// Actions lists the registered action tags, sorted.
func (d *Decoder) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return sortedKeys(d.actions)
}

// Decode parses a JSON or YAML payload whose root is a component.
func (d *Decoder) Decode(data []byte) (Component, error) {
	return d.decodeAs(data, FormatUnknown)
}

func (d *Decoder) decodeAs(data []byte, format Format) (Component, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		metrics.RecordDecodeError()
		return nil, &DecodeError{Path: "$", Err: err}
	}
	component, err := d.DecodeComponent("$", raw)
	if err != nil {
		metrics.RecordDecodeError()
		return nil, err
	}
	return component, nil
}

// DecodeDocument decodes the payload held by doc.
func (d *Decoder) DecodeDocument(doc Document) (Component, error) {
	component, err := d.decodeAs(doc.Raw(), doc.Format())
	if err != nil {
		return nil, fmt.Errorf("schema: %s: %w", doc.Location(), err)
	}
	return component, nil
}

// DecodeComponent decodes one component node located at path.
func (d *Decoder) DecodeComponent(path string, raw json.RawMessage) (Component, error) {
	original, tag, err := peekTag(path, raw, ComponentTag)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	factory, ok := d.components[tag]
	d.mu.RUnlock()
	if !ok {
		metrics.RecordUnknownVariant("component")
		return &UnknownComponent{Type: original, Raw: cloneRaw(raw)}, nil
	}

	component, err := factory(d, path, raw)
	if err != nil {
		return nil, decodeErr(path, tag, err)
	}
	return component, nil
}

// DecodeAction decodes one action node located at path.
func (d *Decoder) DecodeAction(path string, raw json.RawMessage) (Action, error) {
	original, tag, err := peekTag(path, raw, ActionTag)
	if err != nil {
		return nil, err
	}

	d.mu.RLock()
	factory, ok := d.actions[tag]
	d.mu.RUnlock()
	if !ok {
		metrics.RecordUnknownVariant("action")
		return &UnknownAction{Type: original, Raw: cloneRaw(raw)}, nil
	}

	action, err := factory(d, path, raw)
	if err != nil {
		return nil, decodeErr(path, tag, err)
	}
	return action, nil
}

// DecodeActions decodes either a single action object or an array of them.
// A missing or null payload yields no actions.
func (d *Decoder) DecodeActions(path string, raw json.RawMessage) ([]Action, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		action, err := d.DecodeAction(path, trimmed)
		if err != nil {
			return nil, err
		}
		return []Action{action}, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	actions := make([]Action, 0, len(items))
	for i, item := range items {
		action, err := d.DecodeAction(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		actions = append(actions, action)
	}
	return actions, nil
}

func (d *Decoder) decodeComponents(path string, raw json.RawMessage) ([]Component, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	children := make([]Component, 0, len(items))
	for i, item := range items {
		child, err := d.DecodeComponent(fmt.Sprintf("%s[%d]", path, i), item)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

// peekTag returns the tag as written and its normalized registry key.
func peekTag(path string, raw json.RawMessage, key string) (string, string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return "", "", &DecodeError{Path: path, Err: ErrNotObject}
	}
	value := gjson.GetBytes(trimmed, key)
	if !value.Exists() || value.Type != gjson.String {
		return "", "", &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrMissingTag, key)}
	}
	tag := NormalizeTag(value.String())
	if tag == "" {
		return "", "", &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrMissingTag, key)}
	}
	return value.String(), tag, nil
}

func requireFields(path, typ string, raw json.RawMessage, fields ...string) error {
	for _, field := range fields {
		if !gjson.GetBytes(raw, field).Exists() {
			return missingField(path, typ, field)
		}
	}
	return nil
}

// toJSON normalises a payload to JSON. A known format is decoded strictly;
// FormatUnknown tries JSON first and falls back to YAML.
func toJSON(data []byte, format Format) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("empty payload")
	}
	if format != FormatYAML && json.Valid(trimmed) {
		return trimmed, nil
	}
	if format == FormatJSON {
		var v any
		err := json.Unmarshal(trimmed, &v)
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(trimmed, &doc); err != nil {
		if format == FormatYAML {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		return nil, fmt.Errorf("payload is neither JSON nor YAML: %w", err)
	}
	converted, err := yamlToJSONValue(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(converted)
}

func yamlToJSONValue(value any) (any, error) {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			converted, err := yamlToJSONValue(v)
			if err != nil {
				return nil, err
			}
			out[k] = converted
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			key, ok := k.(string)
			if !ok {
				key = fmt.Sprint(k)
			}
			converted, err := yamlToJSONValue(v)
			if err != nil {
				return nil, err
			}
			out[key] = converted
		}
		return out, nil
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			converted, err := yamlToJSONValue(v)
			if err != nil {
				return nil, err
			}
			out[i] = converted
		}
		return out, nil
	default:
		return typed, nil
	}
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	return append(json.RawMessage(nil), bytes.TrimSpace(raw)...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
