package analytics

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/goliatone/go-sdui/pkg/schema"
)

// Recorder applies the analytics rules and forwards records to a Provider.
type Recorder struct {
	provider Provider
	platform string
	now      func() time.Time
	newID    func() string
}

// Option customises a Recorder.
type Option func(*Recorder)

// WithPlatform tags records with the platform name.
func WithPlatform(name string) Option {
	return func(r *Recorder) {
		r.platform = name
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDGenerator overrides record id generation.
func WithIDGenerator(fn func() string) Option {
	return func(r *Recorder) {
		if fn != nil {
			r.newID = fn
		}
	}
}

// NewRecorder returns a recorder for provider. A nil provider produces a
// recorder that never records.
func NewRecorder(provider Provider, opts ...Option) *Recorder {
	r := &Recorder{
		provider: provider,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// ActionRecord builds the record for action without sending it. The rules:
//   - an action config with Enable=false never records;
//   - an action config otherwise records with its attributes;
//   - without an action config the provider config decides, keyed by type.
func (r *Recorder) ActionRecord(action schema.Action, event string, origin ComponentRef) (Record, bool) {
	if r == nil || r.provider == nil || action == nil {
		return Record{}, false
	}

	actionType := action.ActionType()
	override := action.Analytics()

	var attributes []string
	var additional map[string]any
	switch {
	case override != nil && !override.Enabled():
		return Record{}, false
	case override != nil:
		attributes = override.Attributes
		additional = override.AdditionalEntries
	default:
		attrs, ok := actionAttributes(r.provider.Config().Actions, actionType)
		if !ok {
			return Record{}, false
		}
		attributes = attrs
	}

	return Record{
		ID:                r.newID(),
		Type:              TypeAction,
		Platform:          r.platform,
		Event:             event,
		ActionType:        actionType,
		Component:         origin,
		Attributes:        extractAttributes(action, attributes),
		AdditionalEntries: additional,
		Timestamp:         r.now(),
	}, true
}

// actionAttributes finds the configured attributes for actionType. Keys match
// case-insensitively and the default namespace is optional, as with tags.
func actionAttributes(actions map[string][]string, actionType string) ([]string, bool) {
	if attrs, ok := actions[actionType]; ok {
		return attrs, true
	}
	key := schema.NormalizeTag(actionType)
	for name, attrs := range actions {
		if schema.NormalizeTag(name) == key {
			return attrs, true
		}
	}
	return nil, false
}

// RecordAction builds and sends the record for action when the rules allow
// it, reporting whether a record was sent.
func (r *Recorder) RecordAction(action schema.Action, event string, origin ComponentRef) bool {
	record, ok := r.ActionRecord(action, event, origin)
	if !ok {
		return false
	}
	r.provider.CreateRecord(record)
	return true
}

// RecordScreen sends a screen view record when screen analytics are enabled.
func (r *Recorder) RecordScreen(screen string) bool {
	if r == nil || r.provider == nil || !r.provider.Config().EnableScreenAnalytics {
		return false
	}
	r.provider.CreateRecord(Record{
		ID:        r.newID(),
		Type:      TypeScreen,
		Platform:  r.platform,
		Screen:    screen,
		Timestamp: r.now(),
	})
	return true
}

// extractAttributes reads the named attributes, dotted paths allowed, from the
// JSON encoding of action. Missing attributes are left out.
func extractAttributes(action schema.Action, names []string) map[string]any {
	if len(names) == 0 {
		return nil
	}
	data, err := json.Marshal(action)
	if err != nil {
		return nil
	}
	out := make(map[string]any, len(names))
	for _, name := range names {
		value := gjson.GetBytes(data, name)
		if !value.Exists() {
			continue
		}
		out[name] = value.Value()
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
