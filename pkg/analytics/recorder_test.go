package analytics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-sdui/pkg/schema"
)

type memoryProvider struct {
	config  Config
	records []Record
}

func (m *memoryProvider) Config() Config             { return m.config }
func (m *memoryProvider) CreateRecord(record Record) { m.records = append(m.records, record) }

var fixedTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRecorder(provider Provider) *Recorder {
	return NewRecorder(provider,
		WithPlatform("test"),
		WithClock(func() time.Time { return fixedTime }),
		WithIDGenerator(func() string { return "rec-1" }),
	)
}

func TestActionRecordRules(t *testing.T) {
	t.Parallel()

	providerConfig := Config{Actions: map[string][]string{
		schema.TypeConfirm: {"title"},
	}}
	origin := ComponentRef{ID: "btn", Type: schema.TypeButton}
	title := schema.Literal("Delete")

	cases := []struct {
		name      string
		action    schema.Action
		want      bool
		wantAttrs map[string]any
	}{
		{
			name: "disabled override never records",
			action: &schema.Confirm{
				ActionBase: schema.ActionBase{AnalyticsConfig: schema.AnalyticsEnabled(false)},
				Message:    schema.Literal("m"),
			},
			want: false,
		},
		{
			name: "override uses its own attributes",
			action: &schema.Confirm{
				ActionBase: schema.ActionBase{AnalyticsConfig: &schema.AnalyticsConfig{Attributes: []string{"message"}}},
				Title:      &title,
				Message:    schema.Literal("Sure?"),
			},
			want:      true,
			wantAttrs: map[string]any{"message": "Sure?"},
		},
		{
			name:      "provider config by type",
			action:    &schema.Confirm{Title: &title, Message: schema.Literal("m")},
			want:      true,
			wantAttrs: map[string]any{"title": "Delete"},
		},
		{
			name:   "type not listed",
			action: &schema.Alert{Message: schema.Literal("m")},
			want:   false,
		},
		{
			name:   "unknown action has no config",
			action: &schema.UnknownAction{Type: "acme:track"},
			want:   false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := &memoryProvider{config: providerConfig}
			recorder := newTestRecorder(provider)
			got := recorder.RecordAction(tc.action, "onPress", origin)
			if got != tc.want {
				t.Fatalf("recorded: want %v got %v", tc.want, got)
			}
			if !tc.want {
				if len(provider.records) != 0 {
					t.Fatalf("expected no records, got %+v", provider.records)
				}
				return
			}
			want := Record{
				ID:         "rec-1",
				Type:       TypeAction,
				Platform:   "test",
				Event:      "onPress",
				ActionType: tc.action.ActionType(),
				Component:  origin,
				Attributes: tc.wantAttrs,
				Timestamp:  fixedTime,
			}
			if diff := cmp.Diff([]Record{want}, provider.records); diff != "" {
				t.Fatalf("records mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNilProviderNeverRecords(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(nil)
	if recorder.RecordAction(&schema.PopView{}, "onPress", ComponentRef{}) {
		t.Fatalf("nil provider must not record")
	}
	if recorder.RecordScreen("home") {
		t.Fatalf("nil provider must not record screens")
	}
}

func TestRecordScreen(t *testing.T) {
	t.Parallel()

	provider := &memoryProvider{config: Config{EnableScreenAnalytics: true}}
	if !newTestRecorder(provider).RecordScreen("home") {
		t.Fatalf("expected screen record")
	}
	if provider.records[0].Screen != "home" || provider.records[0].Type != TypeScreen {
		t.Fatalf("unexpected record %+v", provider.records[0])
	}
}

func TestMultiMergesConfigAndFansOut(t *testing.T) {
	t.Parallel()

	a := &memoryProvider{config: Config{Actions: map[string][]string{"sdui:alert": {"message"}}}}
	b := &memoryProvider{config: Config{
		EnableScreenAnalytics: true,
		Actions:               map[string][]string{"sdui:alert": {"message", "title"}},
	}}
	multi := Multi(a, nil, b)

	want := Config{EnableScreenAnalytics: true, Actions: map[string][]string{"sdui:alert": {"message", "title"}}}
	if diff := cmp.Diff(want, multi.Config()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	multi.CreateRecord(Record{ID: "x"})
	if len(a.records) != 1 || len(b.records) != 1 {
		t.Fatalf("record not fanned out: %d %d", len(a.records), len(b.records))
	}
}

func TestLogProviderWritesFields(t *testing.T) {
	t.Parallel()

	logger, hook := logtest.NewNullLogger()
	provider := NewLogProvider(Config{}, logger)
	provider.CreateRecord(Record{
		ID:         "rec-1",
		Type:       TypeAction,
		ActionType: schema.TypeConfirm,
		Event:      "onPress",
		Component:  ComponentRef{ID: "btn", Type: schema.TypeButton},
	})

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected log entry")
	}
	if entry.Level != logrus.InfoLevel {
		t.Fatalf("level: want info got %v", entry.Level)
	}
	if entry.Data["action"] != schema.TypeConfirm || entry.Data["view_id"] != "btn" {
		t.Fatalf("unexpected fields %+v", entry.Data)
	}
}

func TestProviderActionKeysMatchLikeTags(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"confirm", "sdui:Confirm", "SDUI:CONFIRM"} {
		provider := &memoryProvider{config: Config{Actions: map[string][]string{key: {"message"}}}}
		recorder := newTestRecorder(provider)

		if !recorder.RecordAction(&schema.Confirm{Message: schema.Literal("Sure?")}, "onPress", ComponentRef{}) {
			t.Fatalf("%s: expected a record", key)
		}
		if diff := cmp.Diff(map[string]any{"message": "Sure?"}, provider.records[0].Attributes); diff != "" {
			t.Fatalf("%s: attributes mismatch (-want +got):\n%s", key, diff)
		}
	}

	provider := &memoryProvider{config: Config{Actions: map[string][]string{"acme:confirm": {"message"}}}}
	if newTestRecorder(provider).RecordAction(&schema.Confirm{Message: schema.Literal("m")}, "onPress", ComponentRef{}) {
		t.Fatalf("a different namespace must not match")
	}
}
