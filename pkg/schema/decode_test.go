package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const screenJSON = `{
  "_component_": "sdui:container",
  "id": "root",
  "context": {"id": "user", "value": {"name": "Ada", "items": [1, 2]}},
  "children": [
    {"_component_": "Text", "text": "Hello @{user.name}"},
    {"_component_": "SDUI:IMAGE", "path": {"_imagePath_": "remote", "url": "", "placeholder": {"_imagePath_": "local", "name": "logo"}}, "mode": "CENTER_CROP"},
    {"_component_": "button", "text": "Delete", "onPress": {
      "_action_": "sdui:confirm",
      "message": "Sure?",
      "onPressOk": {"_action_": "Custom:Track"},
      "analytics": {"enable": true, "attributes": ["message"]}
    }},
    {"_component_": "Acme:Chart", "series": [1, 2, 3]}
  ]
}`

func TestDecodeBuildsTypedTree(t *testing.T) {
	t.Parallel()

	component, err := NewDecoder().Decode([]byte(screenJSON))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	root, ok := component.(*Container)
	if !ok {
		t.Fatalf("root: want *Container got %T", component)
	}
	if root.ID != "root" || root.Context == nil || root.Context.ID != "user" {
		t.Fatalf("unexpected root: %+v", root)
	}
	if len(root.Children) != 4 {
		t.Fatalf("children: want 4 got %d", len(root.Children))
	}

	text := root.Children[0].(*Text)
	if diff := cmp.Diff(Expr[string]("Hello @{user.name}"), text.Text); diff != "" {
		t.Fatalf("text binding mismatch (-want +got):\n%s", diff)
	}

	image := root.Children[1].(*Image)
	remote, ok := image.Path.(*RemoteImage)
	if !ok {
		t.Fatalf("image path: want *RemoteImage got %T", image.Path)
	}
	if remote.URL.Value != "" || remote.URL.IsExpression() {
		t.Fatalf("remote url: want empty literal got %+v", remote.URL)
	}
	if remote.Placeholder == nil || remote.Placeholder.Name != "logo" {
		t.Fatalf("placeholder: got %+v", remote.Placeholder)
	}
	if image.Mode == nil || *image.Mode != ContentModeCenterCrop {
		t.Fatalf("mode: got %v", image.Mode)
	}

	button := root.Children[2].(*Button)
	if len(button.OnPress) != 1 {
		t.Fatalf("onPress: want 1 action got %d", len(button.OnPress))
	}
	confirm, ok := button.OnPress[0].(*Confirm)
	if !ok {
		t.Fatalf("onPress[0]: want *Confirm got %T", button.OnPress[0])
	}
	if len(confirm.OnPressOk) != 1 {
		t.Fatalf("onPressOk: want 1 action got %d", len(confirm.OnPressOk))
	}
	unknownAction, ok := confirm.OnPressOk[0].(*UnknownAction)
	if !ok || unknownAction.Type != "Custom:Track" {
		t.Fatalf("onPressOk[0]: want UnknownAction Custom:Track got %#v", confirm.OnPressOk[0])
	}
	if unknownAction.Analytics() != nil {
		t.Fatalf("unknown action analytics must be nil")
	}

	unknown, ok := root.Children[3].(*UnknownComponent)
	if !ok || unknown.ComponentType() != "Acme:Chart" {
		t.Fatalf("children[3]: want UnknownComponent Acme:Chart got %#v", root.Children[3])
	}
	if !strings.Contains(string(unknown.Raw), `"series"`) {
		t.Fatalf("unknown component should keep raw payload, got %s", unknown.Raw)
	}
}

func TestDecodeAcceptsYAML(t *testing.T) {
	t.Parallel()

	payload := `
_component_: container
children:
  - _component_: text
    text: Hi
  - _component_: touchable
    child:
      _component_: image
      path:
        _imagePath_: local
        name: avatar
    onPress:
      - _action_: pushView
        route:
          url: /profile
`
	component, err := Decode([]byte(payload))
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	root := component.(*Container)
	touchable := root.Children[1].(*Touchable)
	image := touchable.Child.(*Image)
	if diff := cmp.Diff(&LocalImage{Name: "avatar"}, image.Path); diff != "" {
		t.Fatalf("image path mismatch (-want +got):\n%s", diff)
	}
	push := touchable.OnPress[0].(*PushView)
	if push.Route.Value != "/profile" {
		t.Fatalf("route: want /profile got %+v", push.Route)
	}
}

func TestDecodeErrorsReportPath(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		path    string
		target  error
	}{
		{
			name:    "missing tag",
			payload: `{"text": "x"}`,
			path:    "$",
			target:  ErrMissingTag,
		},
		{
			name:    "missing text",
			payload: `{"_component_": "sdui:container", "children": [{"_component_": "sdui:text"}]}`,
			path:    "$.children[0]",
			target:  ErrMissingField,
		},
		{
			name: "nested action",
			payload: `{"_component_": "sdui:container", "children": [
				{"_component_": "sdui:text", "text": "a"},
				{"_component_": "sdui:button", "text": "b", "onPress": [
					{"_action_": "sdui:confirm", "message": "m"},
					{"_action_": "sdui:alert"}
				]}
			]}`,
			path:   "$.children[1].onPress[1]",
			target: ErrMissingField,
		},
		{
			name:    "remote without url",
			payload: `{"_component_": "sdui:image", "path": {"_imagePath_": "remote"}}`,
			path:    "$.path",
			target:  ErrMissingField,
		},
		{
			name:    "child not object",
			payload: `{"_component_": "sdui:touchable", "child": 3}`,
			path:    "$.child",
			target:  ErrNotObject,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewDecoder().Decode([]byte(tc.payload))
			if err == nil {
				t.Fatalf("expected error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("expected DecodeError, got %T: %v", err, err)
			}
			if decodeErr.Path != tc.path {
				t.Fatalf("path: want %q got %q", tc.path, decodeErr.Path)
			}
			if !errors.Is(err, tc.target) {
				t.Fatalf("expected %v in chain, got %v", tc.target, err)
			}
		})
	}
}

func TestDecodeRejectsUnknownContentMode(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"_component_": "sdui:image", "path": {"_imagePath_": "local", "name": "x"}, "mode": "STRETCH"}`))
	if err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestRegisterCustomComponent(t *testing.T) {
	t.Parallel()

	type badge struct {
		Widget
		Label string `json:"label"`
	}
	dec := NewDecoder()
	err := dec.RegisterComponent("Acme:Badge", func(_ *Decoder, _ string, raw json.RawMessage) (Component, error) {
		var b badge
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, err
		}
		return &UnknownComponent{Type: "acme:badge", Raw: json.RawMessage(b.Label)}, nil
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := dec.RegisterComponent("acme:badge", func(*Decoder, string, json.RawMessage) (Component, error) { return nil, nil }); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := dec.RegisterAction("image", nil); err == nil {
		t.Fatalf("expected nil factory error")
	}

	component, err := dec.Decode([]byte(`{"_component_": "ACME:BADGE", "label": "new"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := string(component.(*UnknownComponent).Raw); got != "new" {
		t.Fatalf("custom factory not used, got %q", got)
	}

	want := []string{"acme:badge", TypeButton, TypeContainer, TypeImage, TypeText, TypeTouchable}
	if diff := cmp.Diff(want, dec.Components()); diff != "" {
		t.Fatalf("components mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"image":        "sdui:image",
		" SDUI:Image ": "sdui:image",
		"acme:Chart":   "acme:chart",
		"":             "",
	}
	for input, want := range cases {
		if got := NormalizeTag(input); got != want {
			t.Fatalf("normalize %q: want %q got %q", input, want, got)
		}
	}
}

func TestAnalyticsIsCopied(t *testing.T) {
	t.Parallel()

	action, err := NewDecoder().DecodeAction("$", json.RawMessage(`{
		"_action_": "sdui:alert",
		"message": "m",
		"analytics": {"enable": false, "attributes": ["message"], "additionalEntries": {"k": "v"}}
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	first := action.Analytics()
	first.Attributes[0] = "mutated"
	*first.Enable = true
	first.AdditionalEntries["k"] = "changed"

	second := action.Analytics()
	want := &AnalyticsConfig{
		Enable:            boolPtr(false),
		Attributes:        []string{"message"},
		AdditionalEntries: map[string]any{"k": "v"},
	}
	if diff := cmp.Diff(want, second); diff != "" {
		t.Fatalf("analytics changed after mutation (-want +got):\n%s", diff)
	}
}

func TestMarshalAddsTags(t *testing.T) {
	t.Parallel()

	button := &Button{
		Widget:  Widget{ID: "b"},
		Text:    Literal("Go"),
		OnPress: []Action{&PopView{}},
	}
	data, err := json.Marshal(button)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("decode marshalled: %v", err)
	}
	got := decoded.(*Button)
	if got.ID != "b" || got.Text.Value != "Go" {
		t.Fatalf("unexpected button %+v", got)
	}
	if _, ok := got.OnPress[0].(*PopView); !ok {
		t.Fatalf("onPress[0]: want *PopView got %T", got.OnPress[0])
	}
}

func boolPtr(v bool) *bool { return &v }

func TestAnalyticsIsTotal(t *testing.T) {
	t.Parallel()

	const analytics = `"analytics": {"enable": true, "attributes": ["a"]}`
	cases := []struct {
		name   string
		fields string
		want   bool
	}{
		{name: "sdui:confirm", fields: `"message": "m"`, want: true},
		{name: "sdui:alert", fields: `"message": "m"`, want: true},
		{name: "sdui:setContext", fields: `"contextId": "c", "value": 1`, want: true},
		{name: "sdui:openExternalURL", fields: `"url": "https://example.com"`, want: true},
		{name: "sdui:pushView", fields: `"route": {"url": "/next"}`, want: true},
		{name: "sdui:popView", fields: `"x": 0`, want: true},
		{name: "sdui:condition", fields: `"condition": true`, want: true},
		{name: "acme:Track", fields: `"x": 0`, want: false},
	}

	dec := NewDecoder()
	for _, tc := range cases {
		for _, withConfig := range []bool{false, true} {
			payload := `{"_action_": "` + tc.name + `", ` + tc.fields
			if withConfig {
				payload += ", " + analytics
			}
			payload += "}"

			action, err := dec.DecodeAction("$", json.RawMessage(payload))
			if err != nil {
				t.Fatalf("%s: decode: %v", tc.name, err)
			}
			got := action.Analytics()
			if !withConfig || !tc.want {
				if got != nil {
					t.Fatalf("%s (config=%v): want nil analytics got %+v", tc.name, withConfig, got)
				}
				continue
			}
			if diff := cmp.Diff(AnalyticsEnabled(true, "a"), got); diff != "" {
				t.Fatalf("%s: analytics mismatch (-want +got):\n%s", tc.name, diff)
			}
		}
	}
}
