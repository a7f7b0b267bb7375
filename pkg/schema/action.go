package schema

import "encoding/json"

// Type tags of the payload.
const (
	ComponentTag = "_component_"
	ActionTag    = "_action_"
	ImagePathTag = "_imagePath_"

	// Namespace applied to tags that do not carry one.
	Namespace = "sdui"
)

// Built-in action types.
const (
	TypeConfirm         = "sdui:confirm"
	TypeAlert           = "sdui:alert"
	TypeSetContext      = "sdui:setcontext"
	TypeOpenExternalURL = "sdui:openexternalurl"
	TypePushView        = "sdui:pushview"
	TypePopView         = "sdui:popview"
	TypeCondition       = "sdui:condition"
)

// Action is a declarative side effect attached to a component event.
type Action interface {
	ActionType() string
	// Analytics returns the per-action analytics override or nil. It never
	// fails and never mutates the action.
	Analytics() *AnalyticsConfig
}

// AnalyticsConfig overrides the provider analytics rules for one action.
// Enable nil means "use the provider rules", false disables the record.
type AnalyticsConfig struct {
	Enable            *bool          `json:"enable,omitempty"`
	Attributes        []string       `json:"attributes,omitempty"`
	AdditionalEntries map[string]any `json:"additionalEntries,omitempty"`
}

// Enabled reports whether the config enables analytics. A nil Enable counts
// as enabled because the config exists.
func (c *AnalyticsConfig) Enabled() bool {
	if c == nil {
		return false
	}
	return c.Enable == nil || *c.Enable
}

// Clone returns a deep-enough copy so callers cannot mutate the action.
func (c *AnalyticsConfig) Clone() *AnalyticsConfig {
	if c == nil {
		return nil
	}
	out := &AnalyticsConfig{}
	if c.Enable != nil {
		enabled := *c.Enable
		out.Enable = &enabled
	}
	if len(c.Attributes) > 0 {
		out.Attributes = append([]string(nil), c.Attributes...)
	}
	if len(c.AdditionalEntries) > 0 {
		out.AdditionalEntries = make(map[string]any, len(c.AdditionalEntries))
		for k, v := range c.AdditionalEntries {
			out.AdditionalEntries[k] = v
		}
	}
	return out
}

// AnalyticsEnabled builds a config with an explicit Enable value.
func AnalyticsEnabled(enabled bool, attributes ...string) *AnalyticsConfig {
	return &AnalyticsConfig{Enable: &enabled, Attributes: attributes}
}

// ActionBase carries the optional analytics override every built-in action
// accepts.
type ActionBase struct {
	AnalyticsConfig *AnalyticsConfig `json:"analytics,omitempty"`
}

// Analytics returns a copy of the configured override.
func (b ActionBase) Analytics() *AnalyticsConfig {
	return b.AnalyticsConfig.Clone()
}

// Confirm presents a two-button modal.
type Confirm struct {
	ActionBase
	Title         *Bind[string] `json:"title,omitempty"`
	Message       Bind[string]  `json:"message"`
	OnPressOk     []Action      `json:"onPressOk,omitempty"`
	OnPressCancel []Action      `json:"onPressCancel,omitempty"`
	LabelOk       *string       `json:"labelOk,omitempty"`
	LabelCancel   *string       `json:"labelCancel,omitempty"`
}

func (*Confirm) ActionType() string { return TypeConfirm }

// Alert presents a single-button modal.
type Alert struct {
	ActionBase
	Title     *Bind[string] `json:"title,omitempty"`
	Message   Bind[string]  `json:"message"`
	OnPressOk []Action      `json:"onPressOk,omitempty"`
	LabelOk   *string       `json:"labelOk,omitempty"`
}

func (*Alert) ActionType() string { return TypeAlert }

// SetContext writes Value into a context, optionally at Path.
type SetContext struct {
	ActionBase
	ContextID string `json:"contextId"`
	Path      string `json:"path,omitempty"`
	Value     any    `json:"value"`
}

func (*SetContext) ActionType() string { return TypeSetContext }

// OpenExternalURL asks the host to open a URL outside the app.
type OpenExternalURL struct {
	ActionBase
	URL Bind[string] `json:"url"`
}

func (*OpenExternalURL) ActionType() string { return TypeOpenExternalURL }

// PushView asks the host to navigate to a route.
type PushView struct {
	ActionBase
	Route Bind[string] `json:"route"`
}

func (*PushView) ActionType() string { return TypePushView }

// PopView asks the host to navigate back.
type PopView struct {
	ActionBase
}

func (*PopView) ActionType() string { return TypePopView }

// Condition runs OnTrue or OnFalse depending on the evaluated condition.
type Condition struct {
	ActionBase
	Condition Bind[bool] `json:"condition"`
	OnTrue    []Action   `json:"onTrue,omitempty"`
	OnFalse   []Action   `json:"onFalse,omitempty"`
}

func (*Condition) ActionType() string { return TypeCondition }

// UnknownAction stands in for an action whose tag has no registered factory.
// It carries no analytics configuration.
type UnknownAction struct {
	Type string
	Raw  json.RawMessage
}

func (u *UnknownAction) ActionType() string { return u.Type }

func (*UnknownAction) Analytics() *AnalyticsConfig { return nil }

// MarshalJSON returns the original payload.
func (u *UnknownAction) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return json.Marshal(map[string]string{ActionTag: u.Type})
	}
	return u.Raw, nil
}
