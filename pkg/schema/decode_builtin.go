package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

func decodeImage(dec *Decoder, path string, raw json.RawMessage) (Component, error) {
	if err := requireFields(path, TypeImage, raw, "path"); err != nil {
		return nil, err
	}
	var wire struct {
		Widget
		Path json.RawMessage   `json:"path"`
		Mode *ImageContentMode `json:"mode"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	imagePath, err := decodeImagePath(path+".path", wire.Path)
	if err != nil {
		return nil, err
	}
	return &Image{Widget: wire.Widget, Path: imagePath, Mode: wire.Mode}, nil
}

func decodeImagePath(path string, raw json.RawMessage) (ImagePath, error) {
	tag := gjson.GetBytes(raw, ImagePathTag)
	kind := strings.ToLower(strings.TrimSpace(tag.String()))
	if !tag.Exists() {
		switch {
		case gjson.GetBytes(raw, "url").Exists():
			kind = "remote"
		case gjson.GetBytes(raw, "name").Exists():
			kind = "local"
		}
	}

	switch kind {
	case "local":
		return decodeLocalImage(path, raw)
	case "remote":
		if err := requireFields(path, "remote", raw, "url"); err != nil {
			return nil, err
		}
		var wire struct {
			URL         Bind[string]    `json:"url"`
			Placeholder json.RawMessage `json:"placeholder"`
		}
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
		remote := &RemoteImage{URL: wire.URL}
		if len(wire.Placeholder) > 0 && string(wire.Placeholder) != "null" {
			placeholder, err := decodeLocalImage(path+".placeholder", wire.Placeholder)
			if err != nil {
				return nil, err
			}
			remote.Placeholder = placeholder
		}
		return remote, nil
	case "":
		return nil, &DecodeError{Path: path, Err: fmt.Errorf("%w %q", ErrMissingTag, ImagePathTag)}
	default:
		return nil, &DecodeError{Path: path, Type: kind, Err: fmt.Errorf("unknown image path kind %q", kind)}
	}
}

func decodeLocalImage(path string, raw json.RawMessage) (*LocalImage, error) {
	if err := requireFields(path, "local", raw, "name"); err != nil {
		return nil, err
	}
	var local LocalImage
	if err := json.Unmarshal(raw, &local); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return &local, nil
}

func decodeText(_ *Decoder, path string, raw json.RawMessage) (Component, error) {
	if err := requireFields(path, TypeText, raw, "text"); err != nil {
		return nil, err
	}
	var text Text
	type alias Text
	if err := json.Unmarshal(raw, (*alias)(&text)); err != nil {
		return nil, err
	}
	return &text, nil
}

func decodeButton(dec *Decoder, path string, raw json.RawMessage) (Component, error) {
	if err := requireFields(path, TypeButton, raw, "text"); err != nil {
		return nil, err
	}
	var wire struct {
		Widget
		Text    Bind[string]    `json:"text"`
		StyleID string          `json:"styleId"`
		Enabled *Bind[bool]     `json:"enabled"`
		OnPress json.RawMessage `json:"onPress"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	onPress, err := dec.DecodeActions(path+".onPress", wire.OnPress)
	if err != nil {
		return nil, err
	}
	return &Button{
		Widget:  wire.Widget,
		Text:    wire.Text,
		StyleID: wire.StyleID,
		Enabled: wire.Enabled,
		OnPress: onPress,
	}, nil
}

func decodeContainer(dec *Decoder, path string, raw json.RawMessage) (Component, error) {
	var wire struct {
		Widget
		Children json.RawMessage `json:"children"`
		Context  *ContextData    `json:"context"`
		OnInit   json.RawMessage `json:"onInit"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	if wire.Context != nil && wire.Context.ID == "" {
		return nil, missingField(path+".context", TypeContainer, "id")
	}
	children, err := dec.decodeComponents(path+".children", wire.Children)
	if err != nil {
		return nil, err
	}
	onInit, err := dec.DecodeActions(path+".onInit", wire.OnInit)
	if err != nil {
		return nil, err
	}
	return &Container{
		Widget:   wire.Widget,
		Children: children,
		Context:  wire.Context,
		OnInit:   onInit,
	}, nil
}

func decodeTouchable(dec *Decoder, path string, raw json.RawMessage) (Component, error) {
	if err := requireFields(path, TypeTouchable, raw, "child"); err != nil {
		return nil, err
	}
	var wire struct {
		Widget
		Child   json.RawMessage `json:"child"`
		OnPress json.RawMessage `json:"onPress"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	child, err := dec.DecodeComponent(path+".child", wire.Child)
	if err != nil {
		return nil, err
	}
	onPress, err := dec.DecodeActions(path+".onPress", wire.OnPress)
	if err != nil {
		return nil, err
	}
	return &Touchable{Widget: wire.Widget, Child: child, OnPress: onPress}, nil
}

func decodeConfirm(dec *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypeConfirm, raw, "message"); err != nil {
		return nil, err
	}
	var wire struct {
		ActionBase
		Title         *Bind[string]   `json:"title"`
		Message       Bind[string]    `json:"message"`
		OnPressOk     json.RawMessage `json:"onPressOk"`
		OnPressCancel json.RawMessage `json:"onPressCancel"`
		LabelOk       *string         `json:"labelOk"`
		LabelCancel   *string         `json:"labelCancel"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	onOk, err := dec.DecodeActions(path+".onPressOk", wire.OnPressOk)
	if err != nil {
		return nil, err
	}
	onCancel, err := dec.DecodeActions(path+".onPressCancel", wire.OnPressCancel)
	if err != nil {
		return nil, err
	}
	return &Confirm{
		ActionBase:    wire.ActionBase,
		Title:         wire.Title,
		Message:       wire.Message,
		OnPressOk:     onOk,
		OnPressCancel: onCancel,
		LabelOk:       wire.LabelOk,
		LabelCancel:   wire.LabelCancel,
	}, nil
}

func decodeAlert(dec *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypeAlert, raw, "message"); err != nil {
		return nil, err
	}
	var wire struct {
		ActionBase
		Title     *Bind[string]   `json:"title"`
		Message   Bind[string]    `json:"message"`
		OnPressOk json.RawMessage `json:"onPressOk"`
		LabelOk   *string         `json:"labelOk"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	onOk, err := dec.DecodeActions(path+".onPressOk", wire.OnPressOk)
	if err != nil {
		return nil, err
	}
	return &Alert{
		ActionBase: wire.ActionBase,
		Title:      wire.Title,
		Message:    wire.Message,
		OnPressOk:  onOk,
		LabelOk:    wire.LabelOk,
	}, nil
}

func decodeSetContext(_ *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypeSetContext, raw, "contextId", "value"); err != nil {
		return nil, err
	}
	var action SetContext
	type alias SetContext
	if err := json.Unmarshal(raw, (*alias)(&action)); err != nil {
		return nil, err
	}
	return &action, nil
}

func decodeOpenExternalURL(_ *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypeOpenExternalURL, raw, "url"); err != nil {
		return nil, err
	}
	var action OpenExternalURL
	type alias OpenExternalURL
	if err := json.Unmarshal(raw, (*alias)(&action)); err != nil {
		return nil, err
	}
	return &action, nil
}

func decodePushView(_ *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypePushView, raw, "route"); err != nil {
		return nil, err
	}
	var wire struct {
		ActionBase
		Route json.RawMessage `json:"route"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	// route is either a string or a remote route object carrying `url`.
	routeRaw := wire.Route
	if url := gjson.GetBytes(wire.Route, "url"); url.Exists() {
		routeRaw = json.RawMessage(url.Raw)
	}
	var route Bind[string]
	if err := json.Unmarshal(routeRaw, &route); err != nil {
		return nil, err
	}
	return &PushView{ActionBase: wire.ActionBase, Route: route}, nil
}

func decodePopView(_ *Decoder, _ string, raw json.RawMessage) (Action, error) {
	var action PopView
	type alias PopView
	if err := json.Unmarshal(raw, (*alias)(&action)); err != nil {
		return nil, err
	}
	return &action, nil
}

func decodeCondition(dec *Decoder, path string, raw json.RawMessage) (Action, error) {
	if err := requireFields(path, TypeCondition, raw, "condition"); err != nil {
		return nil, err
	}
	var wire struct {
		ActionBase
		Condition Bind[bool]      `json:"condition"`
		OnTrue    json.RawMessage `json:"onTrue"`
		OnFalse   json.RawMessage `json:"onFalse"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}
	onTrue, err := dec.DecodeActions(path+".onTrue", wire.OnTrue)
	if err != nil {
		return nil, err
	}
	onFalse, err := dec.DecodeActions(path+".onFalse", wire.OnFalse)
	if err != nil {
		return nil, err
	}
	return &Condition{
		ActionBase: wire.ActionBase,
		Condition:  wire.Condition,
		OnTrue:     onTrue,
		OnFalse:    onFalse,
	}, nil
}
