package schema

import "encoding/json"

// marshalTagged encodes v and injects the type tag under key.
func marshalTagged(key, tag string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	encodedTag, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}
	fields[key] = encodedTag
	return json.Marshal(fields)
}

func (c *Image) MarshalJSON() ([]byte, error) {
	type alias Image
	return marshalTagged(ComponentTag, TypeImage, (*alias)(c))
}

func (c *Text) MarshalJSON() ([]byte, error) {
	type alias Text
	return marshalTagged(ComponentTag, TypeText, (*alias)(c))
}

func (c *Button) MarshalJSON() ([]byte, error) {
	type alias Button
	return marshalTagged(ComponentTag, TypeButton, (*alias)(c))
}

func (c *Container) MarshalJSON() ([]byte, error) {
	type alias Container
	return marshalTagged(ComponentTag, TypeContainer, (*alias)(c))
}

func (c *Touchable) MarshalJSON() ([]byte, error) {
	type alias Touchable
	return marshalTagged(ComponentTag, TypeTouchable, (*alias)(c))
}

func (a *Confirm) MarshalJSON() ([]byte, error) {
	type alias Confirm
	return marshalTagged(ActionTag, TypeConfirm, (*alias)(a))
}

func (a *Alert) MarshalJSON() ([]byte, error) {
	type alias Alert
	return marshalTagged(ActionTag, TypeAlert, (*alias)(a))
}

func (a *SetContext) MarshalJSON() ([]byte, error) {
	type alias SetContext
	return marshalTagged(ActionTag, TypeSetContext, (*alias)(a))
}

func (a *OpenExternalURL) MarshalJSON() ([]byte, error) {
	type alias OpenExternalURL
	return marshalTagged(ActionTag, TypeOpenExternalURL, (*alias)(a))
}

func (a *PushView) MarshalJSON() ([]byte, error) {
	type alias PushView
	return marshalTagged(ActionTag, TypePushView, (*alias)(a))
}

func (a *PopView) MarshalJSON() ([]byte, error) {
	type alias PopView
	return marshalTagged(ActionTag, TypePopView, (*alias)(a))
}

func (a *Condition) MarshalJSON() ([]byte, error) {
	type alias Condition
	return marshalTagged(ActionTag, TypeCondition, (*alias)(a))
}
