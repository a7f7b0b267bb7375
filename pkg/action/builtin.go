package action

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-sdui/pkg/expression"
	"github.com/goliatone/go-sdui/pkg/schema"
)

// Default modal labels.
const (
	DefaultLabelOk     = "Ok"
	DefaultLabelCancel = "Cancel"
)

var errUnexpectedAction = errors.New("action: unexpected action value")

func scopeOf(origin Origin) *expression.Scope {
	if origin == nil {
		return nil
	}
	return origin.Scope()
}

// executeLater returns a callback running actions against the controller ref
// resolves to when the callback fires. Empty chains produce no execute call.
func executeLater(ref *Ref, actions []schema.Action, event string, origin Origin) func() {
	return func() {
		if len(actions) == 0 {
			return
		}
		controller, ok := ref.Get()
		if !ok {
			return
		}
		controller.Execute(actions, event, origin)
	}
}

func resolveOptional(scope *expression.Scope, bind *schema.Bind[string]) (string, error) {
	if bind == nil {
		return "", nil
	}
	return expression.Resolve(scope, *bind)
}

func label(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func handleConfirm(inv Invocation, a schema.Action) error {
	confirm, ok := a.(*schema.Confirm)
	if !ok {
		return errUnexpectedAction
	}
	controller, alive := inv.Ref.Get()
	if !alive {
		return nil
	}

	scope := scopeOf(inv.Origin)
	title, err := resolveOptional(scope, confirm.Title)
	if err != nil {
		return fmt.Errorf("action: confirm title: %w", err)
	}
	message, err := expression.Resolve(scope, confirm.Message)
	if err != nil {
		return fmt.Errorf("action: confirm message: %w", err)
	}

	controller.Present(Modal{
		Title:   title,
		Message: message,
		Buttons: []ModalButton{
			{
				Label:   label(confirm.LabelOk, DefaultLabelOk),
				Role:    RolePositive,
				OnPress: executeLater(inv.Ref, confirm.OnPressOk, EventOnPressOk, inv.Origin),
			},
			{
				Label:   label(confirm.LabelCancel, DefaultLabelCancel),
				Role:    RoleNegative,
				OnPress: executeLater(inv.Ref, confirm.OnPressCancel, EventOnPressCancel, inv.Origin),
			},
		},
	})
	return nil
}

func handleAlert(inv Invocation, a schema.Action) error {
	alert, ok := a.(*schema.Alert)
	if !ok {
		return errUnexpectedAction
	}
	controller, alive := inv.Ref.Get()
	if !alive {
		return nil
	}

	scope := scopeOf(inv.Origin)
	title, err := resolveOptional(scope, alert.Title)
	if err != nil {
		return fmt.Errorf("action: alert title: %w", err)
	}
	message, err := expression.Resolve(scope, alert.Message)
	if err != nil {
		return fmt.Errorf("action: alert message: %w", err)
	}

	controller.Present(Modal{
		Title:   title,
		Message: message,
		Buttons: []ModalButton{{
			Label:   label(alert.LabelOk, DefaultLabelOk),
			Role:    RolePositive,
			OnPress: executeLater(inv.Ref, alert.OnPressOk, EventOnPressOk, inv.Origin),
		}},
	})
	return nil
}

func handleSetContext(inv Invocation, a schema.Action) error {
	set, ok := a.(*schema.SetContext)
	if !ok {
		return errUnexpectedAction
	}
	scope := scopeOf(inv.Origin)
	if scope == nil {
		return errors.New("action: setContext needs an origin scope")
	}
	value, err := expression.EvaluateValue(scope, set.Value)
	if err != nil {
		return fmt.Errorf("action: setContext value: %w", err)
	}
	return scope.Set(set.ContextID, set.Path, value)
}

func navigator(ref *Ref) (Navigator, bool) {
	controller, ok := ref.Get()
	if !ok {
		return nil, false
	}
	nav, ok := controller.(Navigator)
	return nav, ok
}

func handleOpenExternalURL(inv Invocation, a schema.Action) error {
	open, ok := a.(*schema.OpenExternalURL)
	if !ok {
		return errUnexpectedAction
	}
	nav, ok := navigator(inv.Ref)
	if !ok {
		return nil
	}
	url, err := expression.Resolve(scopeOf(inv.Origin), open.URL)
	if err != nil {
		return fmt.Errorf("action: openExternalURL: %w", err)
	}
	return nav.OpenURL(url)
}

func handlePushView(inv Invocation, a schema.Action) error {
	push, ok := a.(*schema.PushView)
	if !ok {
		return errUnexpectedAction
	}
	nav, ok := navigator(inv.Ref)
	if !ok {
		return nil
	}
	route, err := expression.Resolve(scopeOf(inv.Origin), push.Route)
	if err != nil {
		return fmt.Errorf("action: pushView: %w", err)
	}
	return nav.Push(route)
}

func handlePopView(inv Invocation, _ schema.Action) error {
	nav, ok := navigator(inv.Ref)
	if !ok {
		return nil
	}
	return nav.Pop()
}

func handleCondition(inv Invocation, a schema.Action) error {
	cond, ok := a.(*schema.Condition)
	if !ok {
		return errUnexpectedAction
	}
	result, err := expression.Resolve(scopeOf(inv.Origin), cond.Condition)
	if err != nil {
		return fmt.Errorf("action: condition: %w", err)
	}
	if result {
		executeLater(inv.Ref, cond.OnTrue, EventOnTrue, inv.Origin)()
	} else {
		executeLater(inv.Ref, cond.OnFalse, EventOnFalse, inv.Origin)()
	}
	return nil
}
