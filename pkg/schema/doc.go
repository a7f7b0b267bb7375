// Package schema defines the typed component tree rendered by go-sdui and the
// decoder that turns server payloads into it. Nodes carry their variant in a
// type tag (`_component_` for components, `_action_` for actions) using the
// `namespace:name` form, e.g. `sdui:image` or `sdui:confirm`; a bare name is
// read as belonging to the built-in `sdui` namespace. Tags are matched case
// insensitively and are never treated as a closed set: a tag without a
// registered factory decodes into UnknownComponent/UnknownAction carrying the
// original tag so newer servers keep working with older clients.
//
// Properties that the server may bind to context data are modelled as Bind[T]
// values. A Bind holds either a literal or an `@{...}` expression string which
// the expression package evaluates at render time.
package schema
