// Package designsystem resolves named design resources (images, colours) to
// platform resource identifiers. Builders treat a nil Provider as "no design
// system" and never look anything up.
package designsystem

// ResourceID identifies a platform resource, e.g. a bundled drawable name or
// an asset URL.
type ResourceID string

// Provider resolves local image names.
type Provider interface {
	Image(name string) (ResourceID, bool)
}

// ColorProvider is implemented by providers that also resolve named colours.
type ColorProvider interface {
	Color(name string) (string, bool)
}

// Static is a map-backed provider.
type Static struct {
	Images map[string]ResourceID
	Colors map[string]string
}

func (s Static) Image(name string) (ResourceID, bool) {
	id, ok := s.Images[name]
	return id, ok
}

func (s Static) Color(name string) (string, bool) {
	value, ok := s.Colors[name]
	return value, ok
}

// ResolveColor returns the colour named value when provider knows it, and
// value itself otherwise so literal colours such as "#fff" pass through.
func ResolveColor(provider Provider, value string) string {
	if colors, ok := provider.(ColorProvider); ok && value != "" {
		if resolved, found := colors.Color(value); found {
			return resolved
		}
	}
	return value
}
