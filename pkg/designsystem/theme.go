package designsystem

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Asset and token key prefixes read from theme manifests.
const (
	ImageAssetPrefix = "image."
	ColorTokenPrefix = "color."
)

// Theme resolves resources from a go-theme selection. Images come from asset
// files keyed `image.<name>`; colours from tokens keyed `color.<name>`.
// Variant entries override the manifest.
type Theme struct {
	selection *theme.Selection
	images    map[string]ResourceID
	colors    map[string]string
}

// NewTheme selects name/variant through selector and indexes its resources.
func NewTheme(selector theme.ThemeSelector, name, variant string, opts ...theme.QueryOption) (*Theme, error) {
	if selector == nil {
		return nil, errors.New("designsystem: theme selector is required")
	}
	selection, err := selector.Select(name, variant, opts...)
	if err != nil {
		return nil, fmt.Errorf("designsystem: select theme %q/%q: %w", name, variant, err)
	}
	return FromSelection(selection)
}

// FromSelection indexes the resources of an existing selection.
func FromSelection(selection *theme.Selection) (*Theme, error) {
	if selection == nil || selection.Manifest == nil {
		return nil, errors.New("designsystem: theme selection has no manifest")
	}
	manifest := selection.Manifest

	t := &Theme{
		selection: selection,
		images:    map[string]ResourceID{},
		colors:    map[string]string{},
	}
	t.indexAssets(manifest.Assets.Prefix, manifest.Assets.Files)
	t.indexTokens(manifest.Tokens)

	if variant, ok := manifest.Variants[selection.Variant]; ok {
		prefix := variant.Assets.Prefix
		if prefix == "" {
			prefix = manifest.Assets.Prefix
		}
		t.indexAssets(prefix, variant.Assets.Files)
		t.indexTokens(variant.Tokens)
	}
	return t, nil
}

// Selection returns the underlying theme selection.
func (t *Theme) Selection() *theme.Selection {
	return t.selection
}

func (t *Theme) Image(name string) (ResourceID, bool) {
	id, ok := t.images[name]
	return id, ok
}

func (t *Theme) Color(name string) (string, bool) {
	value, ok := t.colors[name]
	return value, ok
}

func (t *Theme) indexAssets(prefix string, files map[string]string) {
	for key, file := range files {
		if !strings.HasPrefix(key, ImageAssetPrefix) || file == "" {
			continue
		}
		t.images[strings.TrimPrefix(key, ImageAssetPrefix)] = ResourceID(joinAsset(prefix, file))
	}
}

func (t *Theme) indexTokens(tokens map[string]string) {
	for key, value := range tokens {
		if !strings.HasPrefix(key, ColorTokenPrefix) {
			continue
		}
		t.colors[strings.TrimPrefix(key, ColorTokenPrefix)] = value
	}
}

func joinAsset(prefix, file string) string {
	if prefix == "" || strings.Contains(file, "://") {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
}
