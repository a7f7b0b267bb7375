package designsystem

import (
	"os"
	"path/filepath"
	"testing"
)

const manifestYAML = `
name: acme
version: 1.2.0
tokens:
  color.primary: "#0055ff"
assets:
  prefix: /assets/acme
  files:
    image.logo: logo.png
variants:
  dark:
    tokens:
      color.primary: "#99bbff"
    assets:
      files:
        image.logo: logo-dark.png
`

func TestLoadManifest(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(manifestYAML), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	light, err := LoadManifest(path, "")
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if id, _ := light.Image("logo"); id != "/assets/acme/logo.png" {
		t.Fatalf("light logo: got %q", id)
	}

	dark, err := LoadManifest(path, "dark")
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if id, _ := dark.Image("logo"); id != "/assets/acme/logo-dark.png" {
		t.Fatalf("dark logo: got %q", id)
	}
	if got := ResolveColor(dark, "primary"); got != "#99bbff" {
		t.Fatalf("dark primary: got %q", got)
	}
	if dark.Selection().Manifest.Version != "1.2.0" {
		t.Fatalf("expected manifest version to be kept")
	}
}

func TestParseManifestRequiresName(t *testing.T) {
	t.Parallel()

	if _, err := ParseManifest([]byte("tokens: {}\n")); err == nil {
		t.Fatalf("expected error for unnamed manifest")
	}
	if _, err := ParseManifest([]byte("name: [")); err == nil {
		t.Fatalf("expected parse error")
	}
}
