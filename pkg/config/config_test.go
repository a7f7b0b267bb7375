package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	path := writeFile(t, "sdui.yaml", `
platform: terminal
theme:
  name: acme
  variant: light
analytics:
  enabled: true
  actions:
    sdui:pushview: [route]
images:
  timeout: 2s
log:
  level: debug
`)
	envFile := writeFile(t, ".env", "SDUI_THEME_VARIANT=dark\nSDUI_LOG_FORMAT=json\n")
	t.Setenv("SDUI_LOG_LEVEL", "warn")
	t.Cleanup(func() {
		os.Unsetenv("SDUI_THEME_VARIANT")
		os.Unsetenv("SDUI_LOG_FORMAT")
	})

	cfg, err := Load(Options{Path: path, EnvFiles: []string{envFile, filepath.Join(t.TempDir(), "missing.env")}})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Default()
	want.Platform = "terminal"
	want.Theme = Theme{Name: "acme", Variant: "dark"}
	want.Analytics = Analytics{Enabled: true, Actions: map[string][]string{"sdui:pushview": {"route"}}}
	want.Images.Timeout = 2 * time.Second
	want.Log = Log{Level: "warn", Format: "json"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeFile(t, "sdui.yaml", "platform: android\n")
	if _, err := Load(Options{Path: path}); err == nil || !strings.Contains(err.Error(), "android") {
		t.Fatalf("expected unknown platform error, got %v", err)
	}
	if _, err := Load(Options{Path: filepath.Join(t.TempDir(), "nope.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(Log{Level: "debug", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
	logger.WithField("view_id", "root").Debug("rendered")
	if !strings.Contains(buf.String(), `"view_id":"root"`) {
		t.Fatalf("expected json output, got %q", buf.String())
	}
	if _, err := NewLogger(Log{Level: "loud"}, nil); err == nil {
		t.Fatalf("expected invalid level error")
	}
}
