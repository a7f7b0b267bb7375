package orchestrator_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	theme "github.com/goliatone/go-theme"
	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-sdui/pkg/analytics"
	"github.com/goliatone/go-sdui/pkg/designsystem"
	"github.com/goliatone/go-sdui/pkg/orchestrator"
	"github.com/goliatone/go-sdui/pkg/platforms/html"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/testsupport"
	"github.com/goliatone/go-sdui/pkg/view"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return s.selection, s.err
}

func newOrchestrator(t *testing.T, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	return orchestrator.New(append([]orchestrator.Option{orchestrator.WithLogger(logger)}, opts...)...)
}

func homeSource() schema.Source {
	return schema.SourceFromFile(filepath.Join("testdata", "home.json"))
}

func TestRenderHTMLFromSource(t *testing.T) {
	t.Parallel()

	design := designsystem.Static{Images: map[string]designsystem.ResourceID{"logo": "/assets/logo.png"}}
	orch := newOrchestrator(t, orchestrator.WithDesignSystem(design))

	result, err := orch.Render(testsupport.Context(), orchestrator.Request{Source: homeSource()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer result.Close()

	if result.Platform != "html" {
		t.Fatalf("expected default html platform, got %q", result.Platform)
	}
	output, err := result.Output(orchestrator.OutputOptions{Title: "Home"})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	doc := string(output)
	for _, want := range []string{
		"<title>Home</title>",
		`src="/assets/logo.png"`,
		`alt="Acme"`,
		"Hello Ada",
		"Visits: 1",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("output missing %q:\n%s", want, doc)
		}
	}

	factory := result.Surface.Factory.(*html.Factory)
	if !factory.Press("visit") {
		t.Fatalf("expected visit button to be pressable")
	}
	output, err = result.Output(orchestrator.OutputOptions{})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if !strings.Contains(string(output), "Visits: 2") {
		t.Fatalf("expected updated counter:\n%s", output)
	}
}

func TestRenderYAMLDocument(t *testing.T) {
	t.Parallel()

	doc := testsupport.LoadDocument(t, filepath.Join("testdata", "home.yaml"))
	result, err := newOrchestrator(t).Render(testsupport.Context(), orchestrator.Request{
		Document: &doc,
		Platform: "terminal",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer result.Close()

	if _, ok := result.Queue(); !ok {
		t.Fatalf("expected terminal platform to use a UI queue")
	}
	output, err := result.Output(orchestrator.OutputOptions{})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if diff := cmp.Diff("Hello from YAML\n", string(output)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	orch := newOrchestrator(t)
	ctx := testsupport.Context()

	if _, err := orch.Render(ctx, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without source")
	}
	if _, err := orch.Render(ctx, orchestrator.Request{Source: homeSource(), Platform: "android"}); err == nil {
		t.Fatalf("expected error for unknown platform")
	}

	broken := schema.MustNewDocument(schema.SourceFromFile("broken.json"), []byte(`{"_component_":"sdui:text"}`))
	_, err := orch.Render(ctx, orchestrator.Request{Document: &broken})
	var decodeErr *schema.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected decode error, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := orch.Render(cancelled, orchestrator.Request{Source: homeSource()}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancelled, got %v", err)
	}
}

func TestRenderRecordsAnalytics(t *testing.T) {
	t.Parallel()

	provider := &testsupport.MemoryAnalytics{Cfg: analytics.Config{EnableScreenAnalytics: true}}
	orch := newOrchestrator(t, orchestrator.WithAnalytics(provider))

	result, err := orch.Render(testsupport.Context(), orchestrator.Request{Source: homeSource(), Screen: "home"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer result.Close()

	result.Surface.Factory.(*html.Factory).Press("visit")

	if len(provider.Records) != 2 {
		t.Fatalf("expected screen and action records, got %+v", provider.Records)
	}
	screen := provider.Records[0]
	if screen.Type != analytics.TypeScreen || screen.Screen != "home" || screen.Platform != "html" {
		t.Fatalf("unexpected screen record %+v", screen)
	}
	act := provider.Records[1]
	if act.ActionType != schema.TypeSetContext || act.Component.ID != "visit" {
		t.Fatalf("unexpected action record %+v", act)
	}
	if diff := cmp.Diff(map[string]any{"contextId": "session", "path": "visits"}, act.Attributes); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderWithThemeSelector(t *testing.T) {
	t.Parallel()

	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "light",
		Manifest: &theme.Manifest{
			Name: "acme",
			Assets: theme.Assets{
				Prefix: "/themes/acme",
				Files:  map[string]string{"image.logo": "logo.svg"},
			},
		},
	}}
	orch := newOrchestrator(t, orchestrator.WithThemeSelector(selector, "acme", "light"))

	result, err := orch.Render(testsupport.Context(), orchestrator.Request{Source: homeSource()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer result.Close()

	logo, ok := result.Surface.Factory.(*html.Factory).Element("logo")
	if !ok {
		t.Fatalf("logo not rendered")
	}
	if logo.Resource != "/themes/acme/logo.svg" {
		t.Fatalf("expected themed logo, got %q", logo.Resource)
	}

	failing := newOrchestrator(t, orchestrator.WithThemeSelector(&stubThemeSelector{err: errors.New("missing")}, "nope", ""))
	if _, err := failing.Render(testsupport.Context(), orchestrator.Request{Source: homeSource()}); err == nil {
		t.Fatalf("expected theme resolution error")
	}
}

func TestPlatformRegistry(t *testing.T) {
	t.Parallel()

	registry := orchestrator.NewPlatformRegistry()
	registry.MustRegister(orchestrator.TerminalPlatform{})
	if err := registry.Register(orchestrator.TerminalPlatform{}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if !registry.Has(" Terminal ") {
		t.Fatalf("expected case-insensitive lookup")
	}
	if diff := cmp.Diff([]string{"terminal"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}

	orch := newOrchestrator(t, orchestrator.WithPlatforms(registry))
	result, err := orch.Render(testsupport.Context(), orchestrator.Request{Source: homeSource()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	defer result.Close()
	if result.Platform != "terminal" {
		t.Fatalf("expected fallback to the only platform, got %q", result.Platform)
	}
}

func TestHTMLPlatformPinsImageLoader(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	slow := view.ImageLoaderFunc(func(_ context.Context, url string, done func(*view.Drawable, error)) {
		calls.Add(1)
		go done(&view.Drawable{URL: url + "?late"}, nil)
	})
	const url = "https://cdn.example.com/cover.png"
	root := &schema.Image{Widget: schema.Widget{ID: "cover"}, Path: &schema.RemoteImage{URL: schema.Literal(url)}}
	orch := newOrchestrator(t, orchestrator.WithImageLoader(slow))

	result, err := orch.Render(testsupport.Context(), orchestrator.Request{Component: root})
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	defer result.Close()
	output, err := result.Output(orchestrator.OutputOptions{})
	if err != nil {
		t.Fatalf("output: %v", err)
	}
	if !strings.Contains(string(output), `src="`+url+`"`) {
		t.Fatalf("expected browser-fetched src in output:\n%s", output)
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("html surface must not call the configured loader, got %d calls", got)
	}

	terminal, err := orch.Render(testsupport.Context(), orchestrator.Request{Component: root, Platform: "terminal"})
	if err != nil {
		t.Fatalf("render terminal: %v", err)
	}
	defer terminal.Close()
	if got := calls.Load(); got != 1 {
		t.Fatalf("terminal surface should use the configured loader, got %d calls", got)
	}
}
