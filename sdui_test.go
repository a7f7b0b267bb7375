package sdui_test

import (
	"context"
	"os"
	"strings"
	"testing"

	sdui "github.com/goliatone/go-sdui"
	"github.com/goliatone/go-sdui/pkg/schema"
)

func TestRenderHTMLRunsOnInit(t *testing.T) {
	out, err := sdui.RenderHTML(context.Background(), schema.SourceFromFile("testdata/welcome.json"), "Welcome")
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	html := string(out)
	for _, want := range []string{"<title>Welcome</title>", "Hello Ada"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, html)
		}
	}
	if strings.Contains(html, "Hello Grace") {
		t.Fatalf("onInit update not applied:\n%s", html)
	}
}

func TestRenderHTMLFromDocument(t *testing.T) {
	raw, err := os.ReadFile("testdata/welcome.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	doc := schema.MustNewDocument(schema.SourceFromFile("testdata/welcome.json"), raw)

	out, err := sdui.RenderHTMLFromDocument(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(out), `id="hello"`) {
		t.Fatalf("expected hello element, got:\n%s", out)
	}
}

func TestRenderHTMLMissingSource(t *testing.T) {
	_, err := sdui.RenderHTML(context.Background(), schema.SourceFromFile("testdata/missing.json"), "")
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := sdui.EmbeddedTemplates().Open("document.tpl"); err != nil {
		t.Fatalf("open document template: %v", err)
	}
}
