package terminal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/schema"
	"github.com/goliatone/go-sdui/pkg/uithread"
	"github.com/goliatone/go-sdui/pkg/view"
)

type stubDriver struct {
	selectIdx []int
	selectPos int
	prompts   []SelectConfig
	infos     []string
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infos = append(s.infos, msg)
	return nil
}

func counterTree() schema.Component {
	return &schema.Container{
		Context: &schema.ContextData{ID: "counter", Value: 0},
		Children: []schema.Component{
			&schema.Text{Text: schema.Expr[string]("Count: @{counter}")},
			&schema.Button{
				Text:    schema.Literal("Add"),
				OnPress: []schema.Action{&schema.SetContext{ContextID: "counter", Value: "@{sum(counter, 1)}"}},
			},
			&schema.Button{
				Text: schema.Literal("Reset"),
				OnPress: []schema.Action{&schema.Confirm{
					Title:     &schema.Bind[string]{Value: "Counter"},
					Message:   schema.Literal("Reset the counter?"),
					OnPressOk: []schema.Action{&schema.SetContext{ContextID: "counter", Value: 0}},
				}},
			},
		},
	}
}

func newTestSession(t *testing.T, driver *stubDriver) (*Session, *bytes.Buffer) {
	t.Helper()

	logger, _ := logtest.NewNullLogger()
	queue := uithread.New(uithread.WithLogger(logger))
	presenter := &Presenter{}
	host := action.NewHost(action.NewDispatcher(action.WithLogger(logger)), presenter)
	factory := NewFactory()

	screen, err := view.NewRenderer(factory,
		view.WithLogger(logger),
		view.WithPoster(queue),
	).Render(context.Background(), view.Request{Root: counterTree(), Controller: host.Ref()})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	t.Cleanup(screen.Close)

	var out bytes.Buffer
	session, err := NewSession(screen.Root().(*Widget), presenter, queue,
		WithPromptDriver(driver),
		WithOutput(&out),
		WithLogger(logger),
	)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session, &out
}

func TestSessionPressesAndQuits(t *testing.T) {
	// Add, Add, Quit
	driver := &stubDriver{selectIdx: []int{0, 0, 2}}
	session, out := newTestSession(t, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	printed := out.String()
	for _, want := range []string{"Count: 0", "Count: 1", "Count: 2", "[ Add ]"} {
		if !strings.Contains(printed, want) {
			t.Fatalf("output missing %q:\n%s", want, printed)
		}
	}
	if diff := cmp.Diff([]string{"Add", "Reset", QuitLabel}, driver.prompts[0].Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionAnswersModal(t *testing.T) {
	// Add, Reset, Ok, Quit
	driver := &stubDriver{selectIdx: []int{0, 1, 0, 2}}
	session, out := newTestSession(t, driver)

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if diff := cmp.Diff([]string{"Counter"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	modalPrompt := driver.prompts[2]
	if modalPrompt.Message != "Reset the counter?" {
		t.Fatalf("unexpected modal message %q", modalPrompt.Message)
	}
	if diff := cmp.Diff([]string{action.DefaultLabelOk, action.DefaultLabelCancel}, modalPrompt.Options); diff != "" {
		t.Fatalf("modal options mismatch (-want +got):\n%s", diff)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if got := lines[len(lines)-3]; got != "Count: 0" {
		t.Fatalf("expected counter reset in last print, got %q", got)
	}
}

func TestSessionAbortIsQuiet(t *testing.T) {
	driver := &abortDriver{}
	session, _ := newTestSession(t, &stubDriver{})
	session.driver = driver
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("expected abort to end the session quietly, got %v", err)
	}
}

type abortDriver struct{}

func (abortDriver) Select(context.Context, SelectConfig) (int, error) { return 0, ErrAborted }
func (abortDriver) Info(context.Context, string) error                { return nil }

func TestPrintSkipsHiddenWidgets(t *testing.T) {
	root := &Widget{Kind: "container", Children: []*Widget{
		{Kind: "text", Text: "visible"},
		{Kind: "text", Text: "secret", Hidden: true},
		{Kind: "image", Label: "logo", Image: "R.logo"},
		{Kind: "empty", ComponentType: "acme:carousel"},
	}}
	var out bytes.Buffer
	if err := Print(&out, root); err != nil {
		t.Fatalf("print: %v", err)
	}
	if diff := cmp.Diff("visible\n<logo: R.logo>\n", out.String()); diff != "" {
		t.Fatalf("print mismatch (-want +got):\n%s", diff)
	}
}
