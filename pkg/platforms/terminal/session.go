package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/uithread"
)

// QuitLabel is the last option of the press prompt.
const QuitLabel = "Quit"

// Presenter queues modals until the session prompts for them.
type Presenter struct {
	mu      sync.Mutex
	pending []action.Modal
}

var _ action.Presenter = (*Presenter)(nil)

// Present queues modal. It never blocks.
func (p *Presenter) Present(modal action.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, modal)
}

// Next pops the oldest pending modal.
func (p *Presenter) Next() (action.Modal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.pending) == 0 {
		return action.Modal{}, false
	}
	modal := p.pending[0]
	p.pending = p.pending[1:]
	return modal, true
}

// Session drives an interactive loop over a rendered tree.
type Session struct {
	root      *Widget
	presenter *Presenter
	queue     *uithread.Queue
	driver    PromptDriver
	out       io.Writer
	logger    logrus.FieldLogger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) SessionOption {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithOutput sets where the tree is printed.
func WithOutput(out io.Writer) SessionOption {
	return func(s *Session) {
		if out != nil {
			s.out = out
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSession returns a session over root. queue must be the poster the
// screen was rendered with; the session drains it between prompts.
func NewSession(root *Widget, presenter *Presenter, queue *uithread.Queue, opts ...SessionOption) (*Session, error) {
	if root == nil {
		return nil, errors.New("terminal: root widget is required")
	}
	if presenter == nil {
		presenter = &Presenter{}
	}
	if queue == nil {
		queue = uithread.New()
	}
	s := &Session{
		root:      root,
		presenter: presenter,
		queue:     queue,
		out:       os.Stdout,
		logger:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.driver == nil {
		s.driver = NewSurveyDriver(s.out)
	}
	return s, nil
}

// Run prints the tree and prompts for presses until the user quits, aborts
// or ctx is done. Quitting and aborting return nil.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.queue.Drain()

		if modal, ok := s.presenter.Next(); ok {
			if err := s.answer(ctx, modal); err != nil {
				return quitOnAbort(err)
			}
			continue
		}

		if err := Print(s.out, s.root); err != nil {
			return fmt.Errorf("terminal: print: %w", err)
		}
		widgets, labels := pressables(s.root)
		idx, err := s.driver.Select(ctx, SelectConfig{
			Message:      "Press",
			Options:      append(labels, QuitLabel),
			DefaultIndex: 0,
		})
		if err != nil {
			return quitOnAbort(err)
		}
		if idx < 0 || idx >= len(widgets) {
			return nil
		}
		s.logger.WithField("view_id", widgets[idx].ID).Debug("terminal: press")
		widgets[idx].Press()
	}
}

// answer prompts for one modal and runs the chosen button on this goroutine.
func (s *Session) answer(ctx context.Context, modal action.Modal) error {
	if len(modal.Buttons) == 0 {
		return nil
	}
	if title := strings.TrimSpace(modal.Title); title != "" {
		if err := s.driver.Info(ctx, title); err != nil {
			return err
		}
	}
	labels := make([]string, len(modal.Buttons))
	for i, button := range modal.Buttons {
		labels[i] = button.Label
	}
	idx, err := s.driver.Select(ctx, SelectConfig{Message: modal.Message, Options: labels})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(modal.Buttons) {
		return nil
	}
	if onPress := modal.Buttons[idx].OnPress; onPress != nil {
		onPress()
	}
	return nil
}

func quitOnAbort(err error) error {
	if errors.Is(err, ErrAborted) {
		return nil
	}
	return err
}
