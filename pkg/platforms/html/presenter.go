package html

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-sdui/pkg/action"
	"github.com/goliatone/go-sdui/pkg/uithread"
)

// Presenter keeps the modal on display until one of its buttons is chosen.
type Presenter struct {
	mu     sync.Mutex
	modal  *action.Modal
	poster uithread.Poster
}

var _ action.Presenter = (*Presenter)(nil)

// NewPresenter returns a presenter posting button callbacks to poster, or
// running them inline when poster is nil.
func NewPresenter(poster uithread.Poster) *Presenter {
	if poster == nil {
		poster = uithread.Inline{}
	}
	return &Presenter{poster: poster}
}

// Present replaces the current modal.
func (p *Presenter) Present(modal action.Modal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal = &modal
}

// Current returns the modal on display.
func (p *Presenter) Current() (*action.Modal, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modal, p.modal != nil
}

// Choose dismisses the modal and posts the callback of the button at index.
func (p *Presenter) Choose(index int) error {
	p.mu.Lock()
	modal := p.modal
	if modal == nil {
		p.mu.Unlock()
		return fmt.Errorf("html: no modal presented")
	}
	if index < 0 || index >= len(modal.Buttons) {
		p.mu.Unlock()
		return fmt.Errorf("html: modal button %d out of range", index)
	}
	p.modal = nil
	p.mu.Unlock()

	if onPress := modal.Buttons[index].OnPress; onPress != nil {
		p.poster.Post(onPress)
	}
	return nil
}
