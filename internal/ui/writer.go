package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// WriterPresenter prints prompts to a writer for hosts without a bubbletea
// program. Buttons are never pressed.
//
// Dispatched functions run one at a time in dispatch order. The first
// caller drains the queue on its own goroutine; a Dispatch from inside a
// running function is queued behind it and returns immediately.
type WriterPresenter struct {
	mu       sync.Mutex
	queue    []func()
	draining bool
	w        io.Writer
	notifier *Notifier
}

// NewWriterPresenter prints to w, or stdout when w is nil.
func NewWriterPresenter(w io.Writer) *WriterPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &WriterPresenter{w: w, notifier: NewNotifier(w)}
}

func (p *WriterPresenter) Dispatch(fn func()) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, fn)
	if p.draining {
		p.mu.Unlock()
		return
	}
	p.draining = true
	defer func() {
		p.mu.Lock()
		p.draining = false
		p.mu.Unlock()
	}()
	for len(p.queue) > 0 {
		next := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()
		next()
		p.mu.Lock()
	}
	p.mu.Unlock()
}

func (p *WriterPresenter) ShowDialog(prompt Prompt) {
	_, _ = fmt.Fprintln(p.w, NewDialog(prompt, "plain").View())
}

func (p *WriterPresenter) ShowBanner(prompt Prompt) {
	// Printed banners never expire, so drop the countdown.
	prompt.Duration = 0
	_, _ = fmt.Fprintln(p.w, NewBanner(0, prompt).View())
}

func (p *WriterPresenter) ShowNotification(prompt Prompt) {
	p.notifier.Notify(prompt)
}

func (p *WriterPresenter) Dismiss() {}
