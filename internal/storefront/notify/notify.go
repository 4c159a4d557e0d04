// Package notify holds the transient notification shown at the bottom of
// the storefront ("snackbar"). There is one notification at a time; each
// Show replaces the previous one.
package notify

import (
	"sync"
	"time"
)

const (
	ColorSuccess = "success"
	ColorError   = "error"
	ColorInfo    = "info"
	ColorWarning = "warning"

	DefaultTimeout = 2 * time.Second
)

type State struct {
	Visible  bool
	Message  string
	Color    string
	Timeout  time.Duration
	Location string
}

// Options for Show. Zero values pick the defaults.
type Options struct {
	Message string
	Color   string
	Timeout time.Duration
}

type Notifier struct {
	mu    sync.Mutex
	state State
	timer *time.Timer

	// afterFunc is swapped in tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

func New() *Notifier {
	return &Notifier{
		state: State{
			Color:    ColorSuccess,
			Timeout:  2500 * time.Millisecond,
			Location: "bottom",
		},
		afterFunc: time.AfterFunc,
	}
}

// Show replaces the current notification and hides it again after the
// timeout. A negative timeout keeps it up until Hide.
func (n *Notifier) Show(opts Options) {
	color := opts.Color
	if color == "" {
		color = ColorSuccess
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.state.Message = opts.Message
	n.state.Color = color
	n.state.Timeout = timeout
	n.state.Visible = true

	n.disarm()
	if timeout > 0 {
		var timer *time.Timer
		timer = n.afterFunc(timeout, func() { n.expire(timer) })
		n.timer = timer
	}
}

// Hide takes the notification down. The rest of the state is kept.
func (n *Notifier) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.state.Visible = false
	n.disarm()
}

func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Stop cancels a pending auto-hide without changing visibility.
func (n *Notifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.disarm()
}

// expire hides the notification unless a newer Show replaced the timer.
func (n *Notifier) expire(timer *time.Timer) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != timer {
		return
	}
	n.timer = nil
	n.state.Visible = false
}

func (n *Notifier) disarm() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
