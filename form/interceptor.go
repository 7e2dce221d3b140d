package form

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
)

// WarningMessage is the fixed unsaved-changes prompt.
const WarningMessage = "You have unsaved changes. Are you sure you want to leave?"

// Interceptor arms a confirmation prompt on the terminal interrupt signal
// while a guard reports unsaved changes, the console analog of the browser
// beforeunload handler. It is armed and disarmed by the guard's warn
// transitions, so no stale prompt survives a save or a reverted edit.
// In-app command flow is never blocked, only the leave signal.
type Interceptor struct {
	confirm func(message string) bool
	leave   func()
	notify  func(ch chan<- os.Signal)
	stop    func(ch chan<- os.Signal)
	logger  *slog.Logger

	mu    sync.Mutex
	armed bool
	ch    chan os.Signal
	done  chan struct{}
}

// InterceptorOption configures an Interceptor.
type InterceptorOption func(*Interceptor)

// WithConfirm sets the function that asks the user whether to leave.
func WithConfirm(fn func(message string) bool) InterceptorOption {
	return func(i *Interceptor) {
		i.confirm = fn
	}
}

// WithLeave sets the function invoked when the user confirms leaving.
func WithLeave(fn func()) InterceptorOption {
	return func(i *Interceptor) {
		i.leave = fn
	}
}

// WithSignalHooks overrides signal registration, for tests.
func WithSignalHooks(notify, stop func(ch chan<- os.Signal)) InterceptorOption {
	return func(i *Interceptor) {
		i.notify = notify
		i.stop = stop
	}
}

// WithInterceptorLogger sets the logger.
func WithInterceptorLogger(logger *slog.Logger) InterceptorOption {
	return func(i *Interceptor) {
		i.logger = logger
	}
}

// NewInterceptor creates an interceptor. Bind it to a guard with Bind and
// release it with Close.
func NewInterceptor(opts ...InterceptorOption) *Interceptor {
	i := &Interceptor{
		confirm: func(string) bool { return true },
		leave:   func() { os.Exit(130) },
		notify:  func(ch chan<- os.Signal) { signal.Notify(ch, os.Interrupt) },
		stop:    func(ch chan<- os.Signal) { signal.Stop(ch) },
		logger:  slog.Default(),
		ch:      make(chan os.Signal, 1),
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(i)
	}

	go i.loop()
	return i
}

// Bind wires the interceptor to the guard's warn transitions. The signal
// handler is registered only while the guard warns and removed the instant
// it stops warning. A callback already registered on the guard keeps
// firing; it runs before the interceptor reacts.
func (i *Interceptor) Bind(g *Guard) {
	prev := g.onChange
	g.onChange = func(warn bool) {
		if prev != nil {
			prev(warn)
		}
		if warn {
			i.arm()
		} else {
			i.disarm()
		}
	}
}

// Close disarms the interceptor and stops its signal loop.
func (i *Interceptor) Close() {
	i.disarm()
	close(i.done)
}

func (i *Interceptor) arm() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.armed {
		return
	}
	i.armed = true
	i.notify(i.ch)
	i.logger.Debug("Leave interception armed")
}

func (i *Interceptor) disarm() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.armed {
		return
	}
	i.armed = false
	i.stop(i.ch)
	i.logger.Debug("Leave interception removed")
}

func (i *Interceptor) loop() {
	for {
		select {
		case <-i.done:
			return
		case <-i.ch:
			if i.confirm(WarningMessage) {
				i.leave()
			}
		}
	}
}
