// Package form tracks in-memory form state against its last-saved
// baseline: an explicit clean/dirty/saved machine drives the
// unsaved-changes warning, and validation rules are resolved here before
// anything reaches the network.
package form

import (
	"context"
	"maps"

	"github.com/looplab/fsm"
)

// Guard states.
const (
	StateClean = "clean"
	StateDirty = "dirty"
	StateSaved = "saved"
)

// Guard events.
const (
	eventEdit   = "edit"
	eventRevert = "revert"
	eventSave   = "save"
	eventReset  = "reset"
)

// Snapshot is a comparable view of form content, field name to rendered
// value.
type Snapshot map[string]string

// Guard is the unsaved-changes state machine for a single form instance.
// It warns while the form content differs from the last-saved baseline and
// the user has not committed the change; MarkSaved suppresses the warning
// even though the content differs from the original baseline, and a
// subsequent edit is tracked as a fresh round.
//
// Guard is not safe for concurrent use; a form instance lives on one
// event flow.
type Guard struct {
	machine  *fsm.FSM
	baseline Snapshot
	current  Snapshot
	onChange func(warn bool)
	warning  bool
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithOnChange registers a callback invoked whenever the warn condition
// flips. It fires with true when interception must be armed and false the
// instant it must be removed.
func WithOnChange(fn func(warn bool)) GuardOption {
	return func(g *Guard) {
		g.onChange = fn
	}
}

// NewGuard creates a guard with the given baseline, starting clean.
func NewGuard(baseline Snapshot, opts ...GuardOption) *Guard {
	g := &Guard{
		baseline: maps.Clone(baseline),
		current:  maps.Clone(baseline),
	}

	for _, opt := range opts {
		opt(g)
	}

	g.machine = fsm.NewFSM(
		StateClean,
		fsm.Events{
			{Name: eventEdit, Src: []string{StateClean, StateSaved}, Dst: StateDirty},
			{Name: eventRevert, Src: []string{StateDirty}, Dst: StateClean},
			{Name: eventSave, Src: []string{StateClean, StateDirty}, Dst: StateSaved},
			{Name: eventReset, Src: []string{StateClean, StateDirty, StateSaved}, Dst: StateClean},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				g.notify()
			},
		},
	)

	return g
}

// Observe records the latest form content and fires the edit or revert
// transition when the dirty condition changes.
func (g *Guard) Observe(current Snapshot) {
	g.current = maps.Clone(current)

	dirty := !maps.Equal(g.current, g.baseline)
	state := g.machine.Current()

	switch {
	case dirty && (state == StateClean || state == StateSaved):
		_ = g.machine.Event(context.Background(), eventEdit)
	case !dirty && state == StateDirty:
		_ = g.machine.Event(context.Background(), eventRevert)
	}
}

// MarkSaved commits the user's intent after a successful submission. The
// current content becomes the new baseline, so the next divergence starts
// a fresh round of dirty tracking.
func (g *Guard) MarkSaved() {
	g.baseline = maps.Clone(g.current)
	_ = g.machine.Event(context.Background(), eventSave)
}

// Reset replaces the baseline and returns the guard to clean, clearing a
// previous saved flag.
func (g *Guard) Reset(baseline Snapshot) {
	g.baseline = maps.Clone(baseline)
	g.current = maps.Clone(baseline)
	_ = g.machine.Event(context.Background(), eventReset)
}

// State returns the current machine state.
func (g *Guard) State() string {
	return g.machine.Current()
}

// ShouldWarn reports whether leaving now would lose unsaved changes.
func (g *Guard) ShouldWarn() bool {
	return g.machine.Current() == StateDirty
}

func (g *Guard) notify() {
	warn := g.machine.Current() == StateDirty
	if warn == g.warning {
		return
	}
	g.warning = warn
	if g.onChange != nil {
		g.onChange(warn)
	}
}
