package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseline() Snapshot {
	return Snapshot{"name": "North Brew", "location": "North"}
}

func TestGuard_StartsClean(t *testing.T) {
	g := NewGuard(baseline())
	assert.Equal(t, StateClean, g.State())
	assert.False(t, g.ShouldWarn())
}

func TestGuard_EditSaveEditCycle(t *testing.T) {
	g := NewGuard(baseline())

	edited := baseline()
	edited["name"] = "South Brew"
	g.Observe(edited)
	assert.Equal(t, StateDirty, g.State())
	assert.True(t, g.ShouldWarn())

	// Committing suppresses the warning even though the content differs
	// from the original baseline.
	g.MarkSaved()
	assert.Equal(t, StateSaved, g.State())
	assert.False(t, g.ShouldWarn())

	// A fresh edit after saving starts a new dirty round.
	edited["location"] = "South"
	g.Observe(edited)
	assert.Equal(t, StateDirty, g.State())
	assert.True(t, g.ShouldWarn())
}

func TestGuard_SavedTracksNewBaseline(t *testing.T) {
	g := NewGuard(baseline())

	edited := baseline()
	edited["name"] = "South Brew"
	g.Observe(edited)
	g.MarkSaved()

	// Re-observing the committed content is not an edit.
	g.Observe(edited)
	assert.Equal(t, StateSaved, g.State())
	assert.False(t, g.ShouldWarn())
}

func TestGuard_RevertingEditsReturnsToClean(t *testing.T) {
	g := NewGuard(baseline())

	edited := baseline()
	edited["name"] = "South Brew"
	g.Observe(edited)
	require.True(t, g.ShouldWarn())

	g.Observe(baseline())
	assert.Equal(t, StateClean, g.State())
	assert.False(t, g.ShouldWarn())
}

func TestGuard_ResetClearsSavedFlag(t *testing.T) {
	g := NewGuard(baseline())

	edited := baseline()
	edited["name"] = "South Brew"
	g.Observe(edited)
	g.MarkSaved()

	fresh := Snapshot{"name": "", "location": ""}
	g.Reset(fresh)
	assert.Equal(t, StateClean, g.State())

	fresh["name"] = "East Brew"
	g.Observe(fresh)
	assert.True(t, g.ShouldWarn())
}

func TestGuard_OnChangeFiresOnlyOnFlips(t *testing.T) {
	var flips []bool
	g := NewGuard(baseline(), WithOnChange(func(warn bool) {
		flips = append(flips, warn)
	}))

	edited := baseline()
	edited["name"] = "South Brew"
	g.Observe(edited)
	g.Observe(edited) // no change, no callback
	edited["location"] = "South"
	g.Observe(edited) // still dirty, no callback
	g.MarkSaved()

	assert.Equal(t, []bool{true, false}, flips)
}
