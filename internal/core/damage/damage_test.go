package damage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/hexbench/internal/core/geom"
)

func TestTracker_StartsUntracked(t *testing.T) {
	var tr Tracker
	_, ok := tr.Tracked()
	assert.False(t, ok)
	assert.False(t, tr.Dirty())
}

func TestTracker_WidenGrowsBothEnds(t *testing.T) {
	var tr Tracker

	tr.WidenSingle(5)
	r, ok := tr.Tracked()
	require.True(t, ok)
	assert.Equal(t, geom.Region{Begin: 5, End: 5}, r)

	tr.Widen(3, 10, true)
	r, ok = tr.Tracked()
	require.True(t, ok)
	assert.Equal(t, geom.Region{Begin: 3, End: 10}, r)
}

func TestTracker_WidenNeverShrinks(t *testing.T) {
	var tr Tracker
	tr.Widen(3, 10, true)

	// Edits inside the tracked range leave it unchanged.
	tr.WidenSingle(7)
	r, _ := tr.Tracked()
	assert.Equal(t, geom.Region{Begin: 3, End: 10}, r)

	// A single begin past the end extends the end.
	tr.WidenSingle(20)
	r, _ = tr.Tracked()
	assert.Equal(t, geom.Region{Begin: 3, End: 20}, r)
}

func TestTracker_WidenRegion(t *testing.T) {
	var tr Tracker
	tr.WidenRegion(geom.NewRegion(10, 20))
	tr.WidenRegion(geom.NewRegion(5, 12))

	r, ok := tr.Tracked()
	require.True(t, ok)
	assert.Equal(t, geom.Region{Begin: 5, End: 20}, r)
}

func TestTracker_ShrinkingEndPanics(t *testing.T) {
	var tr Tracker
	tr.Widen(5, 10, true)

	assert.Panics(t, func() { tr.Widen(6, 4, true) })
}

func TestTracker_Clear(t *testing.T) {
	var tr Tracker
	tr.WidenSingle(42)
	require.True(t, tr.Dirty())

	tr.Clear()
	_, ok := tr.Tracked()
	assert.False(t, ok)

	// Tracking starts fresh after a clear.
	tr.WidenSingle(1)
	r, _ := tr.Tracked()
	assert.Equal(t, geom.Region{Begin: 1, End: 1}, r)
}
