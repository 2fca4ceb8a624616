// Package damage tracks the minimal byte range modified since the last save,
// so a save only has to rewrite the bytes that actually changed.
package damage

import (
	"fmt"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// Tracker accumulates the bounding range of all edits since the last save.
// The zero value tracks nothing. The tracked range only ever widens until
// Clear is called after a successful write.
type Tracker struct {
	region  geom.Region
	tracked bool
}

// Tracked returns the current damage region. ok is false when no edits are
// pending.
func (t *Tracker) Tracked() (geom.Region, bool) {
	return t.region, t.tracked
}

// Dirty reports whether any unsaved edits are pending.
func (t *Tracker) Dirty() bool {
	return t.tracked
}

// WidenSingle records damage to a single byte offset.
func (t *Tracker) WidenSingle(offset uint64) {
	t.widen(offset, offset, true)
}

// WidenRegion records damage to an inclusive byte range.
func (t *Tracker) WidenRegion(r geom.Region) {
	t.widen(r.Begin, r.End, true)
}

// Widen records damage starting at begin, extending to end when hasEnd is
// set. A supplied end that would shrink the range below the tracked begin is
// a caller bug and panics.
func (t *Tracker) Widen(begin, end uint64, hasEnd bool) {
	t.widen(begin, end, hasEnd)
}

func (t *Tracker) widen(begin, end uint64, hasEnd bool) {
	if !t.tracked {
		if !hasEnd {
			end = begin
		}
		t.region = geom.NewRegion(begin, end)
		t.tracked = true
		return
	}

	if begin < t.region.Begin {
		t.region.Begin = begin
	}
	if begin > t.region.End {
		t.region.End = begin
	}
	if hasEnd {
		if end < t.region.Begin {
			panic(fmt.Sprintf("damage: widen end %d shrinks below tracked begin %d", end, t.region.Begin))
		}
		if end > t.region.End {
			t.region.End = end
		}
	}
}

// Clear forgets all tracked damage. Called after a successful save; a failed
// save must leave the tracker intact so a retry covers the same range.
func (t *Tracker) Clear() {
	t.tracked = false
	t.region = geom.Region{}
}
