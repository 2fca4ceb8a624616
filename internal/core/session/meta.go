package session

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/colonyops/hexbench/internal/core/geom"
)

// Keys into the session's named collections. Ownership is index-based:
// components store keys and re-look-up on use, so a deleted entry is a
// lookup miss rather than a dangling reference.
type (
	RegionKey      uint64
	PerspectiveKey uint64
	BookmarkKey    uint64
)

// NamedRegion is a user-named byte range within the source.
type NamedRegion struct {
	Name   string
	Desc   string
	Region geom.Region
}

// NamedPerspective is a user-named grid reinterpretation of a named region.
type NamedPerspective struct {
	Name         string
	Region       RegionKey
	Cols         uint64
	FlipRowOrder bool
}

// Bookmark marks a single byte offset with a label.
type Bookmark struct {
	Name   string
	Offset uint64
}

// Meta holds the keyed collections persistence layers and the TUI call
// into: named regions, perspectives over them, and bookmarks.
type Meta struct {
	regions      map[RegionKey]*NamedRegion
	perspectives map[PerspectiveKey]*NamedPerspective
	bookmarks    map[BookmarkKey]*Bookmark

	nextRegion      RegionKey
	nextPerspective PerspectiveKey
	nextBookmark    BookmarkKey
}

// NewMeta creates empty collections.
func NewMeta() *Meta {
	return &Meta{
		regions:      map[RegionKey]*NamedRegion{},
		perspectives: map[PerspectiveKey]*NamedPerspective{},
		bookmarks:    map[BookmarkKey]*Bookmark{},
	}
}

// AddRegion inserts a named region and returns its key.
func (m *Meta) AddRegion(r NamedRegion) RegionKey {
	m.nextRegion++
	key := m.nextRegion
	m.regions[key] = &r
	return key
}

// Region looks up a named region by key.
func (m *Meta) Region(key RegionKey) (*NamedRegion, bool) {
	r, ok := m.regions[key]
	return r, ok
}

// RemoveRegion deletes a region and cascades to every perspective
// referencing it, returning the keys of the perspectives that were
// dropped. A perspective without its region would be unable to answer any
// coordinate query.
func (m *Meta) RemoveRegion(key RegionKey) (dropped []PerspectiveKey) {
	if _, ok := m.regions[key]; !ok {
		return nil
	}
	delete(m.regions, key)
	for pk, p := range m.perspectives {
		if p.Region == key {
			delete(m.perspectives, pk)
			dropped = append(dropped, pk)
		}
	}
	slices.Sort(dropped)
	return dropped
}

// RegionKeys returns all region keys in insertion order.
func (m *Meta) RegionKeys() []RegionKey {
	keys := make([]RegionKey, 0, len(m.regions))
	for k := range m.regions {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// AddPerspective inserts a named perspective. Fails when the referenced
// region does not exist or the column count is zero.
func (m *Meta) AddPerspective(p NamedPerspective) (PerspectiveKey, error) {
	if _, ok := m.regions[p.Region]; !ok {
		return 0, fmt.Errorf("perspective %q references missing region %d", p.Name, p.Region)
	}
	if p.Cols == 0 {
		return 0, fmt.Errorf("perspective %q has zero columns", p.Name)
	}
	m.nextPerspective++
	key := m.nextPerspective
	m.perspectives[key] = &p
	return key, nil
}

// PerspectiveFromRegion derives a perspective named after the region, with
// the region's full span as one row per defaultCols bytes.
func (m *Meta) PerspectiveFromRegion(key RegionKey, defaultCols uint64) (PerspectiveKey, error) {
	r, ok := m.regions[key]
	if !ok {
		return 0, fmt.Errorf("missing region %d", key)
	}
	return m.AddPerspective(NamedPerspective{
		Name:   r.Name,
		Region: key,
		Cols:   defaultCols,
	})
}

// Perspective looks up a named perspective by key.
func (m *Meta) Perspective(key PerspectiveKey) (*NamedPerspective, bool) {
	p, ok := m.perspectives[key]
	return p, ok
}

// RemovePerspective deletes a perspective.
func (m *Meta) RemovePerspective(key PerspectiveKey) {
	delete(m.perspectives, key)
}

// PerspectiveKeys returns all perspective keys in insertion order.
func (m *Meta) PerspectiveKeys() []PerspectiveKey {
	keys := make([]PerspectiveKey, 0, len(m.perspectives))
	for k := range m.perspectives {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Resolve materializes the grid math for a named perspective. Fails when
// the backing region has been removed.
func (m *Meta) Resolve(key PerspectiveKey) (geom.Perspective, error) {
	p, ok := m.perspectives[key]
	if !ok {
		return geom.Perspective{}, fmt.Errorf("missing perspective %d", key)
	}
	r, ok := m.regions[p.Region]
	if !ok {
		return geom.Perspective{}, fmt.Errorf("perspective %q references removed region %d", p.Name, p.Region)
	}
	return geom.Perspective{
		Region:       r.Region,
		Cols:         p.Cols,
		FlipRowOrder: p.FlipRowOrder,
	}, nil
}

// Snapshot is a dump of the collections with their keys, used by the
// persistence layer. Restoring from a snapshot keeps keys stable across
// runs so perspective-to-region references survive a round trip.
type Snapshot struct {
	Regions      map[RegionKey]NamedRegion
	Perspectives map[PerspectiveKey]NamedPerspective
	Bookmarks    map[BookmarkKey]Bookmark
}

// Snapshot copies the current collections.
func (m *Meta) Snapshot() Snapshot {
	s := Snapshot{
		Regions:      make(map[RegionKey]NamedRegion, len(m.regions)),
		Perspectives: make(map[PerspectiveKey]NamedPerspective, len(m.perspectives)),
		Bookmarks:    make(map[BookmarkKey]Bookmark, len(m.bookmarks)),
	}
	for k, r := range m.regions {
		s.Regions[k] = *r
	}
	for k, p := range m.perspectives {
		s.Perspectives[k] = *p
	}
	for k, b := range m.bookmarks {
		s.Bookmarks[k] = *b
	}
	return s
}

// MetaFromSnapshot rebuilds collections from a snapshot. Key counters
// resume past the highest restored key so new entries never collide.
// Perspectives whose region is missing from the snapshot are dropped.
func MetaFromSnapshot(s Snapshot) *Meta {
	m := NewMeta()
	for k, r := range s.Regions {
		m.regions[k] = &r
		m.nextRegion = max(m.nextRegion, k)
	}
	for k, p := range s.Perspectives {
		if _, ok := m.regions[p.Region]; !ok {
			continue
		}
		m.perspectives[k] = &p
		m.nextPerspective = max(m.nextPerspective, k)
	}
	for k, b := range s.Bookmarks {
		m.bookmarks[k] = &b
		m.nextBookmark = max(m.nextBookmark, k)
	}
	return m
}

// AddBookmark inserts a bookmark and returns its key.
func (m *Meta) AddBookmark(b Bookmark) BookmarkKey {
	m.nextBookmark++
	key := m.nextBookmark
	m.bookmarks[key] = &b
	return key
}

// Bookmark looks up a bookmark by key.
func (m *Meta) Bookmark(key BookmarkKey) (*Bookmark, bool) {
	b, ok := m.bookmarks[key]
	return b, ok
}

// RemoveBookmark deletes a bookmark.
func (m *Meta) RemoveBookmark(key BookmarkKey) {
	delete(m.bookmarks, key)
}

// Bookmarks returns all bookmarks sorted by offset.
func (m *Meta) Bookmarks() []Bookmark {
	out := make([]Bookmark, 0, len(m.bookmarks))
	for _, b := range m.bookmarks {
		out = append(out, *b)
	}
	slices.SortFunc(out, func(a, b Bookmark) int {
		return cmp.Compare(a.Offset, b.Offset)
	})
	return out
}
