// Package session owns the single open source of an editor session and
// orchestrates the edit lifecycle around it: writes widen damage tracking,
// saves clear it, reloads discard it. Views and perspectives reach bytes
// only through the session.
package session

import (
	"github.com/rs/zerolog"

	"github.com/colonyops/hexbench/internal/core/damage"
	"github.com/colonyops/hexbench/internal/core/geom"
	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/core/view"
)

// Preferences are the editing toggles a session carries. They mirror the
// config file's editing section.
type Preferences struct {
	// QuickEdit commits after a single typed digit.
	QuickEdit bool
	// StickyEdit keeps the cursor in place after a commit.
	StickyEdit bool
	// AutoSave saves after every committed edit.
	AutoSave bool
	// DebugOverlay enables the debug overlay in the TUI. A session field
	// rather than a process-wide toggle.
	DebugOverlay bool
}

// Session is the editing state for one open file or stream.
type Session struct {
	handle *source.Handle
	damage damage.Tracker
	meta   *Meta

	// Cursor is the byte offset being edited.
	Cursor uint64
	Prefs  Preferences

	log  zerolog.Logger
	warn func(msg string)
}

// New creates a session around an opened handle.
func New(handle *source.Handle, prefs Preferences, logger zerolog.Logger) *Session {
	return &Session{
		handle: handle,
		meta:   NewMeta(),
		Prefs:  prefs,
		log:    logger.With().Str("component", "session").Logger(),
	}
}

// SetWarnFunc installs the sink for transient user-visible warnings.
func (s *Session) SetWarnFunc(fn func(msg string)) { s.warn = fn }

// Warn surfaces a transient warning to the user and the log.
func (s *Session) Warn(msg string) {
	s.log.Warn().Msg(msg)
	if s.warn != nil {
		s.warn(msg)
	}
}

// Source returns the session's byte source.
func (s *Session) Source() source.Source { return s.handle.Source() }

// Handle returns the underlying file binding.
func (s *Session) Handle() *source.Handle { return s.handle }

// Meta returns the keyed collections of named regions, perspectives and
// bookmarks.
func (s *Session) Meta() *Meta { return s.meta }

// RestoreMeta swaps in collections loaded from persistence. A nil meta
// is ignored so callers can pass a failed load straight through.
func (s *Session) RestoreMeta(m *Meta) {
	if m != nil {
		s.meta = m
	}
}

// Dirty reports whether unsaved edits are pending.
func (s *Session) Dirty() bool { return s.damage.Dirty() }

// DamageRegion returns the pending damage range, if any.
func (s *Session) DamageRegion() (geom.Region, bool) { return s.damage.Tracked() }

// WriteByte writes a byte at offset and widens the damage tracking.
func (s *Session) WriteByte(offset uint64, b byte) error {
	if err := s.handle.Source().WriteByteAt(offset, b); err != nil {
		return err
	}
	s.damage.WidenSingle(offset)
	return nil
}

// FillRegion writes the same byte over an inclusive region and widens the
// damage tracking with it.
func (s *Session) FillRegion(r geom.Region, b byte) error {
	data, err := s.handle.Source().MutRange(r)
	if err != nil {
		return err
	}
	for i := range data {
		data[i] = b
	}
	s.damage.WidenRegion(r)
	return nil
}

// EditContext builds the per-keystroke edit collaborators for a view.
func (s *Session) EditContext() *view.EditContext {
	return &view.EditContext{
		Source:     s.handle.Source(),
		Damage:     &s.damage,
		Cursor:     &s.Cursor,
		QuickEdit:  s.Prefs.QuickEdit,
		StickyEdit: s.Prefs.StickyEdit,
		Warn:       s.Warn,
	}
}

// Save writes pending edits back to the file: only the damaged range when
// one is tracked, the full contents otherwise. Tracking is cleared only
// after the write succeeded, so a failed save can be retried over the same
// range.
func (s *Session) Save() error {
	region, tracked := s.damage.Tracked()
	if err := s.handle.Save(region, tracked); err != nil {
		return err
	}
	s.damage.Clear()
	s.log.Info().Bool("minimal", tracked).Msg("saved")
	return nil
}

// Reload replaces the source from the backing file, discarding unsaved
// edits and damage tracking.
func (s *Session) Reload() error {
	if err := s.handle.Reload(); err != nil {
		return err
	}
	s.damage.Clear()
	if n := s.handle.Source().Len(); s.Cursor >= n && n > 0 {
		s.Cursor = n - 1
	}
	return nil
}

// CreateBackup copies the open file to its backup sibling.
func (s *Session) CreateBackup() error { return s.handle.Backup() }

// RestoreBackup copies the backup over the open file and reloads.
func (s *Session) RestoreBackup() error {
	if err := s.handle.RestoreBackup(); err != nil {
		return err
	}
	s.damage.Clear()
	return nil
}

// SearchAll collects every match offset of needle over the full current
// source contents, including overlapping matches.
func (s *Session) SearchAll(needle []byte) []uint64 {
	var out []uint64
	for off := range s.handle.Source().Find(needle) {
		out = append(out, off)
	}
	return out
}

// StepCursorForward moves the cursor one byte forward, stopping at the
// last byte.
func (s *Session) StepCursorForward() {
	if s.Cursor+1 < s.handle.Source().Len() {
		s.Cursor++
	}
}

// StepCursorBack moves the cursor one byte back, stopping at zero.
func (s *Session) StepCursorBack() {
	if s.Cursor > 0 {
		s.Cursor--
	}
}

// Close releases the source and file resources. The session must not be
// used afterwards.
func (s *Session) Close() error {
	return s.handle.Close()
}
