// Package workbench ties the editing core to configuration and
// persistence. Commands and the TUI consume App instead of
// cherry-picking raw dependencies.
package workbench

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/colonyops/hexbench/internal/core/config"
	"github.com/colonyops/hexbench/internal/core/session"
	"github.com/colonyops/hexbench/internal/core/source"
	"github.com/colonyops/hexbench/internal/data/db"
	"github.com/colonyops/hexbench/internal/data/stores"
)

// App is the central entry point for all hexbench operations.
type App struct {
	Config *config.Config
	DB     *db.DB
	Meta   *stores.MetaStore
	Recent *stores.RecentStore

	log zerolog.Logger
}

// NewApp constructs an App from explicit dependencies.
func NewApp(cfg *config.Config, database *db.DB, logger zerolog.Logger) *App {
	return &App{
		Config: cfg,
		DB:     database,
		Meta:   stores.NewMetaStore(database),
		Recent: stores.NewRecentStore(database),
		log:    logger,
	}
}

// OpenSession opens the file described by spec and builds a session
// around it, restoring persisted metadata and the last cursor position.
// Stream sources (stdin) have no path identity and get a fresh session.
func (a *App) OpenSession(ctx context.Context, spec source.OpenSpec) (*session.Session, error) {
	handle, err := source.Open(spec)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}

	prefs := session.Preferences{
		QuickEdit:    a.Config.Editing.QuickEdit,
		StickyEdit:   a.Config.Editing.StickyEdit,
		AutoSave:     a.Config.Editing.AutoSave,
		DebugOverlay: a.Config.TUI.DebugOverlay,
	}

	sess := session.New(handle, prefs, a.log)
	if handle.Attrs().Stream {
		return sess, nil
	}

	meta, err := a.Meta.Load(ctx, handle.Path())
	if err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("load metadata: %w", err)
	}
	sess.RestoreMeta(meta)

	if rf, err := a.Recent.Get(ctx, handle.Path()); err == nil {
		if n := handle.Source().Len(); n > 0 && rf.Cursor < n {
			sess.Cursor = rf.Cursor
		}
	}

	if err := a.Recent.Touch(ctx, handle.Path(), sess.Cursor, a.Config.TUI.Cols); err != nil {
		a.log.Warn().Err(err).Str("path", handle.Path()).Msg("failed to record recent file")
	}

	return sess, nil
}

// PersistSession stores the session's metadata and cursor position.
// Stream sessions are skipped: there is no path to key the rows on.
func (a *App) PersistSession(ctx context.Context, sess *session.Session, cols uint64) error {
	if sess.Handle().Attrs().Stream {
		return nil
	}
	path := sess.Handle().Path()

	if err := a.Meta.Save(ctx, path, sess.Meta()); err != nil {
		return fmt.Errorf("save metadata: %w", err)
	}
	if err := a.Recent.Touch(ctx, path, sess.Cursor, cols); err != nil {
		return fmt.Errorf("record recent file: %w", err)
	}
	return nil
}
