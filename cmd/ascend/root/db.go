package root

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"ascend/internal/config"
	"ascend/internal/engine"
	"ascend/internal/storage"
	"ascend/internal/ui"
)

func openDB(ctx context.Context) (*sql.DB, config.Config, func(), error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	path := cfg.DBPath
	if path == "" {
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, config.Config{}, nil, err
		}
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	svc := engine.NewService(db)
	svc.SetDefaultSettings(firstRunSettings(cfg))
	return svc, cleanup, nil
}

// firstRunSettings overlays config values on the built-in defaults. Only
// used when the progression row does not exist yet.
func firstRunSettings(cfg config.Config) storage.Settings {
	s := storage.DefaultSettings()
	if cfg.Settings.AnimationsEnabled != nil {
		s.AnimationsEnabled = *cfg.Settings.AnimationsEnabled
	}
	if cfg.Settings.SoundEnabled != nil {
		s.SoundEnabled = *cfg.Settings.SoundEnabled
	}
	if cfg.Settings.Theme != "" {
		s.Theme = cfg.Settings.Theme
	}
	if cfg.Settings.Notifications != nil {
		s.Notifications = *cfg.Settings.Notifications
	}
	return s
}

// reconcileAndReport settles missed days and prints a one-line summary when
// any penalty landed. Every mutating command calls this first.
func reconcileAndReport(ctx context.Context, svc *engine.Service, out io.Writer) error {
	rep, err := svc.Reconcile(ctx)
	if err != nil {
		return err
	}
	if len(rep.PenalizedDays) > 0 {
		fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Settled %d missed day(s): -%d points, -%d health",
			ui.IconClock, len(rep.PenalizedDays), rep.TotalPointPenalty, rep.TotalHealthLost)))
	}
	return nil
}
