package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/rileyhilliard/tremor/internal/config"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/logger"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/ui"
)

// runMigrations is replaced in tests.
var runMigrations = store.Migrate

// migrateCommand checks the store answers, then creates the readings table.
func migrateCommand(ctx context.Context, w io.Writer) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	pd := ui.NewPhaseDisplay(w)

	err = pd.Step("Connecting to "+cfg.Store.Driver+" store", func() error {
		pingCtx, cancel := context.WithTimeout(ctx, cfg.Store.QueryTimeout)
		defer cancel()
		return st.Ping(pingCtx)
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Store is unreachable",
			doctorSuggestion)
	}

	name := fmt.Sprintf("Creating table %s", cfg.Store.Table)
	if !store.ManagesTable(cfg.Store) {
		pd.Skip(name, "SQL migrations only manage "+config.DefaultTable)
		pd.Newline()
		fmt.Fprintf(w, "Create %s yourself, or set store.table to %s.\n", cfg.Store.Table, config.DefaultTable)
		return nil
	}

	err = pd.Step(name, func() error {
		return runMigrations(ctx, cfg.Store, logger.NewEnvLogger("[store]"))
	})
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrStore,
			"Migration failed",
			"Check the DSN user can create tables")
	}

	pd.RenderSubStatus(ui.SymbolComplete, "driver", cfg.Store.Driver)
	pd.RenderSubStatus(ui.SymbolComplete, "table", cfg.Store.Table)
	pd.Divider()
	fmt.Fprintf(w, "%s Schema ready. tremor only reads from %s; the sensor pipeline fills it.\n",
		ui.SymbolSuccess, cfg.Store.Table)
	return nil
}
