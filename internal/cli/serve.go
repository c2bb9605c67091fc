package cli

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/tremor/internal/api"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/logger"
)

// serveCommand runs the JSON API until ctx is cancelled.
func serveCommand(ctx context.Context, addrFlag string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log := logger.NewEnvLogger("[api]")
	handler := api.New(api.Config{
		Store:         st,
		Logger:        log,
		QueryTimeout:  cfg.Store.QueryTimeout,
		HistoryLimit:  cfg.Dashboard.HistoryLimit,
		EventLogLimit: cfg.Dashboard.EventLogLimit,
	}).Routes()

	if err := api.Serve(ctx, addr, handler, log); err != nil {
		return errors.WrapWithCode(err, errors.ErrServe,
			fmt.Sprintf("API server on %s stopped", addr),
			"Check the address is free, or pick another with --addr")
	}
	return nil
}
