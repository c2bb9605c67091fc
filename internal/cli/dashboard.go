package cli

import (
	"context"
	stderrors "errors"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/tremor/internal/dashboard"
	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/logger"
)

const defaultLogFile = "tremor-debug.log"

// dashboardCommand runs the Bubble Tea dashboard until the user quits or ctx
// is cancelled.
func dashboardCommand(ctx context.Context, intervalFlag string) error {
	interval, err := ParseInterval(intervalFlag)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Dashboard.PollInterval = interval
	}

	restore, err := redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore()

	st, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	model := dashboard.NewModel(dashboard.OptionsFromConfig(cfg, st, logger.NewEnvLogger("[dashboard]")))

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	if err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard exited unexpectedly",
			"Re-run with --log-file to capture what happened")
	}
	return nil
}

// redirectLogs keeps log lines off the alternate screen. They go to path
// when given, to a debug file when TREMOR_DEBUG is set, and nowhere otherwise.
func redirectLogs(path string) (func(), error) {
	prevOut, prevFlags, prevPrefix := log.Writer(), log.Flags(), log.Prefix()
	restore := func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		log.SetPrefix(prevPrefix)
	}

	if path == "" && logger.DebugEnabled() {
		path = defaultLogFile
	}
	if path == "" {
		log.SetOutput(io.Discard)
		return restore, nil
	}

	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't open the log file "+path,
			"Check the directory exists and is writable")
	}
	return func() {
		f.Close()
		restore()
	}, nil
}
