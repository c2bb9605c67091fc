package doctor

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/tremor/internal/errors"
	"github.com/rileyhilliard/tremor/internal/store"
	"github.com/rileyhilliard/tremor/internal/tremor"
)

// StoreOpener opens the store under test.
type StoreOpener func(ctx context.Context) (store.Store, error)

// StoreHandle opens the store at most once and shares it between the store
// checks. Close releases it.
type StoreHandle struct {
	open StoreOpener

	mu     sync.Mutex
	opened bool
	st     store.Store
	err    error
}

// NewStoreHandle wraps open.
func NewStoreHandle(open StoreOpener) *StoreHandle {
	return &StoreHandle{open: open}
}

// Get returns the store, opening it on first use.
func (h *StoreHandle) Get(ctx context.Context) (store.Store, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.opened {
		h.opened = true
		h.st, h.err = h.open(ctx)
	}
	return h.st, h.err
}

// Close closes the store if it was opened.
func (h *StoreHandle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.st == nil {
		return nil
	}
	err := h.st.Close()
	h.st = nil
	return err
}

// StoreConnectCheck opens the store and pings it.
type StoreConnectCheck struct {
	Handle  *StoreHandle
	Timeout time.Duration
}

func (c *StoreConnectCheck) Name() string     { return "store_connect" }
func (c *StoreConnectCheck) Category() string { return CategoryStore }

func (c *StoreConnectCheck) Run(ctx context.Context) CheckResult {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	start := time.Now()
	st, err := c.Handle.Get(ctx)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Cannot open store: %s", errors.Headline(err)),
			Suggestion: "Check store.driver and store.dsn",
		}
	}

	if err := st.Ping(ctx); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Store unreachable: %s", errors.Headline(err)),
			Suggestion: "Check the database is running and the DSN host, port and credentials are right",
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Store reachable (%s)", time.Since(start).Round(time.Millisecond)),
	}
}

// StoreSchemaCheck reads the newest row the way the dashboard does. An
// empty table is a warning: the dashboard shows its empty state.
type StoreSchemaCheck struct {
	Handle  *StoreHandle
	Table   string
	Timeout time.Duration
}

func (c *StoreSchemaCheck) Name() string     { return "store_schema" }
func (c *StoreSchemaCheck) Category() string { return CategoryStore }

func (c *StoreSchemaCheck) Run(ctx context.Context) CheckResult {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	st, err := c.Handle.Get(ctx)
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: fmt.Sprintf("Cannot read %s: store unavailable", c.Table),
		}
	}

	records, err := st.FetchRecent(ctx, 1)
	switch {
	case stderrors.Is(err, store.ErrMalformedRecord):
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Rows in %s do not match the expected columns", c.Table),
			Suggestion: "Run 'tremor migrate' against an empty database, or point store.table at the sensor table",
		}
	case err != nil:
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Query on %s failed: %s", c.Table, errors.Headline(err)),
			Suggestion: "Run 'tremor migrate' to create the table, or check store.table",
		}
	case len(records) == 0:
		return CheckResult{
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Table %s is empty", c.Table),
			Suggestion: "Check that the sensor pipeline is writing readings",
		}
	}

	newest := records[0]
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Newest reading #%d at %s", newest.ID, tremor.FullTime(newest.CreatedAt, nil)),
	}
}

// NewStoreChecks creates the store checks sharing h.
func NewStoreChecks(h *StoreHandle, table string, timeout time.Duration) []Check {
	return []Check{
		&StoreConnectCheck{Handle: h, Timeout: timeout},
		&StoreSchemaCheck{Handle: h, Table: table, Timeout: timeout},
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
