// Package doctor runs the diagnostic checks behind `tremor doctor`: is there
// a config, does it validate, can the store be reached, and does the
// readings table answer the query the dashboard makes.
package doctor

import (
	"context"
	"encoding/json"
	"fmt"
)

// CheckStatus represents the result status of a check.
type CheckStatus int

const (
	StatusPass CheckStatus = iota
	StatusWarn
	StatusFail
)

// String returns a human-readable status string.
func (s CheckStatus) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusWarn:
		return "warn"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the status as its string form.
func (s CheckStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Categories, in the order doctor prints them.
const (
	CategoryConfig = "CONFIG"
	CategoryStore  = "STORE"
)

// CheckResult contains the outcome of running a check.
type CheckResult struct {
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Status     CheckStatus `json:"status"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Check defines the interface for diagnostic checks.
type Check interface {
	// Name returns the check's identifier.
	Name() string

	// Category returns the check's category (CONFIG or STORE).
	Category() string

	// Run executes the check and returns the result.
	Run(ctx context.Context) CheckResult
}

// RunAll executes checks in order and returns the results. Store checks
// share one connection, so they run sequentially.
func RunAll(ctx context.Context, checks []Check) []CheckResult {
	results := make([]CheckResult, len(checks))
	for i, check := range checks {
		r := check.Run(ctx)
		r.Name = check.Name()
		r.Category = check.Category()
		results[i] = r
	}
	return results
}

// CountByStatus counts results by status.
func CountByStatus(results []CheckResult) map[CheckStatus]int {
	counts := make(map[CheckStatus]int)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}

// HasFailures returns true if any result has a fail status.
func HasFailures(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

// HasIssues returns true if any result has a fail or warn status.
func HasIssues(results []CheckResult) bool {
	for _, r := range results {
		if r.Status == StatusFail || r.Status == StatusWarn {
			return true
		}
	}
	return false
}

// Summary returns a summary string of the check results.
func Summary(results []CheckResult) string {
	counts := CountByStatus(results)
	warn := counts[StatusWarn]
	fail := counts[StatusFail]

	if fail == 0 && warn == 0 {
		return "Everything looks good"
	}

	total := warn + fail
	return fmt.Sprintf("%d issue%s found", total, pluralize(total))
}

// Report is the JSON shape of `tremor doctor --json`.
type Report struct {
	Checks  []CheckResult `json:"checks"`
	Summary string        `json:"summary"`
	Healthy bool          `json:"healthy"`
}

// NewReport builds a Report from results.
func NewReport(results []CheckResult) Report {
	return Report{
		Checks:  results,
		Summary: Summary(results),
		Healthy: !HasFailures(results),
	}
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
