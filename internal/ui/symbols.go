package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Check passed
	SymbolFail     = "✗" // Check or step failed
	SymbolPending  = "○" // Not yet started
	SymbolProgress = "◐" // In progress
	SymbolComplete = "●" // Step done
	SymbolSkipped  = "⊘" // Step skipped
	SymbolTremor   = "▲" // Reading flagged as a tremor
)
