package cells

import "errors"

// Error definitions for the cells package.
// Callers match them with errors.Is; the returned errors carry the offending value.
var (
	// Construction errors.
	ErrParse            = errors.New("failed to parse cell mapping")
	ErrConfigEmpty      = errors.New("no cells in cell mapping")
	ErrInconsistentRoot = errors.New("inconsistent cell root")
	ErrInvalidCellName  = errors.New("invalid cell name")

	// Lookup errors.
	ErrInvalidCellPath = errors.New("invalid cell path")
	ErrUnknownCell     = errors.New("unknown cell")
	ErrNoMatchingCell  = errors.New("path has no matching cell")
)
