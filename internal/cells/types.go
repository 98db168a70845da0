package cells

import (
	"fmt"
	"strings"

	"github.com/sungur/cells/internal/paths"
)

// cellSeparator separates the cell name from the cell-relative path in "cell//path".
const cellSeparator = "//"

// CellName identifies a cell, e.g. "root" or "prelude".
type CellName string

func (c CellName) String() string { return string(c) }

// Join builds the CellPath for rel inside this cell.
func (c CellName) Join(rel CellRelativePath) CellPath {
	return CellPath{Cell: c, Path: rel}
}

// ProjectRelativePath is a path relative to the repository checkout root.
// The zero value is the root itself.
type ProjectRelativePath string

// NewProjectRelativePath normalizes p into a ProjectRelativePath.
func NewProjectRelativePath(p string) ProjectRelativePath {
	return ProjectRelativePath(paths.Normalize(p))
}

func (p ProjectRelativePath) String() string { return string(p) }

// Join appends rel as a child path.
func (p ProjectRelativePath) Join(rel string) ProjectRelativePath {
	return ProjectRelativePath(paths.Join(string(p), rel))
}

// CellRelativePath is a path relative to the root of some cell.
type CellRelativePath string

// NewCellRelativePath normalizes p into a CellRelativePath.
func NewCellRelativePath(p string) CellRelativePath {
	return CellRelativePath(paths.Normalize(p))
}

func (p CellRelativePath) String() string { return string(p) }

// CellPath is a fully qualified address: a cell plus a path inside it.
type CellPath struct {
	Cell CellName
	Path CellRelativePath
}

// NewCellPath builds a CellPath, normalizing the relative part.
func NewCellPath(cell, path string) CellPath {
	return CellPath{Cell: CellName(cell), Path: NewCellRelativePath(path)}
}

// ParseCellPath parses the "cell//path" form.
func ParseCellPath(s string) (CellPath, error) {
	cell, rest, found := strings.Cut(s, cellSeparator)
	if !found {
		return CellPath{}, fmt.Errorf("%w: %q has no %q separator", ErrInvalidCellPath, s, cellSeparator)
	}
	if cell == "" {
		return CellPath{}, fmt.Errorf("%w: %q has an empty cell name", ErrInvalidCellPath, s)
	}
	return NewCellPath(cell, rest), nil
}

// MustParseCellPath is ParseCellPath for constants and tests. It panics on malformed input.
func MustParseCellPath(s string) CellPath {
	p, err := ParseCellPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String renders the path as "cell//path".
func (p CellPath) String() string {
	return string(p.Cell) + cellSeparator + string(p.Path)
}
