// Package cells translates between cell paths ("cell//path") and paths
// relative to the repository checkout.
//
// A Resolver is built once from the cell mapping reported by the build system
// (cell name to physical root) and is read-only afterwards, so it can be shared
// between goroutines without locking.
package cells

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/sungur/cells/internal/paths"
)

// Cell is one entry of the resolver: a name and its root relative to the checkout.
type Cell struct {
	Name   CellName
	Prefix ProjectRelativePath
}

// Resolver converts between CellPath and ProjectRelativePath.
type Resolver struct {
	root  string
	cells map[CellName]ProjectRelativePath
	// Sorted by prefix length, longest first, so the first match is the most specific cell.
	paths []Cell
}

// Load reads a JSON cell mapping from file and builds a Resolver from it.
func Load(file string) (*Resolver, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell mapping %s: %w", file, err)
	}
	return Parse(string(data))
}

// Parse builds a Resolver from a JSON object mapping cell names to physical roots,
// as printed by `buck2 audit cell --json`.
func Parse(data string) (*Resolver, error) {
	var roots map[string]string
	if err := json.Unmarshal([]byte(data), &roots); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return New(roots)
}

// New builds a Resolver from cell names and their physical roots.
//
// The shortest root is taken as the repository root and must be an ancestor of
// every other root; the remainder of each root becomes that cell's prefix.
func New(roots map[string]string) (*Resolver, error) {
	if len(roots) == 0 {
		return nil, ErrConfigEmpty
	}

	normalized := make(map[string]string, len(roots))
	var rootName string
	for name, root := range roots {
		if name == "" {
			return nil, fmt.Errorf("%w: empty name for root %q", ErrInvalidCellName, root)
		}
		root = paths.NormalizeRoot(root)
		normalized[name] = root

		// Ties go to the smallest name so the chosen root does not depend on map order.
		if prev, ok := normalized[rootName]; !ok || len(root) < len(prev) ||
			(len(root) == len(prev) && name < rootName) {
			rootName = name
		}
	}
	common := normalized[rootName]

	r := &Resolver{
		root:  common,
		cells: make(map[CellName]ProjectRelativePath, len(normalized)),
		paths: make([]Cell, 0, len(normalized)),
	}
	for name, root := range normalized {
		rest, ok := paths.TrimPrefix(root, common)
		if !ok {
			return nil, fmt.Errorf("%w: expected cell %q to start with %q, but got %q",
				ErrInconsistentRoot, name, common, roots[name])
		}
		prefix := NewProjectRelativePath(rest)
		r.cells[CellName(name)] = prefix
		r.paths = append(r.paths, Cell{Name: CellName(name), Prefix: prefix})
	}

	slices.SortFunc(r.paths, func(a, b Cell) int {
		if c := cmp.Compare(len(b.Prefix), len(a.Prefix)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	return r, nil
}

// Resolve turns a CellPath into a path relative to the repository root.
func (r *Resolver) Resolve(path CellPath) (ProjectRelativePath, error) {
	prefix, ok := r.cells[path.Cell]
	if !ok {
		return "", fmt.Errorf("%w %q in %s", ErrUnknownCell, path.Cell, path)
	}
	return prefix.Join(paths.Normalize(string(path.Path))), nil
}

// Unresolve finds the most specific cell containing path and returns the
// path relative to that cell. path is normalized first.
//
// The cell owning the repository root has the empty prefix and therefore
// catches every relative path, so for a Resolver built by New this only fails
// through UnresolveAbsolute with a path outside Root.
func (r *Resolver) Unresolve(path ProjectRelativePath) (CellPath, error) {
	path = ProjectRelativePath(paths.Normalize(string(path)))
	for _, c := range r.paths {
		if rest, ok := paths.TrimPrefix(string(path), string(c.Prefix)); ok {
			return c.Name.Join(CellRelativePath(rest)), nil
		}
	}
	return CellPath{}, fmt.Errorf("%w: %q", ErrNoMatchingCell, path)
}

// ResolveAbsolute turns a CellPath into a physical path under Root.
func (r *Resolver) ResolveAbsolute(path CellPath) (string, error) {
	rel, err := r.Resolve(path)
	if err != nil {
		return "", err
	}
	return paths.Join(r.root, string(rel)), nil
}

// UnresolveAbsolute maps a physical path under Root back to a CellPath.
func (r *Resolver) UnresolveAbsolute(physical string) (CellPath, error) {
	rest, ok := paths.TrimPrefix(paths.NormalizeRoot(physical), r.root)
	if !ok {
		return CellPath{}, fmt.Errorf("%w: %q is outside the repository root %q", ErrNoMatchingCell, physical, r.root)
	}
	return r.Unresolve(NewProjectRelativePath(rest))
}

// Root returns the physical repository root shared by all cells.
func (r *Resolver) Root() string {
	return r.root
}

// Prefix returns the root of the named cell relative to the repository root.
func (r *Resolver) Prefix(name CellName) (ProjectRelativePath, bool) {
	p, ok := r.cells[name]
	return p, ok
}

// Cells returns every cell sorted by name.
func (r *Resolver) Cells() []Cell {
	out := slices.Clone(r.paths)
	slices.SortFunc(out, func(a, b Cell) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Len returns the number of cells.
func (r *Resolver) Len() int {
	return len(r.cells)
}
