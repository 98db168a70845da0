// Package paths provides the forward-slash path primitives used by cell resolution.
//
// Cell roots come from the build system as host paths (POSIX, Windows drive or UNC).
// Everything past the common repository root is handled as a normalized,
// relative, forward-slash path with no leading or trailing separator.
package paths

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Separator is the only separator used in normalized paths.
const Separator = "/"

// driveRootRe matches a bare Windows drive root like "C:/".
var driveRootRe = regexp.MustCompile(`^[A-Za-z]:/$`)

// windowsPathRe matches Windows-style paths like D:\GitHub or C:/Users.
var windowsPathRe = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// toSlash converts backslashes to forward slashes and applies Unicode NFC
// normalization so composed and decomposed spellings of a name compare equal.
func toSlash(path string) string {
	return norm.NFC.String(strings.ReplaceAll(path, "\\", "/"))
}

// collapseSlashes replaces every run of separators with a single one.
func collapseSlashes(path string) string {
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	return path
}

// Normalize turns a relative path into its canonical form:
// forward slashes, no duplicate separators, no "." segments,
// and no leading or trailing separator. The empty string is the root.
//
// ".." segments are kept verbatim; resolving them would require knowing
// where the path is anchored.
func Normalize(path string) string {
	path = collapseSlashes(toSlash(path))
	if path == "" || path == "." || path == "/" {
		return ""
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	kept := parts[:0]
	for _, p := range parts {
		if p == "." || p == "" {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, Separator)
}

// NormalizeRoot canonicalizes a physical root as reported by the build system.
// Separators are unified and collapsed and a trailing separator is removed,
// except for filesystem roots ("/", "C:/") which keep it.
func NormalizeRoot(root string) string {
	root = toSlash(root)
	unc := strings.HasPrefix(root, "//")
	root = collapseSlashes(root)
	if unc {
		root = "/" + root
	}
	if root == "/" || driveRootRe.MatchString(root) {
		return root
	}
	return strings.TrimRight(root, "/")
}

// TrimPrefix strips prefix from path on a segment boundary and returns the
// remainder without its leading separator. ok is false when prefix is not an
// ancestor of (or equal to) path: "a/b" is a prefix of "a/b/c" but not of "a/bc".
// The empty prefix is an ancestor of every path.
func TrimPrefix(path, prefix string) (rest string, ok bool) {
	if prefix == "" {
		return strings.TrimLeft(path, "/"), true
	}
	if !strings.HasPrefix(path, prefix) {
		return "", false
	}
	rest = path[len(prefix):]
	switch {
	case rest == "":
		return "", true
	case strings.HasSuffix(prefix, "/"):
		return strings.TrimLeft(rest, "/"), true
	case rest[0] != '/':
		return "", false
	default:
		return strings.TrimLeft(rest, "/"), true
	}
}

// Join appends rel to base as a child path. Either side may be empty.
func Join(base, rel string) string {
	switch {
	case rel == "":
		return base
	case base == "":
		return rel
	case strings.HasSuffix(base, "/"):
		return base + rel
	default:
		return base + Separator + rel
	}
}

// IsAbs reports whether path is a physical path rather than a project-relative one:
// POSIX absolute, UNC, or carrying a Windows drive letter. It does not depend on the host OS.
func IsAbs(path string) bool {
	return strings.HasPrefix(path, "/") || strings.HasPrefix(path, "\\") || windowsPathRe.MatchString(path)
}
