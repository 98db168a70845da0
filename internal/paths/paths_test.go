package paths

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{".", ""},
		{"/", ""},
		{"file.txt", "file.txt"},
		{"/a/b/", "a/b"},
		{"a//b///c", "a/b/c"},
		{`a\b\c`, "a/b/c"},
		{"./a/./b", "a/b"},
		{"a/../b", "a/../b"}, // parent refs are kept
		{"cafe\u0301/x", "caf\u00e9/x"}, // NFD -> NFC
	}

	for _, tt := range tests {
		result := Normalize(tt.input)
		if result != tt.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestNormalizeRoot(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/Users/me/repo", "/Users/me/repo"},
		{"/Users/me/repo/", "/Users/me/repo"},
		{"/Users//me/repo", "/Users/me/repo"},
		{"/", "/"},
		{`C:\src\repo`, "C:/src/repo"},
		{`C:\`, "C:/"},
		{`\\server\share\repo`, "//server/share/repo"},
	}

	for _, tt := range tests {
		result := NormalizeRoot(tt.input)
		if result != tt.expected {
			t.Errorf("NormalizeRoot(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestTrimPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		prefix   string
		wantRest string
		wantOK   bool
	}{
		{"empty prefix", "a/b", "", "a/b", true},
		{"equal", "a/b", "a/b", "", true},
		{"child", "a/b/c.txt", "a/b", "c.txt", true},
		{"sibling with shared text", "a/bc", "a/b", "", false},
		{"unrelated", "x/y", "a", "", false},
		{"absolute root", "/repo/x", "/repo", "x", true},
		{"filesystem root", "/repo", "/", "repo", true},
		{"drive root", "C:/repo", "C:/", "repo", true},
		{"longer prefix", "a", "a/b", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rest, ok := TrimPrefix(tt.path, tt.prefix)
			if ok != tt.wantOK || rest != tt.wantRest {
				t.Errorf("TrimPrefix(%q, %q) = (%q, %v), want (%q, %v)",
					tt.path, tt.prefix, rest, ok, tt.wantRest, tt.wantOK)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	tests := []struct {
		base, rel, expected string
	}{
		{"", "", ""},
		{"a", "", "a"},
		{"", "b", "b"},
		{"a", "b/c", "a/b/c"},
		{"/", "repo", "/repo"},
	}

	for _, tt := range tests {
		result := Join(tt.base, tt.rel)
		if result != tt.expected {
			t.Errorf("Join(%q, %q) = %q, want %q", tt.base, tt.rel, result, tt.expected)
		}
	}
}

func TestIsAbs(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"/Users/me/repo", true},
		{`D:\GitHub`, true},
		{"C:/Users", true},
		{`\\server\share`, true},
		{"inner1/file.txt", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsAbs(tt.input); got != tt.expected {
			t.Errorf("IsAbs(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
