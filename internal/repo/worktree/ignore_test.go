package worktree

import (
	"testing"

	"github.com/keshon/gitlet/internal/fs"
)

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pat  string
		path string
		want bool
	}{
		// exact
		{"foo.txt", "foo.txt", true},
		{"foo.txt", "bar.txt", false},

		// wildcard *
		{"*.txt", "foo.txt", true},
		{"*.txt", "bar.log", false},
		{"foo*", "foobar", true},
		{"foo*", "barfoo", false},

		// single-char ?
		{"file?.txt", "file1.txt", true},
		{"file?.txt", "file12.txt", false},

		// nested paths
		{"dir/*.txt", "dir/foo.txt", true},
		{"dir/*.txt", "dir/sub/foo.txt", false},

		// double-star recursive
		{"dir/**", "dir/foo.txt", true},
		{"dir/**", "dir/sub/deep/foo.txt", true},
		{"dir/**", "dir", false},
		{"dir/**", "other/foo.txt", false},

		// double-star in middle
		{"dir/**/foo.txt", "dir/foo.txt", true},
		{"dir/**/foo.txt", "dir/a/b/c/foo.txt", true},
		{"dir/**/foo.txt", "dir/bar/baz.txt", false},

		// trailing slash
		{"dir/**/", "dir/sub", true},
		{"dir/**/", "other", false},
		{"build/", "build", true},

		// leading **
		{"**/*.txt", "a.txt", true},
		{"**/*.txt", "a/b/c.txt", true},
		{"**/*.txt", "a/b/c.log", false},

		// empty
		{"", "foo", false},
		{"/", "foo", false},
	}

	for _, tt := range cases {
		got := matchPattern(tt.pat, tt.path)
		if got != tt.want {
			t.Errorf("pattern %q path %q => got %v, want %v", tt.pat, tt.path, got, tt.want)
		}
	}
}

func TestNewIgnoreReadsPatterns(t *testing.T) {
	m := fs.NewMemoryFS()
	if err := m.MkdirAll("work", 0o755); err != nil {
		t.Fatal(err)
	}
	content := "# editor files\n*.swp\n\n  notes.md  \nbuild/**\n"
	if err := m.WriteFile("work/.gitletignore", []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ig, err := NewIgnore(m, "work/.gitletignore")
	if err != nil {
		t.Fatalf("NewIgnore failed: %v", err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{".gitlet", true},
		{"a.swp", true},
		{"notes.md", true},
		{"build/out.bin", true},
		{"# editor files", false},
		{"main.go", false},
	}
	for _, tt := range cases {
		if got := ig.Match(tt.path); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNewIgnoreMissingFile(t *testing.T) {
	ig, err := NewIgnore(fs.NewMemoryFS(), "nowhere/.gitletignore")
	if err != nil {
		t.Fatalf("missing ignore file must not fail: %v", err)
	}
	if ig.Match("a.txt") {
		t.Error("nothing but the repository directory is ignored by default")
	}
	if !ig.Match(".gitlet") {
		t.Error("repository directory must always be ignored")
	}
}
