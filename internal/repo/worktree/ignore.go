package worktree

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keshon/gitlet/internal/config"
	"github.com/keshon/gitlet/internal/fs"
)

// Ignore decides which working-tree paths are never listed.
type Ignore struct {
	static  map[string]bool
	pattern []string
}

// NewIgnore loads the built-in exclusions plus the patterns in path, one per
// line. Blank lines and lines starting with # are skipped. A missing file
// yields only the built-in exclusions.
func NewIgnore(fsys fs.FS, path string) (*Ignore, error) {
	m := &Ignore{static: map[string]bool{config.RepoDir: true}}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if fsys.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read ignore file %q: %w", path, err)
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m.pattern = append(m.pattern, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to parse ignore file %q: %w", path, err)
	}
	return m, nil
}

// Match returns true if the path should be ignored
func (m *Ignore) Match(path string) bool {
	clean := filepath.ToSlash(filepath.Clean(path))

	if m.static[clean] {
		return true
	}

	for _, pat := range m.pattern {
		if matchPattern(pat, clean) {
			return true
		}
	}

	return false
}

// matchPattern handles *, ?, and ** like Git. A trailing slash is dropped.
func matchPattern(pattern, path string) bool {
	pattern = strings.TrimSuffix(filepath.ToSlash(pattern), "/")
	if pattern == "" {
		return false
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(path, "/"))
}

func matchSegments(pats, parts []string) bool {
	for len(pats) > 0 {
		p := pats[0]
		pats = pats[1:]

		if p == "**" {
			if len(pats) == 0 {
				return len(parts) > 0 // trailing ** needs something below it
			}
			for i := 0; i <= len(parts); i++ {
				if matchSegments(pats, parts[i:]) {
					return true
				}
			}
			return false
		}

		if len(parts) == 0 {
			return false
		}

		ok, _ := filepath.Match(p, parts[0])
		if !ok {
			return false
		}

		parts = parts[1:]
	}

	return len(parts) == 0
}
