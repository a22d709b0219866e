package nasus

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Excluder hides directory entries whose paths match any of a set of glob
// patterns. A pattern is matched against the absolute form of the entry
// path as composed from the directory argument the server was started
// with; a relative directory therefore roots matches at the process
// working directory. "*" does not cross path separators, "**" does.
type Excluder struct {
	globs []glob.Glob
}

// NewExcluder compiles the given patterns. An empty pattern set excludes
// nothing.
func NewExcluder(patterns []string) (*Excluder, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, filepath.Separator)
		if err != nil {
			return nil, fmt.Errorf("compile exclusion glob %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return &Excluder{globs: globs}, nil
}

// Match reports whether the entry called name inside dir is excluded. dir
// must be the directory path as configured, joined with any subdirectory
// the listing descended into.
func (e *Excluder) Match(dir, name string) bool {
	if len(e.globs) == 0 {
		return false
	}

	abs, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return false
	}

	for _, g := range e.globs {
		if g.Match(abs) {
			return true
		}
	}
	return false
}
