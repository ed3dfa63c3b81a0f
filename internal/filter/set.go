package filter

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultKnownCorruptions are auxiliary files that are known to come back
// with EIO on open after the legacy filesystem corrupts them. SQLite
// rebuilds all of them on demand.
var DefaultKnownCorruptions = []string{
	"*.db-wal",
	"*.db-shm",
	"*-wal",
	"*-shm",
	"*-journal",
}

type rule struct {
	pattern *compiledPattern
	negate  bool
}

// Set is an ordered list of glob rules. The first rule that matches a path
// decides; a rule written as "!pattern" carves an exception out of later
// rules. A path no rule matches is not in the set.
type Set struct {
	rules []rule
}

// NewSet compiles patterns into a Set.
func NewSet(patterns ...string) (*Set, error) {
	s := &Set{}
	for _, p := range patterns {
		if err := s.Add(p); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends one rule.
func (s *Set) Add(pattern string) error {
	negate := strings.HasPrefix(pattern, "!")
	cp, err := compilePattern(strings.TrimPrefix(pattern, "!"))
	if err != nil {
		return err
	}
	s.rules = append(s.rules, rule{pattern: cp, negate: negate})
	return nil
}

// Match reports whether relPath is in the set.
func (s *Set) Match(relPath string, isDir bool) bool {
	if s == nil {
		return false
	}
	for _, r := range s.rules {
		if r.pattern.match(relPath, isDir) {
			return !r.negate
		}
	}
	return false
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Patterns returns the rules as written.
func (s *Set) Patterns() []string {
	if s == nil {
		return nil
	}
	return lo.Map(s.rules, func(r rule, _ int) string {
		if r.negate {
			return "!" + r.pattern.original
		}
		return r.pattern.original
	})
}
