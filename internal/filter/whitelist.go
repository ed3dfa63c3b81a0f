package filter

import (
	"regexp"
	"strings"
)

// DefaultMinimalPaths is the set of paths a minimal migration carries over:
// enough for the user to sign in again and keep their policy, nothing bulky.
var DefaultMinimalPaths = []string{
	"root/session_manager/policy",
	"user/.pki",
	"user/Accounts",
	"user/Login Data",
	"user/Preferences",
	"user/Secure Preferences",
	"user/Local State",
}

// Decision is how a minimal migration treats one entry.
type Decision int

const (
	// Exclude leaves the entry in the source untouched.
	Exclude Decision = iota
	// Ancestor is a directory above a whitelisted path. It is created at the
	// destination and descended into, but only whitelisted children move.
	Ancestor
	// Include moves the entry and everything below it.
	Include
)

func (d Decision) String() string {
	switch d {
	case Include:
		return "include"
	case Ancestor:
		return "ancestor"
	default:
		return "exclude"
	}
}

// Whitelist matches relative paths against anchored, per-component globs
// such as "user/Login Data" or "root/android-data/*/shared_prefs".
type Whitelist struct {
	patterns [][]*regexp.Regexp
	raw      []string
}

// NewWhitelist compiles patterns. Each is relative to the migration root.
func NewWhitelist(patterns ...string) (*Whitelist, error) {
	w := &Whitelist{}
	for _, p := range patterns {
		comps, err := compileComponents(p)
		if err != nil {
			return nil, err
		}
		w.patterns = append(w.patterns, comps)
		w.raw = append(w.raw, p)
	}
	return w, nil
}

// Classify decides what a minimal migration does with relPath.
func (w *Whitelist) Classify(relPath string, isDir bool) Decision {
	comps := strings.Split(strings.Trim(relPath, "/"), "/")
	decision := Exclude
	for _, pat := range w.patterns {
		n := min(len(pat), len(comps))
		if !matchPrefix(pat[:n], comps[:n]) {
			continue
		}
		if len(comps) >= len(pat) {
			return Include
		}
		if isDir {
			decision = Ancestor
		}
	}
	return decision
}

// Patterns returns the whitelist as written.
func (w *Whitelist) Patterns() []string { return w.raw }

func matchPrefix(pat []*regexp.Regexp, comps []string) bool {
	for i, re := range pat {
		if !re.MatchString(comps[i]) {
			return false
		}
	}
	return true
}
