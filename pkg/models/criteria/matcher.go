// Package criteria decides whether a resource satisfies a Criterion.
package criteria

import (
	"strings"

	"github.com/Masterminds/semver"

	"github.com/genie-oss/genie/pkg/models"
)

// Matcher evaluates criteria against resources. The zero value uses exact
// version matching. A Matcher holds no mutable state and is safe for
// concurrent use.
type Matcher struct {
	semverRanges bool
}

type Option func(*Matcher)

// WithSemverRanges makes a criterion version that looks like a constraint
// (">= 1.2, < 2", "~2.1", "^3") match any resource version inside the range.
// Plain versions are still compared exactly.
func WithSemverRanges() Option {
	return func(m *Matcher) {
		m.semverRanges = true
	}
}

func NewMatcher(opts ...Option) Matcher {
	m := Matcher{}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Matches reports whether r satisfies every populated field of c.
// An id is authoritative: when set, nothing else is compared.
func (m Matcher) Matches(c models.Criterion, r models.Taggable) bool {
	if c.IsEmpty() {
		return false
	}
	if c.ID() != "" {
		return r.GetID() == c.ID()
	}
	if c.Name() != "" && r.GetName() != c.Name() {
		return false
	}
	if c.Version() != "" && !m.versionMatches(c.Version(), r.GetVersion()) {
		return false
	}
	return models.ContainsAllTags(r.GetTags(), c.Tags())
}

// Filter returns the resources matching c, in input order.
func Filter[R models.Taggable](m Matcher, c models.Criterion, resources []R) []R {
	var out []R
	for _, r := range resources {
		if m.Matches(c, r) {
			out = append(out, r)
		}
	}
	return out
}

func (m Matcher) versionMatches(want, have string) bool {
	if want == have {
		return true
	}
	if !m.semverRanges || !isConstraint(want) {
		return false
	}
	constraint, err := semver.NewConstraint(want)
	if err != nil {
		return false
	}
	v, err := semver.NewVersion(have)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}

func isConstraint(v string) bool {
	return strings.ContainsAny(v, "<>=~^*|, ")
}

var defaultMatcher = NewMatcher()

// Matches applies exact matching rules.
func Matches(c models.Criterion, r models.Taggable) bool {
	return defaultMatcher.Matches(c, r)
}
