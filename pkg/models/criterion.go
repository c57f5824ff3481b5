package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

// Criterion is a partially specified filter over a resource's id, name,
// version and tags. A criterion is immutable once built and always has at
// least one populated field.
type Criterion struct {
	id      string
	name    string
	version string
	tags    []string
}

// CriterionBuilder builds a Criterion.
type CriterionBuilder struct {
	c    Criterion
	errs []string
}

func NewCriterionBuilder() *CriterionBuilder {
	return &CriterionBuilder{}
}

func (b *CriterionBuilder) ID(id string) *CriterionBuilder {
	b.c.id = strings.TrimSpace(id)
	return b
}

func (b *CriterionBuilder) Name(name string) *CriterionBuilder {
	b.c.name = strings.TrimSpace(name)
	return b
}

func (b *CriterionBuilder) Version(version string) *CriterionBuilder {
	b.c.version = strings.TrimSpace(version)
	return b
}

// Tags adds tags to the criterion. Duplicates are collapsed.
func (b *CriterionBuilder) Tags(tags ...string) *CriterionBuilder {
	for _, t := range tags {
		if strings.TrimSpace(t) == "" {
			b.errs = append(b.errs, "criterion tags cannot be blank")
			continue
		}
		b.c.tags = append(b.c.tags, t)
	}
	return b
}

// Build validates and returns the criterion.
func (b *CriterionBuilder) Build() (Criterion, error) {
	if len(b.errs) > 0 {
		return Criterion{}, genieerrors.New("%s", b.errs[0]).WithCode(genieerrors.ValidationError)
	}
	c := Criterion{
		id:      b.c.id,
		name:    b.c.name,
		version: b.c.version,
		tags:    normalizeTags(b.c.tags),
	}
	if c.IsEmpty() {
		return Criterion{}, genieerrors.New("invalid criterion: at least one of id, name, version or tags must be set").
			WithCode(genieerrors.ValidationError)
	}
	return c, nil
}

// MustBuild is like Build but panics on an invalid criterion. Intended for
// tests and static defaults.
func (b *CriterionBuilder) MustBuild() Criterion {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}

// CriterionWithTags is a shorthand for a tags-only criterion.
func CriterionWithTags(tags ...string) (Criterion, error) {
	return NewCriterionBuilder().Tags(tags...).Build()
}

func (c Criterion) ID() string      { return c.id }
func (c Criterion) Name() string    { return c.name }
func (c Criterion) Version() string { return c.version }

// Tags returns a sorted copy of the criterion's tags.
func (c Criterion) Tags() []string {
	if len(c.tags) == 0 {
		return nil
	}
	out := make([]string, len(c.tags))
	copy(out, c.tags)
	return out
}

// IsEmpty is only true for the zero value. Built criteria are never empty.
func (c Criterion) IsEmpty() bool {
	return c.id == "" && c.name == "" && c.version == "" && len(c.tags) == 0
}

func (c Criterion) String() string {
	var parts []string
	if c.id != "" {
		parts = append(parts, "id="+c.id)
	}
	if c.name != "" {
		parts = append(parts, "name="+c.name)
	}
	if c.version != "" {
		parts = append(parts, "version="+c.version)
	}
	if len(c.tags) > 0 {
		parts = append(parts, fmt.Sprintf("tags=[%s]", strings.Join(c.tags, ",")))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

type criterionJSON struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name,omitempty"`
	Version string   `json:"version,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func (c Criterion) MarshalJSON() ([]byte, error) {
	return json.Marshal(criterionJSON{ID: c.id, Name: c.name, Version: c.version, Tags: c.tags})
}

// UnmarshalJSON decodes and validates a criterion.
func (c *Criterion) UnmarshalJSON(data []byte) error {
	var raw criterionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := NewCriterionBuilder().ID(raw.ID).Name(raw.Name).Version(raw.Version).Tags(raw.Tags...).Build()
	if err != nil {
		return err
	}
	*c = built
	return nil
}

func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
