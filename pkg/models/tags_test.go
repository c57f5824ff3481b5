//go:build unit || !integration

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagsToString(t *testing.T) {
	testCases := []struct {
		name     string
		tags     []string
		expected string
	}{
		{name: "nil", tags: nil, expected: ""},
		{name: "empty", tags: []string{}, expected: ""},
		{name: "sorted", tags: []string{"bar", "foo"}, expected: "bar,foo"},
		{name: "unsorted", tags: []string{"foo", "bar"}, expected: "bar,foo"},
		{name: "quotes escaped", tags: []string{`it's`, `"q"`}, expected: `\"q\",it\'s`},
		// commas inside a tag are not escaped
		{name: "embedded comma", tags: []string{"b", "a,c"}, expected: "a,c,b"},
		// shell characters are left to the run script
		{name: "shell characters", tags: []string{"`x`", "$(id)"}, expected: "$(id),`x`"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TagsToString(tc.tags))
		})
	}
}

func TestTagsToStringDoesNotMutateInput(t *testing.T) {
	tags := []string{"foo", "bar"}
	_ = TagsToString(tags)
	assert.Equal(t, []string{"foo", "bar"}, tags)
}

func TestContainsAllTags(t *testing.T) {
	have := []string{"a", "b", "c"}
	assert.True(t, ContainsAllTags(have, []string{"a", "b"}))
	assert.False(t, ContainsAllTags(have, []string{"a", "d"}))
	assert.True(t, ContainsAllTags(have, nil))
	assert.False(t, ContainsAllTags(nil, []string{"a"}))
}
