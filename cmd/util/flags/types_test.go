//go:build unit || !integration

package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genie-oss/genie/pkg/models"
)

func TestParseMemoryMB(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{input: "1536", expected: 1536},
		{input: "2GB", expected: 2048},
		{input: "512MB", expected: 512},
		{input: " 1GB ", expected: 1024},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			memory, err := ParseMemoryMB(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, memory)
		})
	}

	_, err := ParseMemoryMB("lots")
	assert.Error(t, err)
}

func TestParseCriterion(t *testing.T) {
	c, err := ParseCriterion("name=hive,version=2.1,tags=prod;hadoop")
	require.NoError(t, err)
	assert.Equal(t, "hive", c.Name())
	assert.Equal(t, "2.1", c.Version())
	assert.ElementsMatch(t, []string{"prod", "hadoop"}, c.Tags())

	_, err = ParseCriterion("colour=red")
	assert.ErrorContains(t, err, "unknown criterion field")

	_, err = ParseCriterion("prod")
	assert.ErrorContains(t, err, "expected key=value")

	_, err = ParseCriterion("name=")
	assert.Error(t, err)
}

func TestCriteriaFlagAppends(t *testing.T) {
	var criteria []models.Criterion
	flag := CriteriaFlag(&criteria)
	require.NoError(t, flag.Set("tags=prod"))
	require.NoError(t, flag.Set("tags=hadoop"))
	require.Len(t, criteria, 2)
	assert.Equal(t, []string{"hadoop"}, criteria[1].Tags())
	assert.Error(t, flag.Set("tags="))
	assert.Len(t, criteria, 2)
}
