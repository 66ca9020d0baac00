package ontap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilters(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected map[string]string
	}{
		{
			name:     "simple clauses",
			input:    "type=rw,state=!offline",
			expected: map[string]string{"type": "rw", "state": "!offline"},
		},
		{
			name:     "empty input",
			input:    "",
			expected: map[string]string{},
		},
		{
			name:     "clause without equals is dropped",
			input:    "type=rw,garbage,state=online",
			expected: map[string]string{"type": "rw", "state": "online"},
		},
		{
			name:     "whitespace trimmed",
			input:    " name = vol1 , size = >100GB ",
			expected: map[string]string{"name": "vol1", "size": ">100GB"},
		},
		{
			name:     "operators pass through verbatim",
			input:    "name=vol*,state=online|offline,size=<1TB",
			expected: map[string]string{"name": "vol*", "state": "online|offline", "size": "<1TB"},
		},
		{
			name:     "value keeps extra equals",
			input:    "comment=a=b",
			expected: map[string]string{"comment": "a=b"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseFilters(tc.input))
		})
	}
}

func TestCleanObject(t *testing.T) {
	in := map[string]any{
		"a": "",
		"b": nil,
		"c": map[string]any{"d": ""},
		"e": map[string]any{"f": "x"},
		"g": []any{1, 2},
	}

	got := CleanObject(in)

	assert.Equal(t, map[string]any{
		"e": map[string]any{"f": "x"},
		"g": []any{1, 2},
	}, got)

	// Input is never mutated.
	assert.Contains(t, in, "a")
	assert.Contains(t, in["c"], "d")
}

func TestCleanObject_ArraysVerbatim(t *testing.T) {
	in := map[string]any{
		"aggregates": []any{map[string]any{"name": ""}, nil},
		"size":       int64(1024),
		"zero":       0,
	}

	got := CleanObject(in)

	// Array elements are not filtered or recursed into.
	assert.Equal(t, []any{map[string]any{"name": ""}, nil}, got["aggregates"])
	assert.Equal(t, int64(1024), got["size"])
	assert.Equal(t, 0, got["zero"])
}
