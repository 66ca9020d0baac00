package ontap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	testCases := []struct {
		input    string
		expected int64
	}{
		{"500", 500},
		{"100GB", 107374182400},
		{"1TB", 1099511627776},
		{"1KB", 1024},
		{"1.5KB", 1536},
		{"2mb", 2097152},
		{" 10 GB ", 10737418240},
		{"0", 0},
		{"1pb", 1125899906842624},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseSize(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestParseSize_Invalid(t *testing.T) {
	for _, input := range []string{"bogus", "", "GB", "12XB", "1 2GB", "-5MB"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseSize(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSize)
		})
	}
}

func TestFormatBytes(t *testing.T) {
	testCases := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{107374182400, "100 GB"},
		{1099511627776, "1 TB"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatBytes(tc.input))
		})
	}
}

// Rounding makes FormatBytes lossy on purpose; it only needs to survive a
// re-parse, not reproduce the exact byte count.
func TestFormatBytes_Lossy(t *testing.T) {
	got := FormatBytes(1500)
	assert.Equal(t, "1.46 KB", got)

	reparsed, err := ParseSize(got)
	require.NoError(t, err)
	assert.NotEqual(t, int64(1500), reparsed)
}
