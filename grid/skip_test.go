package grid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSkip(t *testing.T) {
	testCases := []struct {
		text          string
		maxParts      int
		expected      []int
		errorContains []string
	}{
		{text: "1-4, 7, 9", maxParts: 10, expected: []int{1, 2, 3, 4, 7, 9}},
		{text: "", maxParts: 5, expected: []int{}},
		{text: "   ", maxParts: 5, expected: []int{}},
		{text: " 2 - 3 ,5", maxParts: 5, expected: []int{2, 3, 5}},
		{text: "1,,2,", maxParts: 5, expected: []int{1, 2}},
		{text: "3,3,2-3", maxParts: 5, expected: []int{2, 3}},
		{text: "4-100", maxParts: 6, expected: []int{4, 5, 6}},
		{text: "5-3", maxParts: 10, expected: []int{}, errorContains: []string{`"5-3"`, "greater than"}},
		{text: "100", maxParts: 10, expected: []int{}, errorContains: []string{`"100"`, "exceeds"}},
		{text: "0", maxParts: 10, expected: []int{}, errorContains: []string{`"0"`, "at least 1"}},
		{text: "0-2", maxParts: 10, expected: []int{}, errorContains: []string{`"0-2"`}},
		{text: "11-12", maxParts: 10, expected: []int{}, errorContains: []string{`"11-12"`}},
		{text: "a", maxParts: 10, expected: []int{}, errorContains: []string{`"a"`, "not a number"}},
		{text: "-3", maxParts: 10, expected: []int{}, errorContains: []string{`"-3"`}},
		{
			text:          "1, x, 3-4, 9-8",
			maxParts:      10,
			expected:      []int{1, 3, 4},
			errorContains: []string{`"x"`, `"9-8"`},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.text, func(t *testing.T) {
			set, err := ParseSkip(tc.text, tc.maxParts)
			require.Equal(t, tc.expected, set.Sorted())
			if len(tc.errorContains) == 0 {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSkip)
			for _, s := range tc.errorContains {
				require.ErrorContains(t, err, s)
			}
		})
	}
}

func TestValidateSkip(t *testing.T) {
	require.NoError(t, ValidateSkip("", 3))
	require.NoError(t, ValidateSkip("1-3", 3))

	err := ValidateSkip("1, x, 9-8", 10)
	require.ErrorIs(t, err, ErrInvalidSkip)
	var skipErr *SkipError
	require.True(t, errors.As(err, &skipErr))
	require.Equal(t, "x", skipErr.Token)
	require.Equal(t, `"x": not a number`, err.Error())
}
