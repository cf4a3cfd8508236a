package gcode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWordNormalizedString(t *testing.T) {
	testCases := []struct {
		letter   rune
		number   float64
		expected string
	}{
		{'G', 1.0, "G1"},
		{'G', 1.1, "G1.1"},
		{'G', 90.1, "G90.1"},
		{'X', 1.2345, "X1.2345"},
		{'T', 2, "T2"},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%c%f", tc.letter, tc.number), func(t *testing.T) {
			word := NewWord(tc.letter, tc.number)
			require.Equal(t, tc.expected, word.NormalizedString())
		})
	}
}

func TestWordParse(t *testing.T) {
	word, err := NewWordParse('g', "00")
	require.NoError(t, err)
	require.Equal(t, 'G', word.Letter())
	require.True(t, word.Is("G0"))
	require.False(t, word.Is("G00"))
	require.Equal(t, "g00", word.String())

	_, err = NewWordParse('X', "1.2.3")
	require.Error(t, err)
}
