package fmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSprintFloat(t *testing.T) {
	require.Equal(t, "1.5", SprintFloat(1.5, 3))
	require.Equal(t, "2", SprintFloat(2.0001, 3))
	require.Equal(t, "0", SprintFloat(-0.0001, 3))
	require.Equal(t, "3", SprintFloat(2.6, 0))
}

func TestSprintFixed(t *testing.T) {
	testCases := []struct {
		value    float64
		expected string
	}{
		{10, "10.000"},
		{-2.5, "-2.500"},
		{1.23456, "1.235"},
		{-0.0001, "0.000"},
		{0, "0.000"},
	}
	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			require.Equal(t, tc.expected, SprintFixed(tc.value, 3))
		})
	}
}
