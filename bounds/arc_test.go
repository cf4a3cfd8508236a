package bounds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireRectInDelta(t *testing.T, expected, actual Rect) {
	t.Helper()
	require.InDelta(t, expected.MinX, actual.MinX, 1e-9, "MinX")
	require.InDelta(t, expected.MinY, actual.MinY, 1e-9, "MinY")
	require.InDelta(t, expected.MaxX, actual.MaxX, 1e-9, "MaxX")
	require.InDelta(t, expected.MaxY, actual.MaxY, 1e-9, "MaxY")
}

func TestArcBox(t *testing.T) {
	testCases := []struct {
		name       string
		cx, cy     float64
		radius     float64
		start, end float64
		clockwise  bool
		expected   Rect
	}{
		{
			name:     "full circle counter clockwise",
			radius:   5,
			start:    math.Pi,
			end:      math.Pi,
			expected: Rect{MinX: -5, MinY: -5, MaxX: 5, MaxY: 5},
		},
		{
			name:      "full circle clockwise",
			cx:        10,
			cy:        10,
			radius:    2,
			start:     0,
			end:       0,
			clockwise: true,
			expected:  Rect{MinX: 8, MinY: 8, MaxX: 12, MaxY: 12},
		},
		{
			name:     "quarter counter clockwise",
			radius:   1,
			start:    0,
			end:      math.Pi / 2,
			expected: Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1},
		},
		{
			name:      "three quarters clockwise",
			radius:    1,
			start:     0,
			end:       math.Pi / 2,
			clockwise: true,
			expected:  Rect{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1},
		},
		{
			name:      "minor arc crossing zero clockwise",
			radius:    1,
			start:     math.Pi / 4,
			end:       -math.Pi / 4,
			clockwise: true,
			expected:  Rect{MinX: math.Sqrt2 / 2, MinY: -math.Sqrt2 / 2, MaxX: 1, MaxY: math.Sqrt2 / 2},
		},
		{
			name:     "major arc avoiding zero counter clockwise",
			radius:   1,
			start:    math.Pi / 4,
			end:      -math.Pi / 4,
			expected: Rect{MinX: -1, MinY: -1, MaxX: math.Sqrt2 / 2, MaxY: 1},
		},
		{
			name:     "upper half counter clockwise",
			cx:       3,
			radius:   2,
			start:    0,
			end:      math.Pi,
			expected: Rect{MinX: 1, MinY: 0, MaxX: 5, MaxY: 2},
		},
		{
			name:      "lower half clockwise",
			cx:        3,
			radius:    2,
			start:     0,
			end:       math.Pi,
			clockwise: true,
			expected:  Rect{MinX: 1, MinY: -2, MaxX: 5, MaxY: 0},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			requireRectInDelta(t, tc.expected, ArcBox(tc.cx, tc.cy, tc.radius, tc.start, tc.end, tc.clockwise))
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	require.InDelta(t, 0, normalizeAngle(2*math.Pi), 1e-12)
	require.InDelta(t, 3*math.Pi/2, normalizeAngle(-math.Pi/2), 1e-12)
	require.InDelta(t, math.Pi, normalizeAngle(3*math.Pi), 1e-12)
}
