package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func series(quantities ...int) []Point {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]Point, 0, len(quantities))
	for i, q := range quantities {
		points = append(points, Point{Date: base.AddDate(0, 0, i), Quantity: q})
	}
	return points
}

func TestPredict(t *testing.T) {
	testCases := []struct {
		name     string
		points   []Point
		expected int
	}{
		{
			name:     "empty series predicts zero",
			points:   nil,
			expected: 0,
		},
		{
			name:     "short series falls back to mean",
			points:   series(10, 20),
			expected: 15,
		},
		{
			name:     "linear downward trend extrapolates",
			points:   series(10, 8, 6, 4),
			expected: 2,
		},
		{
			name:     "steep decline clamps at zero",
			points:   series(30, 20, 10),
			expected: 0,
		},
		{
			name:     "flat series predicts the level",
			points:   series(7, 7, 7, 7),
			expected: 7,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Predict(tc.points))
		})
	}
}

func TestPredictSameDayObservations(t *testing.T) {
	// Several counts on the same day give the regression no x-spread,
	// so the mean fallback must kick in.
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	points := []Point{
		{Date: day, Quantity: 4},
		{Date: day, Quantity: 6},
		{Date: day, Quantity: 8},
	}

	assert.Equal(t, 6, Predict(points))
}
