// Package forecast predicts the next stock level for a product from its
// history. The primary model is an ordinary least squares fit over
// (day index, quantity); when the series is too short or degenerate it
// falls back to the rounded mean. The fallback is part of the contract,
// not a failure.
package forecast

import (
	"math"
	"time"
)

// Point is one observation in a product's time series.
type Point struct {
	Date     time.Time
	Quantity int
}

// minSamples required before the regression is trusted over the mean.
const minSamples = 3

// Predict returns a non-negative prediction of the next quantity.
// An empty series predicts zero.
func Predict(points []Point) int {
	if len(points) == 0 {
		return 0
	}
	if len(points) < minSamples {
		return mean(points)
	}

	// x = days since the first observation
	origin := points[0].Date
	n := float64(len(points))
	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := p.Date.Sub(origin).Hours() / 24
		y := float64(p.Quantity)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// all observations on the same day
		return mean(points)
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	nextX := points[len(points)-1].Date.Sub(origin).Hours()/24 + 1
	predicted := slope*nextX + intercept
	if math.IsNaN(predicted) || math.IsInf(predicted, 0) {
		return mean(points)
	}
	if predicted < 0 {
		return 0
	}
	return int(math.Round(predicted))
}

func mean(points []Point) int {
	sum := 0
	for _, p := range points {
		sum += p.Quantity
	}
	m := float64(sum) / float64(len(points))
	if m < 0 {
		return 0
	}
	return int(math.Round(m))
}
