package services

import (
	"storerating/internal/models"
)

// RoundRating returns sum/count rounded half up to two decimal places, or 0
// when count is 0. The rounding happens on integer hundredths so exact
// halves such as 41/40 = 1.025 come out as 1.03. Every surface that reports
// an overall rating goes through here.
func RoundRating(sum, count int64) float64 {
	if count <= 0 {
		return 0
	}
	hundredths := (sum*200 + count) / (2 * count)
	return float64(hundredths) / 100
}

// RatingDistribution reports how many ratings a store received per value.
// Keys 1 to 5 are always present.
type RatingDistribution map[int]int64

// Total returns the number of ratings counted.
func (d RatingDistribution) Total() int64 {
	var n int64
	for _, c := range d {
		n += c
	}
	return n
}

func zeroFilledDistribution(raw map[int]int64) RatingDistribution {
	dist := make(RatingDistribution, models.MaxRating-models.MinRating+1)
	for v := models.MinRating; v <= models.MaxRating; v++ {
		dist[v] = raw[v]
	}
	return dist
}
