package services

import (
	"math"

	"cardiomed/internal/bpreminder"
	"cardiomed/internal/models"
)

// SummarizeReadings computes averages, ranges and per-category counts.
// Categories are derived from the values, not the stored interpretation.
func SummarizeReadings(readings []models.BloodPressureReading) models.ReadingStats {
	if len(readings) == 0 {
		return models.ReadingStats{Message: "No readings found for this user"}
	}

	var sumSys, sumDia, sumPulse int
	ranges := models.ReadingRanges{
		Systolic:  models.MinMax{Min: readings[0].Systolic, Max: readings[0].Systolic},
		Diastolic: models.MinMax{Min: readings[0].Diastolic, Max: readings[0].Diastolic},
	}
	categories := make(map[string]int, len(bpreminder.Categories))
	for _, c := range bpreminder.Categories {
		categories[c.String()] = 0
	}

	for _, r := range readings {
		sumSys += r.Systolic
		sumDia += r.Diastolic
		sumPulse += r.Pulse
		ranges.Systolic.Min = min(ranges.Systolic.Min, r.Systolic)
		ranges.Systolic.Max = max(ranges.Systolic.Max, r.Systolic)
		ranges.Diastolic.Min = min(ranges.Diastolic.Min, r.Diastolic)
		ranges.Diastolic.Max = max(ranges.Diastolic.Max, r.Diastolic)
		categories[bpreminder.Classify(r.Systolic, r.Diastolic).String()]++
	}

	n := float64(len(readings))
	return models.ReadingStats{
		TotalReadings: len(readings),
		Averages: &models.ReadingAverages{
			Systolic:  round1(float64(sumSys) / n),
			Diastolic: round1(float64(sumDia) / n),
			Pulse:     round1(float64(sumPulse) / n),
		},
		Ranges:     &ranges,
		Categories: categories,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
