package dashboard

import (
	"math"

	"classroom-dashboard/backend/models"
)

// Round rounds half up, so 2.5 becomes 3 and -2.5 becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Percentage returns numerator/denominator as a rounded percentage, or 0 when
// the denominator is 0.
func Percentage(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return Round(float64(numerator) / float64(denominator) * 100)
}

// Trend is the signed change from previous to current rounded to one decimal.
// A previous value of 0 yields 0.
func Trend(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return math.Floor((current-previous)*10+0.5) / 10
}

// AttendanceRatio is the average per-meeting fill rate on a 0-100 scale:
// attendance seats over meetings times roster size. It is not rounded.
func AttendanceRatio(meetings []models.Meeting, totalStudents int) float64 {
	if len(meetings) == 0 || totalStudents <= 0 {
		return 0
	}

	seats := 0
	for _, m := range meetings {
		seats += len(m.Participants)
	}
	return float64(seats) / float64(len(meetings)*totalStudents) * 100
}
