package attendance

import "math"

// Productivity scores one reconstructed day on a 60-100 scale. The baseline is
// 85; each break hour beyond the first costs 10 points and each work hour
// beyond eight earns 2 back.
func Productivity(workHours, breakHours float64) float64 {
	score := 85.0
	if over := breakHours - 1; over > 0 {
		score -= over * 10
	}
	if extra := workHours - 8; extra > 0 {
		score += extra * 2
	}
	if score < 60 {
		score = 60
	}
	if score > 100 {
		score = 100
	}
	return round2(score)
}

// Utilization is worked hours as a percentage of the standard day, capped at
// 100.
func Utilization(workHours, standardHours float64) float64 {
	if standardHours <= 0 {
		return 0
	}
	u := workHours / standardHours * 100
	if u > 100 {
		u = 100
	}
	return round2(u)
}

// ManHours is the productivity-weighted effective output of a day.
func ManHours(workHours, productivity float64) float64 {
	return round2(workHours * productivity / 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
