package distribution

import "math"

// Curve produces one integer percentage per leaderboard position,
// summing to exactly 100 - reservedPct and non-increasing from first
// place down. The raw weight of position i (1-based) is (n-i+1)^weight,
// so weight 0 is a uniform split and larger weights concentrate the
// pool at the top. Floating point is used only for the pre-rounding
// shape; the returned percentages are the values fee settlement uses.
func Curve(n int, weight float64, reservedPct int) []int {
	if n <= 0 {
		return nil
	}

	percentages := make([]int, n)

	target := 100 - reservedPct
	if target <= 0 {
		return percentages
	}

	if weight < 0 {
		weight = 0
	}
	if weight > MaxWeight {
		weight = MaxWeight
	}

	raw := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		raw[i] = math.Pow(float64(n-i), weight)
		total += raw[i]
	}

	sum := 0
	for i := 0; i < n; i++ {
		percentages[i] = int(float64(target) * raw[i] / total)
		sum += percentages[i]
	}

	// Rounding shaved off up to n-1 points; hand them back to the top
	// positions so the total is always exact.
	for i := 0; sum < target; i++ {
		percentages[i%n]++
		sum++
	}

	return percentages
}

// MaxWeight caps the steepness slider.
const MaxWeight = 5.0
