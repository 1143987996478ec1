package services

import "math"

// Strategy selects how a task's hours are spread across its eligible days.
type Strategy int

const (
	StrategyEven Strategy = iota
	StrategyFrontLoad
	StrategyBackLoad
)

func (s Strategy) String() string {
	switch s {
	case StrategyEven:
		return "even"
	case StrategyFrontLoad:
		return "front-load"
	case StrategyBackLoad:
		return "back-load"
	default:
		return "unknown"
	}
}

const (
	quarterHour = 0.25
	hoursEps    = 0.001
)

// Distribute maps total hours onto dayCount days under the given strategy.
// The result has no negative entries and, for the even strategy, sums to
// totalHours within rounding tolerance. A zero day count yields an empty
// vector; callers must treat that as "no placement possible".
func Distribute(totalHours float64, dayCount int, strategy Strategy) []float64 {
	if dayCount <= 0 {
		return []float64{}
	}

	switch strategy {
	case StrategyFrontLoad:
		return distributeWeighted(totalHours, dayCount, [3]float64{0.7, 0.2, 0.1})
	case StrategyBackLoad:
		return distributeWeighted(totalHours, dayCount, [3]float64{0.1, 0.2, 0.7})
	default:
		return distributeEven(totalHours, dayCount)
	}
}

// distributeEven gives every day a floor-to-2-decimals base share, then hands
// the remainder out in quarter-hour increments to leading days. Any residue
// below a quarter hour lands on the next leading day so the vector still sums
// to the total.
func distributeEven(totalHours float64, dayCount int) []float64 {
	alloc := make([]float64, dayCount)
	base := math.Floor(totalHours/float64(dayCount)*100) / 100
	for i := range alloc {
		alloc[i] = base
	}

	remainder := totalHours - base*float64(dayCount)
	i := 0
	for remainder >= quarterHour-hoursEps {
		alloc[i%dayCount] += quarterHour
		remainder -= quarterHour
		i++
	}
	if remainder > hoursEps {
		alloc[i%dayCount] += remainder
	}

	for i := range alloc {
		alloc[i] = round2(alloc[i])
	}
	return alloc
}

// distributeWeighted splits the day range into three nearly-equal thirds and
// gives each third a fixed share of the hours, distributed evenly inside the
// third. A third with zero days keeps its share undistributed; those hours
// are dropped, which under-allocates for small day counts.
func distributeWeighted(totalHours float64, dayCount int, weights [3]float64) []float64 {
	firstEnd := int(math.Ceil(float64(dayCount) / 3))
	secondEnd := int(math.Ceil(2 * float64(dayCount) / 3))
	sizes := [3]int{firstEnd, secondEnd - firstEnd, dayCount - secondEnd}

	alloc := make([]float64, 0, dayCount)
	for third := 0; third < 3; third++ {
		if sizes[third] == 0 {
			continue
		}
		share := round2(totalHours * weights[third])
		alloc = append(alloc, distributeEven(share, sizes[third])...)
	}
	return alloc
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
