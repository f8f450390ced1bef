package scale

import "math"

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// tickSpec picks a 1/2/5×10^k increment for roughly count ticks over
// [start, stop]. A negative inc means the step is 1/-inc, which keeps
// fractional steps exact.
func tickSpec(start, stop float64, count float64) (i1, i2, inc float64) {
	step := (stop - start) / math.Max(0, count)
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power < 0 {
		inc = math.Pow(10, -power) / factor
		i1 = math.Round(start * inc)
		i2 = math.Round(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = math.Pow(10, power) * factor
		i1 = math.Round(start / inc)
		i2 = math.Round(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// Ticks returns evenly spaced, human-friendly values covering [start, stop].
func Ticks(start, stop float64, count int) []float64 {
	if count <= 0 || math.IsNaN(start) || math.IsNaN(stop) {
		return nil
	}
	if start == stop {
		return []float64{start}
	}

	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}
	i1, i2, inc := tickSpec(lo, hi, float64(count))
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2-i1) + 1
	ticks := make([]float64, n)
	for i := range n {
		k := i1 + float64(i)
		if reverse {
			k = i2 - float64(i)
		}
		if inc < 0 {
			ticks[i] = k / -inc
		} else {
			ticks[i] = k * inc
		}
	}
	return ticks
}

// TickStep returns the spacing Ticks would use for the same arguments.
func TickStep(start, stop float64, count int) float64 {
	reverse := stop < start
	lo, hi := start, stop
	if reverse {
		lo, hi = stop, start
	}
	_, _, inc := tickSpec(lo, hi, float64(count))
	step := inc
	if inc < 0 {
		step = 1 / -inc
	}
	if reverse {
		return -step
	}
	return step
}
