package scale

import "math"

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinear returns a linear scale over [d0, d1] → [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map returns the range value for v. NaN maps to NaN; a zero-width domain
// maps every value to the middle of the range.
func (l Linear) Map(v float64) float64 {
	if math.IsNaN(v) {
		return math.NaN()
	}
	t := 0.5
	if span := l.Domain[1] - l.Domain[0]; span != 0 {
		t = (v - l.Domain[0]) / span
	}
	return l.Range[0]*(1-t) + l.Range[1]*t
}

// Ticks returns about count readable values inside the domain.
func (l Linear) Ticks(count int) []float64 {
	return Ticks(l.Domain[0], l.Domain[1], count)
}

// TickFormat returns the label formatter matching Ticks(count).
func (l Linear) TickFormat(count int) func(float64) string {
	return TickFormat(TickStep(l.Domain[0], l.Domain[1], count))
}
