package scale

// Band maps discrete labels to evenly sized slots along a range.
type Band struct {
	domain       []string
	index        map[string]int
	r0, r1       float64
	paddingInner float64
	paddingOuter float64
	align        float64

	start     float64
	step      float64
	bandwidth float64
}

// NewBand returns a band scale with equal inner and outer padding, centred
// in the range. Repeated labels keep their first slot.
func NewBand(labels []string, r0, r1, padding float64) *Band {
	b := &Band{
		index:        make(map[string]int, len(labels)),
		r0:           r0,
		r1:           r1,
		paddingInner: clamp01(padding),
		paddingOuter: padding,
		align:        0.5,
	}
	for _, l := range labels {
		if _, ok := b.index[l]; ok {
			continue
		}
		b.index[l] = len(b.domain)
		b.domain = append(b.domain, l)
	}
	b.rescale()
	return b
}

func (b *Band) rescale() {
	n := float64(len(b.domain))
	start, stop := b.r0, b.r1
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}
	b.step = (stop - start) / max(1, n-b.paddingInner+b.paddingOuter*2)
	start += (stop - start - b.step*(n-b.paddingInner)) * b.align
	b.bandwidth = b.step * (1 - b.paddingInner)
	b.start = start
	if reverse {
		// Walk from the far end so the first label sits at r0.
		b.start = start + b.step*(n-1)
		b.step = -b.step
	}
}

// Domain returns the distinct labels in slot order.
func (b *Band) Domain() []string {
	out := make([]string, len(b.domain))
	copy(out, b.domain)
	return out
}

// Position returns the start of label's band. ok is false for unknown labels.
func (b *Band) Position(label string) (float64, bool) {
	i, ok := b.index[label]
	if !ok {
		return 0, false
	}
	return b.start + b.step*float64(i), true
}

// Center returns the midpoint of label's band.
func (b *Band) Center(label string) (float64, bool) {
	p, ok := b.Position(label)
	if !ok {
		return 0, false
	}
	return p + b.bandwidth/2, true
}

// Bandwidth is the thickness of each band after padding.
func (b *Band) Bandwidth() float64 { return b.bandwidth }

// stepSize is the distance between the starts of adjacent bands.
func (b *Band) stepSize() float64 {
	if b.step < 0 {
		return -b.step
	}
	return b.step
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
