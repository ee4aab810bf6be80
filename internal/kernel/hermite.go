package kernel

// Hermite kernel constants.
const (
	hermiteTaps = 4

	// hermiteGroupDelay is the delay of the 4-point window: interpolation
	// happens between the two center samples.
	hermiteGroupDelay = 1.5
)

// hermite is the QualityQuick kernel: 4-point, 3rd-order Hermite
// interpolation. No designed filter, minimal latency, and the cheapest hot
// loop — the phase accumulator and staging protocol are identical to the
// polyphase kernel, so slicing invariance holds the same way.
type hermite struct {
	staging
}

func newHermite(sourceHz, targetHz float64, channels, historyCap int) *hermite {
	return &hermite{
		staging: newStaging(sourceHz, targetHz, channels, historyCap,
			1, hermiteTaps, hermiteGroupDelay),
	}
}

// Render produces n output frames per channel into dst[ch][offset:].
func (h *hermite) Render(dst [][]float32, offset, n int) {
	if n <= 0 {
		return
	}
	if n > h.Ready() {
		panic("kernel: render beyond ready frames")
	}

	at := h.at

	for i := range n {
		div := int(at >> fracBits)
		x := float32(at&fracMask) / float32(1<<fracBits)

		for ch := range h.hist {
			w := h.hist[ch][div : div+hermiteTaps]

			// Catmull-Rom spline through the window, evaluated between the
			// two center samples.
			a := -0.5*w[0] + 1.5*w[1] - 1.5*w[2] + 0.5*w[3]
			b := w[0] - 2.5*w[1] + 2*w[2] - 0.5*w[3]
			c := 0.5 * (w[2] - w[0])
			d := w[1]

			dst[ch][offset+i] = ((a*x+b)*x+c)*x + d
		}

		at += h.step
	}

	h.at = at
	h.trim()
}
