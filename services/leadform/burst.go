package leadform

// Point is a position relative to the viewport, 0..1 on both axes
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Burst parameterizes the confetti played on success. The JSON form is what
// the browser's confetti call takes.
type Burst struct {
	ParticleCount int      `json:"particleCount"`
	Spread        int      `json:"spread"`
	Origin        Point    `json:"origin"`
	Colors        []string `json:"colors"`
	Ticks         int      `json:"ticks"`
	Gravity       float64  `json:"gravity"`
	Decay         float64  `json:"decay"`
	StartVelocity int      `json:"startVelocity"`
	Shapes        []string `json:"shapes"`
}

// DefaultPalette is the sky-blue brand palette
var DefaultPalette = []string{"#0EA5E9", "#0284C7", "#0369A1", "#38BDF8", "#7DD3FC"}

// DefaultBurst returns the burst both modals play
func DefaultBurst() Burst {
	return Burst{
		ParticleCount: 100,
		Spread:        80,
		Origin:        Point{X: 0.5, Y: 0.6},
		Colors:        append([]string(nil), DefaultPalette...),
		Ticks:         200,
		Gravity:       1.2,
		Decay:         0.94,
		StartVelocity: 30,
		Shapes:        []string{"circle", "square"},
	}
}

// WithColors returns a copy of b using palette, or b unchanged when palette is empty
func (b Burst) WithColors(palette []string) Burst {
	if len(palette) == 0 {
		return b
	}
	b.Colors = append([]string(nil), palette...)
	return b
}
