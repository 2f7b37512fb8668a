package animation

// Bounds is an inclusive rectangle clipping particle motion.
type Bounds struct {
	XTop, YTop int
	XBot, YBot int
}

// DefaultBounds is the precipitation area below the cloud of a 32x32
// weather icon.
var DefaultBounds = Bounds{XTop: 8, YTop: 15, XBot: 27, YBot: 23}

// cloudDepth is how many rows above YTop drops may spawn.
const cloudDepth = 5

func (b Bounds) Contains(x, y int) bool {
	return b.ContainsX(x) && b.ContainsY(y)
}

func (b Bounds) ContainsX(x int) bool { return x >= b.XTop && x <= b.XBot }

func (b Bounds) ContainsY(y int) bool { return y >= b.YTop && y <= b.YBot }

// Width is the number of columns covered.
func (b Bounds) Width() int { return b.XBot - b.XTop + 1 }

// Height is the number of rows covered.
func (b Bounds) Height() int { return b.YBot - b.YTop + 1 }

// cloudTop is the first row of the spawn band above the bounds.
func (b Bounds) cloudTop() int {
	if b.YTop < cloudDepth {
		return 0
	}
	return b.YTop - cloudDepth
}
