package invaders

// Vec2 is a 2D vector used for positions and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap with a non-empty area.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	left := max(r.X, other.X)
	right := min(r.X+r.Width, other.X+other.Width)
	if left >= right {
		return false
	}
	top := max(r.Y, other.Y)
	bottom := min(r.Y+r.Height, other.Y+other.Height)
	return top < bottom
}

// Direction is the shared horizontal heading of the enemy grid.
type Direction int

const (
	DirLeft  Direction = -1 // grid moves toward x = 0
	DirRight Direction = 1  // grid moves toward the right edge
)

// Key identifies a keyboard key the simulation understands. Front ends map
// their native key codes onto these.
type Key uint8

const (
	KeyLeft   Key = iota + 1 // left arrow
	KeyRight                 // right arrow
	KeyA                     // alternate left
	KeyD                     // alternate right
	KeySpace                 // fire
	KeyEscape                // close
	KeyR                     // restart after the round is over
)

// String returns the lowercase key name used by input scripts.
func (k Key) String() string {
	switch k {
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyA:
		return "a"
	case KeyD:
		return "d"
	case KeySpace:
		return "space"
	case KeyEscape:
		return "escape"
	case KeyR:
		return "r"
	default:
		return "unknown"
	}
}

// KeySet is a bitmask of held keys.
type KeySet uint16

// Has reports whether k is in the set.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// With returns a copy of the set with k added.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Without returns a copy of the set with k removed.
func (s KeySet) Without(k Key) KeySet {
	return s &^ (1 << k)
}

// Keys builds a KeySet from the given keys.
func Keys(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// InputKind distinguishes queued discrete input events.
type InputKind uint8

const (
	InputKeyPress InputKind = iota // edge-triggered key press
	InputClose                     // window or terminal close request
)

// InputEvent is a single queued discrete event.
type InputEvent struct {
	Kind InputKind
	Key  Key
}

// Input is everything a front end hands to the simulation for one tick:
// queued events in arrival order plus the instantaneous held-key set.
type Input struct {
	Events []InputEvent
	Held   KeySet
}

// PressKey appends a key press event.
func (in *Input) PressKey(k Key) {
	in.Events = append(in.Events, InputEvent{Kind: InputKeyPress, Key: k})
}

// Close appends a close event.
func (in *Input) Close() {
	in.Events = append(in.Events, InputEvent{Kind: InputClose})
}

// Reset clears the input for reuse, keeping the event buffer.
func (in *Input) Reset() {
	in.Events = in.Events[:0]
	in.Held = 0
}
