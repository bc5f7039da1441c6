package batch

import "github.com/Faultbox/midgard-overlay/pkg/math"

// MaxChannels is the largest number of attribute channels a layout may use.
const MaxChannels = 4

// Record is one instance worth of draw data. Pack writes exactly one Vec4
// per channel of the record's layout.
type Record interface {
	Pack(dst []math.Vec4)
}

// Layout describes how a record kind maps onto instance attribute channels.
type Layout struct {
	// Name identifies the layout in logs and backend lookups.
	Name string
	// Channels holds the shader property name of each channel, in pack order.
	Channels []string

	extent func(attrs []math.Vec4) Bounds
}

// Extent returns the bounds of a single packed instance before the margin
// is applied.
func (l *Layout) Extent(attrs []math.Vec4) Bounds {
	return l.extent(attrs)
}

// Shape channel indices.
const (
	ShapePosition = iota
	ShapeRotation
	ShapeScale
	ShapeColor
)

// Vector channel indices.
const (
	VectorTail = iota
	VectorHead
	VectorColor
)

// ShapeLayout packs position, rotation, scale and color.
var ShapeLayout = &Layout{
	Name:     "shape",
	Channels: []string{"_Position", "_Rotation", "_Scale", "_Color"},
	extent:   shapeExtent,
}

// VectorLayout packs tail (w = radius), head (w = tip length) and color.
var VectorLayout = &Layout{
	Name:     "vector",
	Channels: []string{"_Tail", "_Head", "_Color"},
	extent:   vectorExtent,
}

// ShapeRecord is a unit shape placed by position, rotation and scale.
type ShapeRecord struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
	Color    math.Color
}

// Pack implements Record.
func (r ShapeRecord) Pack(dst []math.Vec4) {
	dst[ShapePosition] = r.Position.Vec4(1)
	dst[ShapeRotation] = r.Rotation.Vec4()
	dst[ShapeScale] = r.Scale.Vec4(1)
	dst[ShapeColor] = r.Color.Vec4()
}

// VectorRecord is an arrow from Tail to Head.
type VectorRecord struct {
	Tail      math.Vec3
	Head      math.Vec3
	Radius    float32
	TipLength float32
	Color     math.Color
}

// Pack implements Record.
func (r VectorRecord) Pack(dst []math.Vec4) {
	dst[VectorTail] = r.Tail.Vec4(r.Radius)
	dst[VectorHead] = r.Head.Vec4(r.TipLength)
	dst[VectorColor] = r.Color.Vec4()
}

// shapeExtent spans position +/- the rotated half scale. This is the two
// corner approximation, not a full oriented box.
func shapeExtent(attrs []math.Vec4) Bounds {
	p := attrs[ShapePosition].XYZ()
	r := attrs[ShapeRotation]
	q := math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}
	half := q.Rotate(attrs[ShapeScale].XYZ().Scale(0.5))

	p0 := p.Add(half)
	p1 := p.Sub(half)
	return NewBounds(p0.Min(p1), p0.Max(p1))
}

func vectorExtent(attrs []math.Vec4) Bounds {
	tail := attrs[VectorTail].XYZ()
	head := attrs[VectorHead].XYZ()
	return NewBounds(tail.Min(head), tail.Max(head))
}
