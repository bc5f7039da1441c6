package batch

import "github.com/Faultbox/midgard-overlay/pkg/math"

// BoundsMargin is applied per instance, not per batch: every instance extent
// is scaled about its own center before the batch min/max is taken.
const BoundsMargin = 1.1

// Bounds is an axis-aligned box. The zero value is undefined.
type Bounds struct {
	Min, Max math.Vec3
	Valid    bool
}

// NewBounds returns the box spanning min and max.
func NewBounds(min, max math.Vec3) Bounds {
	return Bounds{Min: min, Max: max, Valid: true}
}

// BoundsFromCenter returns a box with the given center and full size.
func BoundsFromCenter(center, size math.Vec3) Bounds {
	half := size.Scale(0.5)
	return NewBounds(center.Sub(half), center.Add(half))
}

// UnitBounds is the unit box centered at the origin, used in place of
// non-finite results.
func UnitBounds() Bounds {
	return BoundsFromCenter(math.Zero3, math.One3)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the full edge lengths of the box.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// IsFinite reports whether both corners are free of NaN and infinity.
func (b Bounds) IsFinite() bool {
	return b.Min.IsFinite() && b.Max.IsFinite()
}

// Scale grows (or shrinks) the box by factor about its center.
func (b Bounds) Scale(factor float32) Bounds {
	if !b.Valid {
		return b
	}
	return BoundsFromCenter(b.Center(), b.Size().Scale(factor))
}

// Union returns the smallest box containing both. Undefined operands are
// ignored. NaN components propagate so degenerate input stays detectable.
func (b Bounds) Union(other Bounds) Bounds {
	switch {
	case !other.Valid:
		return b
	case !b.Valid:
		return other
	}
	return NewBounds(b.Min.Min(other.Min), b.Max.Max(other.Max))
}

// Contains reports whether p lies inside the box, boundary included.
func (b Bounds) Contains(p math.Vec3) bool {
	return b.Valid &&
		p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Aggregate combines per-batch bounds into one box.
//
// Inputs that are not finite contribute nothing. When every defined input is
// non-finite the unit box is returned instead, so degenerate records never
// poison the overlay's volume. Undefined inputs are skipped; with no defined
// input the result is undefined.
func Aggregate(bounds ...Bounds) Bounds {
	var result Bounds
	degenerate := false
	for _, bb := range bounds {
		if !bb.Valid {
			continue
		}
		if !bb.IsFinite() {
			degenerate = true
			continue
		}
		if !result.Valid {
			result = bb
			continue
		}
		result.Min = result.Min.Min(bb.Min)
		result.Max = result.Max.Max(bb.Max)
	}
	if !result.Valid && degenerate {
		return UnitBounds()
	}
	return result
}
