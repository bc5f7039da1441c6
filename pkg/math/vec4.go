package math

import "github.com/chewxy/math32"

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// W returns the fourth component.
func (v Vec4) W() float32 {
	return v[3]
}

// IsFinite reports whether no component is infinite or NaN.
func (v Vec4) IsFinite() bool {
	return isFinite(v[0]) && isFinite(v[1]) && isFinite(v[2]) && isFinite(v[3])
}

// SameBits reports whether v and o hold identical bit patterns. Unlike ==,
// a NaN component matches itself and 0 differs from -0.
func (v Vec4) SameBits(o Vec4) bool {
	for i := range v {
		if math32.Float32bits(v[i]) != math32.Float32bits(o[i]) {
			return false
		}
	}
	return true
}
