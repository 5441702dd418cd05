package state

import "math"

// Vec3 is a world-space vector. Y is the vertical axis.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec2 is a horizontal vector on the XZ plane.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// XZ drops the vertical component.
func (v Vec3) XZ() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// IsFinite reports whether every component is a real number.
func (v Vec3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Length returns the euclidean length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalize returns the unit vector pointing the same way. The second result
// is false when the vector has zero length or is not finite, in which case the
// zero vector is returned.
func (v Vec2) Normalize() (Vec2, bool) {
	length := v.Length()
	if length == 0 || !finite(length) {
		return Vec2{}, false
	}
	return Vec2{X: v.X / length, Z: v.Z / length}, true
}

// YawToward returns the yaw in degrees that faces along v, using the
// convention where yaw 0 looks toward +Z and yaw 90 looks toward -X.
func (v Vec2) YawToward() float32 {
	if v.X == 0 && v.Z == 0 {
		return 0
	}
	return float32(math.Atan2(-v.X, v.Z) * 180 / math.Pi)
}

// DirectionFromYaw is the inverse of YawToward.
func DirectionFromYaw(yaw float32) Vec2 {
	rad := float64(yaw) * math.Pi / 180
	return Vec2{X: -math.Sin(rad), Z: math.Cos(rad)}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
