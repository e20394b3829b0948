package game

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

type Rotation struct {
	Yaw, Pitch float32
}

// PositionDelta converts the wire's fixed-point entity movement delta
// (1/4096 block per unit) to world units.
func PositionDelta(dx, dy, dz int16) Vec3 {
	return Vec3{
		X: float64(dx) / 4096,
		Y: float64(dy) / 4096,
		Z: float64(dz) / 4096,
	}
}

// VelocityFromWire converts the wire's velocity encoding (1/8000 block per
// tick per unit) to blocks per tick.
func VelocityFromWire(vx, vy, vz int16) Vec3 {
	return Vec3{
		X: float64(vx) / 8000,
		Y: float64(vy) / 8000,
		Z: float64(vz) / 8000,
	}
}
