// Package geom maps points on the camera-oriented sampling plane to the
// cartesian and spherical coordinates the wavefunction is evaluated in.
//
// Conventions:
//   - theta is the polar angle from +z, in [0, pi]
//   - phi is the azimuth atan2(x, y), in [0, 2pi)
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Basis is an orthonormal frame for the sampling plane. X and Y span the
// plane; Z is its normal and the direction of depth offsets.
type Basis struct {
	X mgl64.Vec3
	Y mgl64.Vec3
	Z mgl64.Vec3
}

// Spherical is a point in spherical coordinates.
type Spherical struct {
	R     float64
	Theta float64
	Phi   float64
}

// PlaneBasis returns the sampling plane frame for a camera at azimuth phi
// and polar tilt theta (radians). Angles are used as-is; values outside
// [0, 2pi) are valid.
func PlaneBasis(phi, theta float64) Basis {
	sp, cp := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	return Basis{
		X: mgl64.Vec3{cp * ct, sp * ct, -st},
		Y: mgl64.Vec3{-sp, cp, 0},
		Z: mgl64.Vec3{cp * st, sp * st, ct},
	}
}

// ToCartesian returns xp*X + yp*Y + zp*Z.
func (b Basis) ToCartesian(xp, yp, zp float64) mgl64.Vec3 {
	return b.X.Mul(xp).Add(b.Y.Mul(yp)).Add(b.Z.Mul(zp))
}

// ToSpherical converts a cartesian point to spherical coordinates.
//
// The origin maps to (0, 0, 0) rather than dividing by zero, and rho/r is
// clamped to 1 so rounding cannot push asin out of its domain.
func ToSpherical(v mgl64.Vec3) Spherical {
	x, y, z := v[0], v[1], v[2]
	r := math.Sqrt(x*x + y*y + z*z)
	if r == 0 {
		return Spherical{}
	}
	rho := math.Sqrt(x*x + y*y)

	s := rho / r
	if s > 1 {
		s = 1
	}
	theta := math.Asin(s)
	if z <= 0 {
		theta = math.Pi - theta
	}

	phi := math.Atan2(x, y)
	if phi < 0 {
		phi += 2 * math.Pi
	}

	return Spherical{R: r, Theta: theta, Phi: phi}
}

// FromSpherical is the inverse of ToSpherical for r > 0, 0 < theta < pi.
func FromSpherical(s Spherical) mgl64.Vec3 {
	st, ct := math.Sincos(s.Theta)
	sp, cp := math.Sincos(s.Phi)
	return mgl64.Vec3{s.R * st * sp, s.R * st * cp, s.R * ct}
}
