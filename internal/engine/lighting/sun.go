// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/meadow/pkg/math"
)

// SunDirection converts compass angles to a unit vector pointing towards the
// sun. Azimuth is rotation around +Y measured from +Z towards +X, elevation
// is the angle above the horizon; both are in degrees.
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := azimuth * math32.Pi / 180
	el := elevation * math32.Pi / 180

	sinAz, cosAz := math32.Sincos(az)
	sinEl, cosEl := math32.Sincos(el)

	return math.Vec3{
		X: cosEl * sinAz,
		Y: sinEl,
		Z: cosEl * cosAz,
	}
}
