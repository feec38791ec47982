package render

import (
	"math"

	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
)

// Camera is a pinhole camera with a vertical field of view. Rays start on
// the near plane.
type Camera struct {
	FOVDeg     float64
	TanHalfFOV float64
	Aspect     float64
	Near       float64
	Position   vectors.Vec3
	Forward    vectors.Vec3
	Right      vectors.Vec3
	Up         vectors.Vec3

	width, height int
}

// NewCamera builds the camera basis for a width x height frame.
func NewCamera(spec scene.CameraSpec, width, height int) Camera {
	fwd := spec.Target.Sub(spec.Position).Normalize()

	right := fwd.Cross(spec.Up)
	if right.Norm() < 1e-6 {
		right = fwd.Orthogonal() // up parallel to the view axis
	}
	right = right.Normalize()
	up := right.Cross(fwd).Normalize()

	fovRad := spec.FOVDeg * math.Pi / 180.0
	return Camera{
		FOVDeg:     spec.FOVDeg,
		TanHalfFOV: math.Tan(fovRad / 2.0),
		Aspect:     float64(width) / float64(height),
		Near:       spec.Near,
		Position:   spec.Position,
		Forward:    fwd,
		Right:      right,
		Up:         up,
		width:      width,
		height:     height,
	}
}

// ComputeRay returns the primary ray through frame position (i, j), where
// (0, 0) is the top left corner of the top left pixel. i and j can be
// fractional for supersampling.
func (c Camera) ComputeRay(i, j float64) vectors.Ray {
	// NDC in [-1, +1], flip Y to make +up in screen space.
	xNDC := 2.0*i/float64(c.width) - 1.0
	yNDC := 1.0 - 2.0*j/float64(c.height)

	xPlane := xNDC * c.TanHalfFOV * c.Aspect
	yPlane := yNDC * c.TanHalfFOV
	zPlane := 1.0

	dir := c.Right.Scale(xPlane).
		Add(c.Up.Scale(yPlane)).
		Add(c.Forward.Scale(zPlane))

	// dir has unit length along Forward, so this lands on the near plane
	origin := c.Position.Add(dir.Scale(c.Near))
	return vectors.NewRay(origin, dir.Normalize())
}
