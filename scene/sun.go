package scene

import (
	"time"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/vectors"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// Site is an observer on the ground, in degrees. East longitude is positive.
type Site struct {
	Lat float64
	Lon float64
}

// SunDirectionECEF returns the unit vector from the Earth's center toward
// the Sun at t, in Earth-fixed coordinates.
func SunDirectionECEF(t time.Time) vectors.Vec3 {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)

	// equatorial, inertial
	x := dec.Cos() * ra.Cos()
	y := dec.Cos() * ra.Sin()
	z := dec.Sin()

	// rotate into the Earth-fixed frame by the sidereal angle at t
	gst := sidereal.Apparent(jd).Angle()
	cosGST := gst.Cos()
	sinGST := gst.Sin()

	return vectors.Vec3{
		X: x*cosGST + y*sinGST,
		Y: -x*sinGST + y*cosGST,
		Z: z,
	}
}

// SunDirection returns the direction to the Sun as seen from the site in
// scene axes: +X east, +Y up, -Z north.
func (s Site) SunDirection(t time.Time) vectors.Vec3 {
	d := SunDirectionECEF(t)

	lat := unit.AngleFromDeg(s.Lat)
	lon := unit.AngleFromDeg(s.Lon)
	sinLat, cosLat := lat.Sin(), lat.Cos()
	sinLon, cosLon := lon.Sin(), lon.Cos()

	east := -sinLon*d.X + cosLon*d.Y
	north := -sinLat*cosLon*d.X - sinLat*sinLon*d.Y + cosLat*d.Z
	up := cosLat*cosLon*d.X + cosLat*sinLon*d.Y + sinLat*d.Z

	return vectors.Vec3{X: east, Y: up, Z: -north}
}

// SunLight places a white light distance units from target toward the Sun.
// A sun below the horizon still yields a light, under the floor.
func SunLight(t time.Time, site Site, target vectors.Vec3, distance float64) Light {
	return Light{
		Position: target.Add(site.SunDirection(t).Scale(distance)),
		Color:    colors.White(),
	}
}
