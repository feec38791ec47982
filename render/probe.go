package render

import (
	"bytes"
	"fmt"

	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
	"github.com/olekukonko/tablewriter"
)

type ProbeHit struct {
	geom.Intersection
	// unit direction from the hit toward the light
	Light vectors.Vec3
}

// ProbeResult lists every primitive the ray crosses, in scene order, and
// the closest hit in front of the camera.
type ProbeResult struct {
	Ray     vectors.Ray
	Hits    []ProbeHit
	Closest geom.Intersection
}

// Probe casts one ray through the center of pixel (x, y) and reports every
// intersection along it, including ones behind the origin.
func Probe(s *scene.Scene, opts Options, x, y int) ProbeResult {
	camera := NewCamera(s.Camera, opts.Width, opts.Height)
	ray := camera.ComputeRay(float64(x)+0.5, float64(y)+0.5)

	res := ProbeResult{Ray: ray, Closest: geom.Miss()}
	for i := range s.Primitives {
		hit := s.Primitives[i].Intersect(ray)
		if !hit.Hit() {
			continue
		}
		hit.ID = i
		res.Hits = append(res.Hits, ProbeHit{
			Intersection: hit,
			Light:        s.Light.Position.Sub(hit.Point).Normalize(),
		})
		if hit.T > 0 && hit.T < res.Closest.T {
			res.Closest = hit
		}
	}
	return res
}

func fmtVec(v vectors.Vec3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func (r ProbeResult) Table() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Name", "t", "P", "N", "L"})
	for _, h := range r.Hits {
		table.Append([]string{
			fmt.Sprintf("%d", h.ID),
			h.Name,
			fmt.Sprintf("%.6f", h.T),
			fmtVec(h.Point),
			fmtVec(h.Normal),
			fmtVec(h.Light),
		})
	}
	closest := "none"
	if r.Closest.Hit() {
		closest = r.Closest.Name
	}
	table.SetFooter([]string{"", "CLOSEST", closest, "", "", ""})
	table.Render()
	return buf.String()
}
