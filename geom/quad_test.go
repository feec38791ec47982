package geom

import (
	"math"
	"testing"

	"github.com/echoflaresat/whitted/vectors"
)

func unitSquare() Primitive {
	return NewQuad("unit", vectors.Zero(), vectors.New(1, 0, 0), vectors.New(0, 1, 0), Material{})
}

func TestQuad_Intersect_Basic(t *testing.T) {
	q := unitSquare()
	hit := q.Intersect(vectors.NewRay(vectors.New(0.5, 0.5, 3), vectors.New(0, 0, -1)))
	if !hit.Hit() {
		t.Fatal("Expected hit, got miss")
	}
	if math.Abs(hit.T-3) > tolerance {
		t.Errorf("Expected t=3, got %f", hit.T)
	}
	if !vecNear(hit.Point, vectors.New(0.5, 0.5, 0)) {
		t.Errorf("Expected point (0.5,0.5,0), got %v", hit.Point)
	}
	if !vecNear(hit.Normal, vectors.New(0, 0, 1)) {
		t.Errorf("Expected normal +Z, got %v", hit.Normal)
	}
	if math.Abs(hit.U-0.75) > tolerance || math.Abs(hit.V-0.25) > tolerance {
		t.Errorf("Expected uv (0.75,0.25), got (%f,%f)", hit.U, hit.V)
	}
}

func TestQuad_Intersect_ParallelRejected(t *testing.T) {
	q := unitSquare().Quad
	for _, origin := range []vectors.Vec3{
		vectors.New(0, 0, 0),
		vectors.New(0, 0, 1),
		vectors.New(-7, 3, -2),
	} {
		ray := vectors.NewRay(origin, vectors.New(1, 1, 0))
		if got := q.PlaneIntersect(ray); !math.IsInf(got, 1) {
			t.Errorf("origin %v: expected +Inf for parallel ray, got %f", origin, got)
		}
		if got := q.Intersect(ray); !math.IsInf(got, 1) {
			t.Errorf("origin %v: expected +Inf for parallel ray, got %f", origin, got)
		}
	}
}

func TestQuad_Intersect_OutsideExtent(t *testing.T) {
	q := unitSquare().Quad
	tests := []struct {
		name   string
		origin vectors.Vec3
	}{
		{"beyond +X", vectors.New(1.5, 0, 2)},
		{"beyond -Y", vectors.New(0, -1.01, 2)},
		{"far corner", vectors.New(3, 3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := vectors.NewRay(tt.origin, vectors.New(0, 0, -1))
			if plane := q.PlaneIntersect(ray); math.Abs(plane-2) > tolerance {
				t.Fatalf("plane test should succeed at t=2, got %f", plane)
			}
			if got := q.Intersect(ray); !math.IsInf(got, 1) {
				t.Errorf("Expected +Inf outside the quad, got %f", got)
			}
		})
	}
}

func TestQuad_Contains_ArbitraryOrientation(t *testing.T) {
	u := vectors.New(1, 1, 0).Normalize()
	v := vectors.New(0, 0.3, 1).Normalize()
	v = v.Sub(u.Scale(u.Dot(v))).Normalize()
	center := vectors.New(2, -1, 4)
	q := NewQuad("tilted", center, u, v, Material{}).Quad

	inside := center.Add(u.Scale(0.9)).Add(v.Scale(-0.9))
	outside := center.Add(u.Scale(1.1))
	if !q.Contains(inside) {
		t.Errorf("expected %v inside tilted quad", inside)
	}
	if q.Contains(outside) {
		t.Errorf("expected %v outside tilted quad", outside)
	}

	ray := vectors.NewRay(inside.Add(q.Normal.Scale(2)), q.Normal.Neg())
	if got := q.Intersect(ray); math.Abs(got-2) > 1e-6 {
		t.Errorf("Expected t=2 on tilted quad, got %f", got)
	}
}

func TestQuad_DiagonalIsInside(t *testing.T) {
	q := unitSquare().Quad
	if !q.Contains(vectors.New(0.3, 0.3, 0)) {
		t.Error("point on the shared diagonal should be inside")
	}
}
