package render

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/echoflaresat/whitted/colors"
	"github.com/echoflaresat/whitted/geom"
	"github.com/echoflaresat/whitted/scene"
	"github.com/echoflaresat/whitted/vectors"
)

func smallOptions(w, h int) Options {
	opts := DefaultOptions()
	opts.Width, opts.Height = w, h
	opts.Samples = 4
	opts.ShadowSamples = 1
	return opts
}

func TestOcclusionFraction(t *testing.T) {
	light := vectors.New(0, 10, 0)
	blocker := geom.NewSphere("blocker", vectors.New(0, 5, 0), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	glass := blocker
	glass.Material.Kt, glass.Material.Kr = 0.9, 1.4

	cases := []struct {
		name    string
		scene   *scene.Scene
		samples int
		min     float64
		max     float64
	}{
		{"hard shadow blocked", testScene(blocker), 1, 1, 1},
		{"hard shadow clear", testScene(whiteWall()), 1, 0, 0},
		{"zero samples is hard", testScene(blocker), 0, 1, 1},
		{"translucent never blocks", testScene(glass), 64, 0, 0},
		// the blocker hides a disc of radius ~1 out of the 5x5 light
		{"soft shadow", testScene(blocker), 1024, 0.127 - 0.05, 0.127 + 0.05},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rc := testContext(c.scene, nil)
			got := rc.OcclusionFraction(vectors.Zero(), light, c.samples)
			if got < c.min || got > c.max {
				t.Errorf("occlusion = %f, want [%f, %f]", got, c.min, c.max)
			}
			if c.samples <= 1 && got != 0 && got != 1 {
				t.Errorf("hard shadow not binary: %f", got)
			}
		})
	}
}

func TestOcclusionConverges(t *testing.T) {
	light := vectors.New(0, 10, 0)
	blocker := geom.NewSphere("blocker", vectors.New(0, 5, 0), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	rc := testContext(testScene(blocker), nil)
	// shadow cone of the blocker covers a disc of radius ~1.005 on the light
	want := math.Pi * 1.005 * 1.005 / (AreaLightSide * AreaLightSide)

	const trials = 32
	prev := math.Inf(1)
	for _, samples := range []int{16, 256, 4096} {
		meanErr := 0.0
		for i := 0; i < trials; i++ {
			rc.SeedPixel(i, samples)
			meanErr += math.Abs(rc.OcclusionFraction(vectors.Zero(), light, samples) - want)
		}
		meanErr /= trials
		if meanErr > prev {
			t.Errorf("%d samples: mean error %f grew from %f", samples, meanErr, prev)
		}
		prev = meanErr
	}
	if prev > 0.02 {
		t.Errorf("4096 samples: mean error %f, want < 0.02", prev)
	}
}

func TestOcclusionIgnoresHitsBeyondLight(t *testing.T) {
	behind := geom.NewSphere("behind", vectors.New(0, 12, 0), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	rc := testContext(testScene(behind), nil)
	if got := rc.OcclusionFraction(vectors.Zero(), vectors.New(0, 10, 0), 1); got != 0 {
		t.Errorf("primitive past the light blocked it: %f", got)
	}
}

func TestCamera(t *testing.T) {
	spec := scene.CameraSpec{
		Position: vectors.New(0, 0, 6),
		Target:   vectors.New(0, 0, 5),
		Up:       vectors.New(0, 1, 0),
		FOVDeg:   45,
		Near:     4.5,
	}
	cam := NewCamera(spec, 200, 100)

	center := cam.ComputeRay(100, 50)
	if !nearVec(center.Direction, vectors.New(0, 0, -1)) {
		t.Errorf("center direction %v", center.Direction)
	}
	if !nearVec(center.Origin, vectors.New(0, 0, 1.5)) {
		t.Errorf("center ray starts at %v, want the near plane", center.Origin)
	}

	corner := cam.ComputeRay(0, 0)
	if corner.Direction.X >= 0 || corner.Direction.Y <= 0 {
		t.Errorf("top left ray %v should point left and up", corner.Direction)
	}
	if math.Abs(corner.Origin.Z-1.5) > 1e-9 {
		t.Errorf("corner origin %v off the near plane", corner.Origin)
	}
	// vertical fov, wider horizontally
	if math.Abs(corner.Direction.Y/-corner.Direction.Z-math.Tan(math.Pi/8)) > 1e-9 {
		t.Errorf("vertical half angle wrong: %v", corner.Direction)
	}
	if math.Abs(corner.Direction.X/corner.Direction.Y+2) > 1e-9 {
		t.Errorf("aspect not applied: %v", corner.Direction)
	}

	// up parallel to the view axis still yields a basis
	spec.Up = vectors.New(0, 0, 1)
	cam = NewCamera(spec, 10, 10)
	if cam.Right.Norm() == 0 || math.Abs(cam.Right.Dot(cam.Forward)) > 1e-9 {
		t.Errorf("degenerate basis: right %v forward %v", cam.Right, cam.Forward)
	}
}

func nearVec(a, b vectors.Vec3) bool {
	return vectors.Distance(a, b) < 1e-9
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Options)
		ok     bool
	}{
		{"defaults", func(*Options) {}, true},
		{"zero width", func(o *Options) { o.Width = 0 }, false},
		{"no samples", func(o *Options) { o.Samples = 0 }, false},
		{"no shadow samples", func(o *Options) { o.ShadowSamples = 0 }, false},
		{"negative depth", func(o *Options) { o.MaxDepth = -1 }, false},
		{"no workers", func(o *Options) { o.Workers = 0 }, false},
		{"region inside", func(o *Options) { o.Region = image.Rect(10, 10, 20, 20) }, true},
		{"region outside", func(o *Options) { o.Region = image.Rect(500, 500, 600, 600) }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := DefaultOptions()
			c.mutate(&o)
			err := o.Validate()
			if c.ok && err != nil {
				t.Errorf("unexpected error %v", err)
			}
			if !c.ok && !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestTile(t *testing.T) {
	o := smallOptions(10, 7)
	r, err := o.Tile(2, 1, 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := image.Rect(6, 3, 10, 7); r != want {
		t.Errorf("edge tile %v, want %v", r, want)
	}
	if _, err := o.Tile(3, 0, 3, 2); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("tile outside grid: %v", err)
	}
}

func TestRenderRedSphere(t *testing.T) {
	s := testScene(redBall())
	img, stats, err := Render(context.Background(), s, smallOptions(33, 33))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 33, 33) {
		t.Fatalf("bounds %v", img.Bounds())
	}

	center := img.NRGBAAt(16, 16)
	if center.R < 250 || center.G != 0 || center.B != 0 || center.A != 255 {
		t.Errorf("center pixel %v, want bright red", center)
	}
	if corner := img.NRGBAAt(0, 0); corner != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("corner pixel %v, want opaque black", corner)
	}
	edge := img.NRGBAAt(28, 16)
	if edge.R == 0 || edge.R >= center.R {
		t.Errorf("edge pixel %v should be dimmer than center %v", edge, center)
	}

	if stats.PrimaryRays != 33*33*4 || stats.Rows != 33 {
		t.Errorf("stats %+v", stats)
	}
	if stats.ShadowRays == 0 {
		t.Error("no shadow rays counted")
	}
	if table := stats.Table(); !strings.Contains(table, "test") {
		t.Errorf("stats table:\n%s", table)
	}
}

// tableColumn returns the cell under header in the first data row of a
// tablewriter table.
func tableColumn(t *testing.T, table, header string) string {
	t.Helper()
	var rows [][]string
	for _, line := range strings.Split(table, "\n") {
		if !strings.HasPrefix(line, "|") {
			continue
		}
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		rows = append(rows, cells)
	}
	if len(rows) < 2 {
		t.Fatalf("table has no data row:\n%s", table)
	}
	for i, h := range rows[0] {
		if h == header {
			return rows[1][i]
		}
	}
	t.Fatalf("no %q column:\n%s", header, table)
	return ""
}

func TestStatsTable(t *testing.T) {
	stats := Stats{
		Scene:         "box",
		Bounds:        image.Rect(0, 0, 4, 2),
		Samples:       8,
		Workers:       2,
		Rows:          2,
		PrimaryRays:   64,
		SecondaryRays: 10,
		ShadowRays:    100,
		Elapsed:       1500 * time.Millisecond,
	}
	table := stats.Table()

	cases := []struct {
		column string
		want   string
	}{
		{"Scene", "box"},
		{"Primary", "64"},
		{"Secondary", "10"},
		{"Shadow", "100"},
		{"Total", "174"},
		{"Elapsed", "1.5s"},
	}
	for _, c := range cases {
		t.Run(c.column, func(t *testing.T) {
			if got := tableColumn(t, table, c.column); got != c.want {
				t.Errorf("%s = %q, want %q", c.column, got, c.want)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	s, err := scene.Preset("cornell", 1)
	if err != nil {
		t.Fatal(err)
	}
	opts := smallOptions(16, 12)
	opts.Samples = 2
	opts.ShadowSamples = 4

	var ref *image.NRGBA
	for _, workers := range []int{1, 3, 8} {
		opts.Workers = workers
		img, _, err := Render(context.Background(), s, opts)
		if err != nil {
			t.Fatal(err)
		}
		if ref == nil {
			ref = img
			continue
		}
		if !bytes.Equal(ref.Pix, img.Pix) {
			t.Errorf("%d workers produced a different image", workers)
		}
	}

	// a tile matches the same region of the full frame
	opts.Region = image.Rect(4, 3, 12, 9)
	tile, _, err := Render(context.Background(), s, opts)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if tile.NRGBAAt(x, y) != ref.NRGBAAt(x+4, y+3) {
				t.Fatalf("tile pixel %d,%d = %v, frame has %v", x, y, tile.NRGBAAt(x, y), ref.NRGBAAt(x+4, y+3))
			}
		}
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := Render(ctx, testScene(redBall()), smallOptions(8, 8)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRenderInvalidOptions(t *testing.T) {
	opts := smallOptions(8, 8)
	opts.Samples = 0
	if _, _, err := Render(context.Background(), testScene(redBall()), opts); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestProbe(t *testing.T) {
	frontBall := geom.NewSphere("front", vectors.New(0, 0, 0), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	backBall := geom.NewSphere("back", vectors.New(0, 0, -3), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	behindCamera := geom.NewSphere("behind", vectors.New(0, 0, 5), 0.5, geom.Diffuse(colors.Red(), 0, 1))
	s := testScene(backBall, behindCamera, frontBall)

	opts := smallOptions(9, 9)
	res := Probe(s, opts, 4, 4)
	if len(res.Hits) != 3 {
		t.Fatalf("%d hits, want 3", len(res.Hits))
	}
	if res.Hits[1].T >= 0 {
		t.Errorf("sphere behind the camera at t=%f, want negative", res.Hits[1].T)
	}
	if res.Closest.Name != "front" || res.Closest.ID != 2 {
		t.Errorf("closest = %s (%d), want front (2)", res.Closest.Name, res.Closest.ID)
	}
	if l := res.Hits[2].Light; l.Z <= 0 || math.Abs(l.Norm()-1) > 1e-9 {
		t.Errorf("light direction %v", l)
	}

	table := res.Table()
	for _, want := range []string{"front", "back", "behind", "CLOSEST"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}
