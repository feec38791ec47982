package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/echoflaresat/whitted/imageio"
)

// run invokes the command line app the way a user would.
func run(t *testing.T, args ...string) {
	t.Helper()
	if err := newApp().Run(append([]string{"whitted"}, args...)); err != nil {
		t.Fatalf("whitted %v: %v", args, err)
	}
}

var quick = []string{"--width", "24", "--height", "18", "--spp", "2", "--shadow-samples", "4", "--depth", "4"}

func renderArgs(sceneArgs []string, extra ...string) []string {
	args := append([]string{"render"}, sceneArgs...)
	args = append(args, quick...)
	return append(args, extra...)
}

func TestViews(t *testing.T) {
	dir := t.TempDir()
	sceneFile := filepath.Join(dir, "room.json")
	if err := os.WriteFile(sceneFile, []byte(roomJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name  string
		scene []string
	}{
		{"sphere", []string{"--scene", "sphere"}},
		{"square", []string{"--scene", "square"}},
		{"cornell", []string{"--scene", "cornell"}},
		{"cornell-random", []string{"--scene", "cornell-random", "--seed", "7"}},
		{"dolly", []string{"--scene", "cornell", "--dolly", "2", "--pan", "-1"}},
		{"sun", []string{"--scene", "sphere", "--sun-time", "2024-06-21T12:00:00Z", "--site", "47.5,19"}},
		{"file", []string{"--scene-file", sceneFile}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			first := filepath.Join(dir, c.name+"-1.png")
			second := filepath.Join(dir, c.name+"-8.png")
			run(t, renderArgs(c.scene, "--workers", "1", "-o", first)...)
			run(t, renderArgs(c.scene, "--workers", "8", "-o", second)...)

			a := load(t, first)
			b := load(t, second)
			if a.Bounds() != image.Rect(0, 0, 24, 18) {
				t.Fatalf("unexpected bounds %v", a.Bounds())
			}
			if !imagesEqual(a, b) {
				t.Fatal("frame depends on the number of workers")
			}
		})
	}
}

func TestTilesMergeIntoFrame(t *testing.T) {
	dir := t.TempDir()
	scene := []string{"--scene", "cornell"}

	full := filepath.Join(dir, "full.png")
	run(t, renderArgs(scene, "-o", full)...)

	mergeArgs := []string{"merge", "3x2", filepath.Join(dir, "merged.png")}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			out := filepath.Join(dir, fmt.Sprintf("tile_%d_%d.png", col, row))
			run(t, renderArgs(scene, "--grid", "3x2", "--tile", fmt.Sprintf("%d,%d", col, row), "-o", out)...)
			mergeArgs = append(mergeArgs, out)
		}
	}
	run(t, mergeArgs...)

	if !imagesEqual(load(t, full), load(t, filepath.Join(dir, "merged.png"))) {
		t.Fatal("merged tiles differ from the full frame")
	}
}

func TestRenderRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		args []string
	}{
		{"unknown scene", renderArgs([]string{"--scene", "teapot"}, "-o", filepath.Join(dir, "a.png"))},
		{"missing file", renderArgs([]string{"--scene-file", filepath.Join(dir, "none.json")}, "-o", filepath.Join(dir, "b.png"))},
		{"bad tile", renderArgs([]string{"--scene", "sphere"}, "--grid", "2x2", "--tile", "2,0", "-o", filepath.Join(dir, "c.png"))},
		{"fractional tile", renderArgs([]string{"--scene", "sphere"}, "--grid", "2x2", "--tile", "0.5,0", "-o", filepath.Join(dir, "e.png"))},
		{"bad format", renderArgs([]string{"--scene", "sphere"}, "-o", filepath.Join(dir, "d.gif"))},
		{"probe outside", []string{"probe", "--width", "8", "--height", "8", "9", "0"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := newApp().Run(append([]string{"whitted"}, c.args...)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestProbeAndScenes(t *testing.T) {
	run(t, "probe", "--scene", "cornell", "--width", "16", "--height", "16", "8", "8")
	run(t, "scenes", "--seed", "3")
}

func load(t *testing.T, path string) image.Image {
	t.Helper()
	img, err := imageio.Load(path)
	if err != nil {
		t.Fatalf("failed to load %s: %v", path, err)
	}
	return img
}

func imagesEqual(a, b image.Image) bool {
	var bufA, bufB bytes.Buffer
	_ = png.Encode(&bufA, a)
	_ = png.Encode(&bufB, b)
	return bytes.Equal(bufA.Bytes(), bufB.Bytes())
}

const roomJSON = `{
  "name": "room",
  "camera": {"position": [0, 0, 3], "target": [0, 0, 0]},
  "light": {"position": [0, 1, 2], "color": [1, 1, 1]},
  "primitives": [
    {"type": "sphere", "center": [0, 0, 0], "radius": 0.5,
     "material": {"color": [0.2, 0.4, 1], "kr": 0.3}},
    {"type": "quad", "center": [0, -0.6, 0], "u": [2, 0, 0], "v": [0, 0, -2],
     "material": {"color": [0.8, 0.8, 0.8], "kd": 1}}
  ]
}`
