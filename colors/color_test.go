package colors

import (
	"image/color"
	"math"
	"testing"
)

func TestEqualize(t *testing.T) {
	cases := []struct {
		name string
		in   Color4
		want Color4
	}{
		{"in range keeps channels", New(0.2, 0.5, 0.9, 0.3), New(0.2, 0.5, 0.9, 1)},
		{"overflow keeps hue", New(2, 1, 0.5, 1), New(1, 0.5, 0.25, 1)},
		{"transparent black", Transparent(), New(0, 0, 0, 1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.in.Equalize(); got != c.want {
				t.Errorf("Equalize(%v) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestEqualizeIdempotent(t *testing.T) {
	for _, c := range []Color4{
		New(3, 2, 1, 0),
		New(0.1, 0.2, 0.3, 1),
		New(1, 1, 1, 1),
		New(0, 7, 0, 0.5),
	} {
		once := c.Equalize()
		twice := once.Equalize()
		if once != twice {
			t.Errorf("Equalize not idempotent for %v: %v then %v", c, once, twice)
		}
		if once.MaxChannel() > 1 {
			t.Errorf("Equalize(%v) left max channel %f", c, once.MaxChannel())
		}
	}
}

func TestClampHigh(t *testing.T) {
	got := New(1.5, 0.5, 2, 0).ClampHigh()
	if got != New(1, 0.5, 1, 1) {
		t.Errorf("ClampHigh = %v", got)
	}
}

func TestSqrt(t *testing.T) {
	got := New(0.25, 1, -1, 0.5).Sqrt()
	if got != New(0.5, 1, 0, 0.5) {
		t.Errorf("Sqrt = %v", got)
	}
}

func TestToNRGBA(t *testing.T) {
	got := New(1, 0.5, -3, math.NaN()).ToNRGBA()
	want := color.NRGBA{255, 127, 0, 0}
	if got != want {
		t.Errorf("ToNRGBA = %v, want %v", got, want)
	}
}

func TestFromStandardColor(t *testing.T) {
	got := FromStandardColor(color.NRGBA{255, 0, 255, 255})
	if got != New(1, 0, 1, 1) {
		t.Errorf("FromStandardColor = %v", got)
	}
	if FromStandardColor(color.NRGBA{10, 10, 10, 0}) != Transparent() {
		t.Error("fully transparent input should map to Transparent")
	}
	c := New(0.25, 0.5, 0.75, 1)
	if FromStandardColor(c) != c {
		t.Error("Color4 should pass through unchanged")
	}
}

func TestMix(t *testing.T) {
	got := Black().Mix(White(), 0.25)
	if got != New(0.25, 0.25, 0.25, 1) {
		t.Errorf("Mix = %v", got)
	}
}
