package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/m-mizutani/gt"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.RGBA
	}{
		{input: "#E9F5FF", want: color.RGBA{0xE9, 0xF5, 0xFF, 255}},
		{input: "fff7e6", want: color.RGBA{0xFF, 0xF7, 0xE6, 255}},
		{input: "#000000", want: color.RGBA{0, 0, 0, 255}},
		{input: "bad", want: color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			gt.Value(t, parseColor(tt.input)).Equal(tt.want)
		})
	}
}

func TestReds_Endpoints(t *testing.T) {
	gt.Value(t, Reds(0)).Equal(parseColor("#FFF5F0"))
	gt.Value(t, Reds(1)).Equal(parseColor("#67000D"))

	// out of range input is clamped
	gt.Value(t, Reds(-0.5)).Equal(Reds(0))
	gt.Value(t, Reds(7)).Equal(Reds(1))
}

func TestReds_Monotonic(t *testing.T) {
	prev := Reds(0)
	for i := 1; i <= 200; i++ {
		c := Reds(float64(i) / 200)
		if Intensity(c) < Intensity(prev) {
			t.Fatalf("intensity decreased at %d/200: %v -> %v", i, Intensity(prev), Intensity(c))
		}
		if c.R > prev.R || c.G > prev.G || c.B > prev.B {
			t.Fatalf("channel increased at %d/200: %v -> %v", i, prev, c)
		}
		prev = c
	}
}

func TestIntensity(t *testing.T) {
	gt.Bool(t, math.Abs(Intensity(color.RGBA{255, 255, 255, 255})) < 1e-9).True()
	gt.Bool(t, Intensity(color.RGBA{0, 0, 0, 255}) > 0.999).True()
}

func TestAnnotationColor(t *testing.T) {
	theme := DefaultTheme

	// light cells get dark text, dark cells get light text
	gt.Value(t, annotationColor(Reds(0), theme)).Equal(theme.Foreground)
	gt.Value(t, annotationColor(Reds(1), theme)).Equal(theme.Background)
}
