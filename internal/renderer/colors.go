package renderer

import (
	"fmt"
	"image/color"
	"math"
	"strings"
)

// redsPalette is the nine-class ColorBrewer "Reds" sequential scheme, light to dark
var redsPalette = []string{
	"#FFF5F0",
	"#FEE0D2",
	"#FCBBA1",
	"#FC9272",
	"#FB6A4A",
	"#EF3B2C",
	"#CB181D",
	"#A50F15",
	"#67000D",
}

var redsStops = func() []color.RGBA {
	stops := make([]color.RGBA, len(redsPalette))
	for i, hex := range redsPalette {
		stops[i] = parseColor(hex)
	}
	return stops
}()

// Reds maps norm in [0,1] onto the Reds scale. Out-of-range input is clamped.
func Reds(norm float64) color.RGBA {
	if math.IsNaN(norm) || norm <= 0 {
		return redsStops[0]
	}
	if norm >= 1 {
		return redsStops[len(redsStops)-1]
	}

	pos := norm * float64(len(redsStops)-1)
	i := int(pos)
	t := pos - float64(i)
	a, b := redsStops[i], redsStops[i+1]

	return color.RGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: 255,
	}
}

// Intensity returns how dark a color is, 0 for white and 1 for black,
// using Rec. 709 luma weights.
func Intensity(c color.RGBA) float64 {
	luma := 0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)
	return 1 - luma/255
}

// annotationColor picks a text color that stays readable on the given fill
func annotationColor(fill color.RGBA, theme Theme) color.RGBA {
	if Intensity(fill) > 0.5 {
		return theme.Background
	}
	return theme.Foreground
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// parseColor parses a hex color string
func parseColor(hexColor string) color.RGBA {
	hexColor = strings.TrimPrefix(hexColor, "#")

	var r, g, b uint8
	if len(hexColor) == 6 {
		fmt.Sscanf(hexColor, "%02x%02x%02x", &r, &g, &b)
	}

	return color.RGBA{r, g, b, 255}
}
