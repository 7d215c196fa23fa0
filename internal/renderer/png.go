package renderer

import (
	"image"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// HAlign is the horizontal alignment of text relative to its anchor
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

// kappa places cubic control points for a quarter circle
const kappa = 0.5522847498

// fillPath rasterizes the path built by fn and composites col over the canvas
func (c *Canvas) fillPath(col color.Color, fn func(z *vector.Rasterizer)) {
	b := c.img.Bounds()
	c.raster.Reset(b.Dx(), b.Dy())
	c.raster.DrawOp = draw.Over
	fn(c.raster)
	c.raster.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// FillRect fills an axis-aligned rectangle
func (c *Canvas) FillRect(r Rect, col color.Color) {
	c.fillPath(col, func(z *vector.Rasterizer) {
		polygon(z, Point{r.X, r.Y}, Point{r.Right(), r.Y}, Point{r.Right(), r.Bottom()}, Point{r.X, r.Bottom()})
	})
}

// FillPixels fills whole pixels without anti-aliasing
func (c *Canvas) FillPixels(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Src)
}

// StrokeRect draws the outline of r with the given line width inside its bounds
func (c *Canvas) StrokeRect(r Rect, width float64, col color.Color) {
	c.FillRect(Rect{X: r.X, Y: r.Y, W: r.W, H: width}, col)
	c.FillRect(Rect{X: r.X, Y: r.Bottom() - width, W: r.W, H: width}, col)
	c.FillRect(Rect{X: r.X, Y: r.Y, W: width, H: r.H}, col)
	c.FillRect(Rect{X: r.Right() - width, Y: r.Y, W: width, H: r.H}, col)
}

// RoundedBox draws a rounded rectangle whose outer edge is r, stroked inside its bounds
func (c *Canvas) RoundedBox(r Rect, radius, stroke float64, fillColor, strokeColor color.Color) {
	c.fillPath(strokeColor, func(z *vector.Rasterizer) {
		roundedRectPath(z, r, radius)
	})
	inner := Rect{X: r.X + stroke, Y: r.Y + stroke, W: r.W - 2*stroke, H: r.H - 2*stroke}
	if inner.W <= 0 || inner.H <= 0 {
		return
	}
	c.fillPath(fillColor, func(z *vector.Rasterizer) {
		roundedRectPath(z, inner, math.Max(radius-stroke, 0))
	})
}

// Line draws a straight segment of the given width
func (c *Canvas) Line(a, b Point, width float64, col color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*width/2, dx/length*width/2

	c.fillPath(col, func(z *vector.Rasterizer) {
		polygon(z,
			Point{a.X + nx, a.Y + ny},
			Point{b.X + nx, b.Y + ny},
			Point{b.X - nx, b.Y - ny},
			Point{a.X - nx, a.Y - ny},
		)
	})
}

// Arrow draws a shaft from Start to End finished with a filled triangular head.
// The head takes at most half the arrow so the shaft is always visible.
func (c *Canvas) Arrow(a ArrowLayout, width, headLength, headWidth float64, col color.Color) {
	dx, dy := a.End.X-a.Start.X, a.End.Y-a.Start.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	ux, uy := dx/length, dy/length
	headLength = arrowHead(headLength, length)

	base := Point{X: a.End.X - ux*headLength, Y: a.End.Y - uy*headLength}
	c.Line(a.Start, base, width, col)

	nx, ny := -uy*headWidth/2, ux*headWidth/2
	c.fillPath(col, func(z *vector.Rasterizer) {
		polygon(z,
			a.End,
			Point{base.X + nx, base.Y + ny},
			Point{base.X - nx, base.Y - ny},
		)
	})
}

// MeasureText returns the width of the widest line and the height of the text block
func (c *Canvas) MeasureText(text string, face font.Face) (float64, float64) {
	lines := strings.Split(text, "\n")
	width := 0.0
	for _, line := range lines {
		width = math.Max(width, fixedToFloat(font.MeasureString(face, line)))
	}
	return width, blockHeight(face, len(lines))
}

// DrawText draws text, one line per '\n', vertically centered on anchor.Y
func (c *Canvas) DrawText(text string, anchor Point, face font.Face, col color.Color, align HAlign) {
	drawTextOn(c.img, text, anchor, face, col, align)
}

// DrawTextRotated draws single-line text rotated counter-clockwise by degrees,
// placing the top center of the rotated bounding box at anchor.
func (c *Canvas) DrawTextRotated(text string, anchor Point, face font.Face, col color.Color, degrees float64) {
	w, h := c.MeasureText(text, face)
	const pad = 2
	tw, th := int(math.Ceil(w))+2*pad, int(math.Ceil(h))+2*pad
	tmp := image.NewRGBA(image.Rect(0, 0, tw, th))
	drawTextOn(tmp, text, Point{X: float64(tw) / 2, Y: float64(th) / 2}, face, col, AlignCenter)

	theta := degrees * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)

	// bounding box of the rotated source rectangle
	minX, maxX, minY := math.Inf(1), math.Inf(-1), math.Inf(1)
	for _, p := range []Point{{0, 0}, {float64(tw), 0}, {0, float64(th)}, {float64(tw), float64(th)}} {
		x := cos*p.X + sin*p.Y
		y := -sin*p.X + cos*p.Y
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
	}

	m := f64.Aff3{
		cos, sin, anchor.X - (minX+maxX)/2,
		-sin, cos, anchor.Y - minY,
	}
	draw.BiLinear.Transform(c.img, m, tmp, tmp.Bounds(), draw.Over, nil)
}

func drawTextOn(dst draw.Image, text string, anchor Point, face font.Face, col color.Color, align HAlign) {
	lines := strings.Split(text, "\n")
	metrics := face.Metrics()
	top := anchor.Y - blockHeight(face, len(lines))/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}

	for i, line := range lines {
		w := fixedToFloat(d.MeasureString(line))
		x := anchor.X
		switch align {
		case AlignCenter:
			x -= w / 2
		case AlignRight:
			x -= w
		}
		baseline := top + fixedToFloat(metrics.Ascent) + float64(i)*fixedToFloat(metrics.Height)
		d.Dot = fixed.Point26_6{X: floatToFixed(x), Y: floatToFixed(baseline)}
		d.DrawString(line)
	}
}

// blockHeight is the height of n lines from the first ascender to the last descender
func blockHeight(face font.Face, n int) float64 {
	m := face.Metrics()
	return float64(n-1)*fixedToFloat(m.Height) + fixedToFloat(m.Ascent) + fixedToFloat(m.Descent)
}

func roundedRectPath(z *vector.Rasterizer, r Rect, radius float64) {
	radius = math.Min(radius, math.Min(r.W, r.H)/2)
	k := kappa * radius
	x0, y0, x1, y1 := r.X, r.Y, r.Right(), r.Bottom()

	z.MoveTo(f32(x0+radius), f32(y0))
	z.LineTo(f32(x1-radius), f32(y0))
	z.CubeTo(f32(x1-radius+k), f32(y0), f32(x1), f32(y0+radius-k), f32(x1), f32(y0+radius))
	z.LineTo(f32(x1), f32(y1-radius))
	z.CubeTo(f32(x1), f32(y1-radius+k), f32(x1-radius+k), f32(y1), f32(x1-radius), f32(y1))
	z.LineTo(f32(x0+radius), f32(y1))
	z.CubeTo(f32(x0+radius-k), f32(y1), f32(x0), f32(y1-radius+k), f32(x0), f32(y1-radius))
	z.LineTo(f32(x0), f32(y0+radius))
	z.CubeTo(f32(x0), f32(y0+radius-k), f32(x0+radius-k), f32(y0), f32(x0+radius), f32(y0))
	z.ClosePath()
}

func polygon(z *vector.Rasterizer, pts ...Point) {
	z.MoveTo(f32(pts[0].X), f32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(f32(p.X), f32(p.Y))
	}
	z.ClosePath()
}

// arrowHead returns the head length drawn for an arrow of the given length
func arrowHead(headLength, length float64) float64 {
	return math.Min(headLength, length/2)
}

func f32(v float64) float32 { return float32(v) }

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }
