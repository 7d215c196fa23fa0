package renderer

import (
	"context"
	"image"
	"math"
	"strconv"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/m-mizutani/goerr/v2"
)

const (
	heatmapWidthIn  = 6.0
	heatmapHeightIn = 5.0

	heatmapTitleSize  = 13.0
	tickLabelSize     = 10.0
	annotationSize    = 11.0
	xTickRotation     = 15.0
	maxColorbarTicks  = 11
	heatmapMargin     = 36.0
	heatmapTitleGap   = 36.0
	tickLength        = 9.0
	tickLabelPad      = 9.0
	axisWidth         = 2.0
	colorbarPad       = 36.0
	colorbarWidth     = 36.0
	colorbarLineWidth = 1.5
)

// RenderHeatmap draws the risk matrix as a color-mapped grid with the value
// printed in each cell, labeled axes and a color legend, and saves it to path.
func RenderHeatmap(ctx context.Context, hm diagram.Heatmap, path string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}
	c, err := NewCanvas(heatmapWidthIn, heatmapHeightIn, DefaultTheme)
	if err != nil {
		return wrapRenderError(err, "heatmap", path)
	}
	defer c.Close()

	if err := drawHeatmap(c, hm); err != nil {
		return wrapRenderError(err, "heatmap", path)
	}

	if err := c.Save(path); err != nil {
		return wrapRenderError(err, "heatmap", path)
	}
	return nil
}

func drawHeatmap(c *Canvas, hm diagram.Heatmap) error {
	theme := c.Theme()

	titleFace, err := c.Face(true, heatmapTitleSize)
	if err != nil {
		return err
	}
	tickFace, err := c.Face(false, tickLabelSize)
	if err != nil {
		return err
	}
	cellFace, err := c.Face(true, annotationSize)
	if err != nil {
		return err
	}

	if len(hm.Values) == 0 || len(hm.Rows) != len(hm.Values) || len(hm.Columns) != len(hm.Values[0]) {
		return goerr.Wrap(diagram.ErrInvalidDiagram, "heatmap labels do not match values",
			goerr.V("rows", len(hm.Rows)), goerr.V("columns", len(hm.Columns)), goerr.V("values", len(hm.Values)))
	}

	lo, hi := matrixRange(hm.Values)
	ticks := colorbarTicks(lo, hi)

	// reserve room for labels around the grid
	rowLabelW := 0.0
	for _, label := range hm.Rows {
		w, _ := c.MeasureText(label, tickFace)
		rowLabelW = math.Max(rowLabelW, w)
	}
	colLabelH := 0.0
	sin, cos := math.Sincos(xTickRotation * math.Pi / 180)
	for _, label := range hm.Columns {
		w, h := c.MeasureText(label, tickFace)
		colLabelH = math.Max(colLabelH, w*sin+h*cos)
	}
	tickLabelW := 0.0
	for _, v := range ticks {
		w, _ := c.MeasureText(strconv.Itoa(v), tickFace)
		tickLabelW = math.Max(tickLabelW, w)
	}
	_, titleH := c.MeasureText(hm.Title, titleFace)

	left := heatmapMargin + rowLabelW + tickLength + tickLabelPad
	top := heatmapMargin + titleH + heatmapTitleGap
	right := colorbarPad + colorbarWidth + tickLength + tickLabelPad + tickLabelW + heatmapMargin
	bottom := tickLength + tickLabelPad + colLabelH + heatmapMargin

	rows, cols := float64(len(hm.Rows)), float64(len(hm.Columns))
	cell := math.Min((c.Width()-left-right)/cols, (c.Height()-top-bottom)/rows)
	if cell <= 0 {
		return goerr.Wrap(ErrInsufficientSpace, "heatmap grid does not fit", goerr.V("rows", rows), goerr.V("cols", cols))
	}

	grid := Rect{X: left, Y: top, W: cell * cols, H: cell * rows}
	layout, err := CalculateHeatmapLayout(hm.Values, grid)
	if err != nil {
		return err
	}

	for _, hc := range layout.Cells {
		c.FillRect(hc.Rect, hc.Color)
		c.DrawText(hc.Label, hc.Rect.Center(), cellFace, annotationColor(hc.Color, theme), AlignCenter)
	}
	c.StrokeRect(grid, axisWidth, theme.Foreground)

	for i, label := range hm.Rows {
		y := grid.Y + (float64(i)+0.5)*cell
		c.Line(Point{X: grid.X - tickLength, Y: y}, Point{X: grid.X, Y: y}, axisWidth, theme.Foreground)
		c.DrawText(label, Point{X: grid.X - tickLength - tickLabelPad, Y: y}, tickFace, theme.Foreground, AlignRight)
	}
	for j, label := range hm.Columns {
		x := grid.X + (float64(j)+0.5)*cell
		c.Line(Point{X: x, Y: grid.Bottom()}, Point{X: x, Y: grid.Bottom() + tickLength}, axisWidth, theme.Foreground)
		c.DrawTextRotated(label, Point{X: x, Y: grid.Bottom() + tickLength + tickLabelPad}, tickFace, theme.Foreground, xTickRotation)
	}

	if hm.Title != "" {
		c.DrawText(hm.Title, Point{X: grid.X + grid.W/2, Y: heatmapMargin + titleH/2}, titleFace, theme.Foreground, AlignCenter)
	}

	bar := Rect{X: grid.Right() + colorbarPad, Y: grid.Y, W: colorbarWidth, H: grid.H}
	drawColorbar(c, bar, layout.Min, layout.Max)
	for _, v := range ticks {
		y := bar.Bottom() - normalize(v, layout.Min, layout.Max)*bar.H
		c.Line(Point{X: bar.Right(), Y: y}, Point{X: bar.Right() + tickLength, Y: y}, colorbarLineWidth, theme.Foreground)
		c.DrawText(strconv.Itoa(v), Point{X: bar.Right() + tickLength + tickLabelPad, Y: y}, tickFace, theme.Foreground, AlignLeft)
	}

	return nil
}

// drawColorbar paints the colormap bottom (low) to top (high) inside bar
func drawColorbar(c *Canvas, bar Rect, lo, hi int) {
	x0, x1 := int(math.Round(bar.X)), int(math.Round(bar.Right()))
	y0, y1 := int(math.Round(bar.Y)), int(math.Round(bar.Bottom()))
	span := float64(y1 - y0)

	for y := y0; y < y1; y++ {
		norm := 1 - (float64(y-y0)+0.5)/span
		if lo == hi {
			norm = 0
		}
		c.FillPixels(image.Rect(x0, y, x1, y+1), Reds(norm))
	}
	c.StrokeRect(bar, colorbarLineWidth, c.Theme().Foreground)
}

// colorbarTicks returns at most maxColorbarTicks integer ticks covering [lo, hi]
func colorbarTicks(lo, hi int) []int {
	step := 1
	if n := hi - lo + 1; n > maxColorbarTicks {
		step = (n + maxColorbarTicks - 1) / maxColorbarTicks
	}

	var ticks []int
	for v := lo; v <= hi; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}
