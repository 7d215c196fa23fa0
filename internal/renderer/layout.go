package renderer

import (
	"image/color"
	"math"
	"strconv"

	"github.com/m-mizutani/goerr/v2"
)

// Layout errors
var (
	ErrNoLabels          = goerr.New("no labels to lay out")
	ErrInsufficientSpace = goerr.New("canvas too small for layout")
)

// Workflow geometry in pixels at DPI
const (
	workflowSideMargin = 108.0 // 0.6in
	workflowBoxWidth   = 306.0 // 1.7in
	workflowBoxHeight  = 216.0 // 1.2in
	workflowShrinkStep = 54.0
	workflowMinGap     = 36.0
	workflowTitleSpace = 180.0

	arrowMarginRatio = 0.15
	maxArrowMargin   = 18.0
)

// Flowchart geometry in pixels at DPI
const (
	flowchartBoxWidth    = 1440.0 // 8in
	flowchartBoxHeight   = 153.0  // 0.85in
	flowchartGap         = 72.0   // 0.4in
	flowchartStartY      = 162.0
	flowchartBottomSpace = 54.0
	flowchartArrowInset  = 0.1 // fraction of the gap
)

// Point represents a 2D coordinate in image space (y grows downward)
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle
type Rect struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the center point
func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// BoxLayout is a labeled box
type BoxLayout struct {
	Label string
	Rect  Rect
}

// ArrowLayout is a straight arrow from Start to End
type ArrowLayout struct {
	Start Point
	End   Point
}

// Layout represents the geometry of a box-and-arrow diagram
type Layout struct {
	Boxes  []BoxLayout
	Arrows []ArrowLayout
	Width  float64
	Height float64
}

// ArrowMargin returns how far an arrow is inset from each box edge for a gap
// of the given width. For any positive gap the margin m satisfies 0 < m < gap/2,
// so the arrow keeps a positive length and never touches either box.
func ArrowMargin(gap float64) float64 {
	if gap <= 0 || math.IsNaN(gap) {
		return 0
	}
	m := gap * arrowMarginRatio
	if m > maxArrowMargin {
		m = maxArrowMargin
	}
	return m
}

// CalculateWorkflowLayout places labels left to right as equal boxes that,
// together with the gaps between them and the side margins, fill the canvas width.
func CalculateWorkflowLayout(labels []string, canvasWidth, canvasHeight float64) (*Layout, error) {
	n := len(labels)
	if n == 0 {
		return nil, goerr.Wrap(ErrNoLabels, "workflow layout")
	}

	available := canvasWidth - 2*workflowSideMargin
	boxWidth := workflowBoxWidth
	if float64(n)*boxWidth+float64(n-1)*workflowMinGap > available {
		// one fixed shrink; labels are not re-wrapped
		boxWidth -= workflowShrinkStep
	}

	y := workflowTitleSpace + (canvasHeight-workflowTitleSpace-workflowBoxHeight)/2
	layout := &Layout{Width: canvasWidth, Height: canvasHeight}

	if n == 1 {
		if available < boxWidth {
			return nil, goerr.Wrap(ErrInsufficientSpace, "workflow box does not fit",
				goerr.V("available", available), goerr.V("box_width", boxWidth))
		}
		layout.Boxes = append(layout.Boxes, BoxLayout{
			Label: labels[0],
			Rect:  Rect{X: workflowSideMargin + (available-boxWidth)/2, Y: y, W: boxWidth, H: workflowBoxHeight},
		})
		return layout, nil
	}

	gap := (available - float64(n)*boxWidth) / float64(n-1)
	if gap <= 0 {
		return nil, goerr.Wrap(ErrInsufficientSpace, "workflow boxes do not fit",
			goerr.V("labels", n), goerr.V("canvas_width", canvasWidth), goerr.V("gap", gap))
	}

	for i, label := range labels {
		x := workflowSideMargin + float64(i)*(boxWidth+gap)
		layout.Boxes = append(layout.Boxes, BoxLayout{
			Label: label,
			Rect:  Rect{X: x, Y: y, W: boxWidth, H: workflowBoxHeight},
		})
	}

	margin := ArrowMargin(gap)
	midY := y + workflowBoxHeight/2
	for i := 0; i < n-1; i++ {
		left := layout.Boxes[i].Rect
		right := layout.Boxes[i+1].Rect
		layout.Arrows = append(layout.Arrows, ArrowLayout{
			Start: Point{X: left.Right() + margin, Y: midY},
			End:   Point{X: right.X - margin, Y: midY},
		})
	}

	return layout, nil
}

// CalculateFlowchartLayout stacks labels top to bottom with a fixed gap.
// Layout.Height reports the canvas height needed to hold every step.
func CalculateFlowchartLayout(labels []string, canvasWidth float64) (*Layout, error) {
	n := len(labels)
	if n == 0 {
		return nil, goerr.Wrap(ErrNoLabels, "flowchart layout")
	}
	if canvasWidth <= flowchartBoxWidth {
		return nil, goerr.Wrap(ErrInsufficientSpace, "flowchart boxes do not fit",
			goerr.V("canvas_width", canvasWidth))
	}

	x := (canvasWidth - flowchartBoxWidth) / 2
	layout := &Layout{Width: canvasWidth}

	for i, label := range labels {
		y := flowchartStartY + float64(i)*(flowchartBoxHeight+flowchartGap)
		layout.Boxes = append(layout.Boxes, BoxLayout{
			Label: label,
			Rect:  Rect{X: x, Y: y, W: flowchartBoxWidth, H: flowchartBoxHeight},
		})
	}

	inset := flowchartGap * flowchartArrowInset
	centerX := x + flowchartBoxWidth/2
	for i := 0; i < n-1; i++ {
		layout.Arrows = append(layout.Arrows, ArrowLayout{
			Start: Point{X: centerX, Y: layout.Boxes[i].Rect.Bottom() + inset},
			End:   Point{X: centerX, Y: layout.Boxes[i+1].Rect.Y - inset},
		})
	}

	layout.Height = layout.Boxes[n-1].Rect.Bottom() + flowchartBottomSpace
	return layout, nil
}

// HeatmapCell is one annotated cell of the heatmap grid
type HeatmapCell struct {
	Row, Col int
	Rect     Rect
	Value    int
	Label    string
	Norm     float64 // value scaled into [0,1] against the matrix range
	Color    color.RGBA
}

// HeatmapLayout is the grid geometry and color mapping of a heatmap
type HeatmapLayout struct {
	Grid     Rect
	Rows     int
	Cols     int
	Min, Max int
	Cells    []HeatmapCell
}

// CalculateHeatmapLayout splits grid into one cell per matrix value and maps
// each value onto the colormap. Rows run top to bottom in matrix order.
func CalculateHeatmapLayout(values [][]int, grid Rect) (*HeatmapLayout, error) {
	rows := len(values)
	if rows == 0 || len(values[0]) == 0 {
		return nil, goerr.Wrap(ErrNoLabels, "heatmap layout")
	}
	cols := len(values[0])

	for _, row := range values {
		if len(row) != cols {
			return nil, goerr.New("heatmap matrix is not rectangular", goerr.V("cols", cols), goerr.V("row_len", len(row)))
		}
	}
	lo, hi := matrixRange(values)

	layout := &HeatmapLayout{Grid: grid, Rows: rows, Cols: cols, Min: lo, Max: hi}
	cellW := grid.W / float64(cols)
	cellH := grid.H / float64(rows)

	for i, row := range values {
		for j, v := range row {
			norm := normalize(v, lo, hi)
			layout.Cells = append(layout.Cells, HeatmapCell{
				Row:   i,
				Col:   j,
				Rect:  Rect{X: grid.X + float64(j)*cellW, Y: grid.Y + float64(i)*cellH, W: cellW, H: cellH},
				Value: v,
				Label: strconv.Itoa(v),
				Norm:  norm,
				Color: Reds(norm),
			})
		}
	}

	return layout, nil
}

// normalize maps v into [0,1] over [lo,hi]; a flat matrix maps to 0
func normalize(v, lo, hi int) float64 {
	if hi == lo {
		return 0
	}
	return float64(v-lo) / float64(hi-lo)
}

// matrixRange returns the smallest and largest value of a non-empty matrix
func matrixRange(values [][]int) (int, int) {
	lo, hi := math.MaxInt, math.MinInt
	for _, row := range values {
		for _, v := range row {
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}
	return lo, hi
}
