package renderer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/m-mizutani/gt"
)

func labels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("Stage %d", i+1)
	}
	return out
}

func TestArrowMargin(t *testing.T) {
	tests := []struct {
		gap  float64
		want float64
	}{
		{gap: -10, want: 0},
		{gap: 0, want: 0},
		{gap: 1, want: 0.15},
		{gap: 100, want: 15},
		{gap: 120, want: 18},
		{gap: 1000, want: 18},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.gap, 'f', -1, 64), func(t *testing.T) {
			got := ArrowMargin(tt.gap)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("ArrowMargin(%v) = %v, want %v", tt.gap, got, tt.want)
			}
			if tt.gap > 0 && !(got > 0 && got < tt.gap/2) {
				t.Errorf("ArrowMargin(%v) = %v, want 0 < m < gap/2", tt.gap, got)
			}
		})
	}
}

func TestCalculateWorkflowLayout_Default(t *testing.T) {
	wf := diagram.Defaults().Workflow
	w, h := workflowWidthIn*DPI, workflowHeightIn*DPI

	layout, err := CalculateWorkflowLayout(wf.Stages, w, h)
	gt.NoError(t, err).Required()

	gt.Array(t, layout.Boxes).Length(5).Required()
	gt.Array(t, layout.Arrows).Length(4).Required()

	for i, box := range layout.Boxes {
		gt.Value(t, box.Label).Equal(wf.Stages[i])
		gt.Value(t, box.Rect.W).Equal(workflowBoxWidth)
	}

	// boxes span the width between the side margins
	gt.Value(t, layout.Boxes[0].Rect.X).Equal(workflowSideMargin)
	last := layout.Boxes[len(layout.Boxes)-1].Rect
	if diff := last.Right() - (w - workflowSideMargin); diff > 1e-9 || diff < -1e-9 {
		t.Errorf("last box right edge = %v, want %v", last.Right(), w-workflowSideMargin)
	}
}

// Every arrow must start after the left box, end before the right box and point right.
func TestCalculateWorkflowLayout_ArrowsStayInGap(t *testing.T) {
	widths := []float64{1400, 1800, workflowWidthIn * DPI, 2600, 4000}

	for _, w := range widths {
		for n := 2; n <= 12; n++ {
			layout, err := CalculateWorkflowLayout(labels(n), w, workflowHeightIn*DPI)
			if errors.Is(err, ErrInsufficientSpace) {
				continue
			}
			gt.NoError(t, err).Required()

			for i, a := range layout.Arrows {
				left := layout.Boxes[i].Rect
				right := layout.Boxes[i+1].Rect
				if !(a.Start.X > left.Right()) {
					t.Errorf("w=%v n=%d arrow %d starts at %v, inside box ending at %v", w, n, i, a.Start.X, left.Right())
				}
				if !(a.End.X < right.X) {
					t.Errorf("w=%v n=%d arrow %d ends at %v, inside box starting at %v", w, n, i, a.End.X, right.X)
				}
				if !(a.Start.X < a.End.X) {
					t.Errorf("w=%v n=%d arrow %d has no length: %v -> %v", w, n, i, a.Start.X, a.End.X)
				}
				gt.Value(t, a.Start.Y).Equal(a.End.Y)
			}
		}
	}
}

func TestCalculateWorkflowLayout_Shrink(t *testing.T) {
	w := workflowWidthIn * DPI

	// seven boxes do not fit at full width, so they are narrowed once
	layout, err := CalculateWorkflowLayout(labels(7), w, workflowHeightIn*DPI)
	gt.NoError(t, err).Required()
	gt.Value(t, layout.Boxes[0].Rect.W).Equal(workflowBoxWidth - workflowShrinkStep)

	// eight do not fit at all
	_, err = CalculateWorkflowLayout(labels(8), w, workflowHeightIn*DPI)
	gt.Bool(t, errors.Is(err, ErrInsufficientSpace)).True()
}

func TestCalculateWorkflowLayout_SingleBox(t *testing.T) {
	w := workflowWidthIn * DPI
	layout, err := CalculateWorkflowLayout([]string{"Vendor"}, w, workflowHeightIn*DPI)
	gt.NoError(t, err).Required()

	gt.Array(t, layout.Boxes).Length(1).Required()
	gt.Array(t, layout.Arrows).Length(0)
	gt.Value(t, layout.Boxes[0].Rect.Center().X).Equal(w / 2)
}

func TestCalculateWorkflowLayout_Errors(t *testing.T) {
	_, err := CalculateWorkflowLayout(nil, 2160, 720)
	gt.Bool(t, errors.Is(err, ErrNoLabels)).True()

	_, err = CalculateWorkflowLayout([]string{"a"}, 300, 720)
	gt.Bool(t, errors.Is(err, ErrInsufficientSpace)).True()

	_, err = CalculateWorkflowLayout(labels(3), 600, 720)
	gt.Bool(t, errors.Is(err, ErrInsufficientSpace)).True()
}

func TestCalculateWorkflowLayout_Deterministic(t *testing.T) {
	stages := diagram.Defaults().Workflow.Stages
	a, err := CalculateWorkflowLayout(stages, 2160, 720)
	gt.NoError(t, err).Required()
	b, err := CalculateWorkflowLayout(stages, 2160, 720)
	gt.NoError(t, err).Required()
	gt.Value(t, a).Equal(b)
}

func TestCalculateFlowchartLayout(t *testing.T) {
	steps := diagram.Defaults().Flowchart.Steps
	w := flowchartWidthIn * DPI

	layout, err := CalculateFlowchartLayout(steps, w)
	gt.NoError(t, err).Required()
	gt.Array(t, layout.Boxes).Length(len(steps)).Required()
	gt.Array(t, layout.Arrows).Length(len(steps) - 1).Required()

	for i, box := range layout.Boxes {
		gt.Value(t, box.Label).Equal(steps[i])
		gt.Value(t, box.Rect.Center().X).Equal(w / 2)
		if i > 0 {
			gt.Value(t, box.Rect.Y-layout.Boxes[i-1].Rect.Bottom()).Equal(flowchartGap)
		}
	}

	for i, a := range layout.Arrows {
		if !(a.Start.Y > layout.Boxes[i].Rect.Bottom() && a.End.Y < layout.Boxes[i+1].Rect.Y && a.Start.Y < a.End.Y) {
			t.Errorf("arrow %d (%v -> %v) is not inside the gap", i, a.Start.Y, a.End.Y)
		}
	}

	gt.Value(t, layout.Height).Equal(layout.Boxes[len(steps)-1].Rect.Bottom() + flowchartBottomSpace)
}

// The arrow must be longer than its full-size head so the shaft is drawn.
func TestCalculateFlowchartLayout_ArrowsHaveShafts(t *testing.T) {
	layout, err := CalculateFlowchartLayout(diagram.Defaults().Flowchart.Steps, flowchartWidthIn*DPI)
	gt.NoError(t, err).Required()

	for i, a := range layout.Arrows {
		length := math.Hypot(a.End.X-a.Start.X, a.End.Y-a.Start.Y)
		if !(length > arrowHeadLength) {
			t.Errorf("arrow %d length = %v, want > head length %v", i, length, arrowHeadLength)
		}
		gt.Value(t, arrowHead(arrowHeadLength, length)).Equal(arrowHeadLength)
	}
}

func TestCalculateFlowchartLayout_Height(t *testing.T) {
	short, err := CalculateFlowchartLayout(labels(3), flowchartWidthIn*DPI)
	gt.NoError(t, err).Required()
	gt.Bool(t, short.Height <= flowchartHeightIn*DPI).True()

	long, err := CalculateFlowchartLayout(labels(12), flowchartWidthIn*DPI)
	gt.NoError(t, err).Required()
	gt.Bool(t, long.Height > flowchartHeightIn*DPI).True()
}

func TestCalculateFlowchartLayout_Errors(t *testing.T) {
	_, err := CalculateFlowchartLayout(nil, 1800)
	gt.Bool(t, errors.Is(err, ErrNoLabels)).True()

	_, err = CalculateFlowchartLayout(labels(2), 1000)
	gt.Bool(t, errors.Is(err, ErrInsufficientSpace)).True()
}

func TestCalculateHeatmapLayout(t *testing.T) {
	values := diagram.Defaults().Heatmap.Values
	grid := Rect{X: 100, Y: 50, W: 400, H: 400}

	layout, err := CalculateHeatmapLayout(values, grid)
	gt.NoError(t, err).Required()

	gt.Value(t, layout.Rows).Equal(4)
	gt.Value(t, layout.Cols).Equal(4)
	gt.Value(t, layout.Min).Equal(1)
	gt.Value(t, layout.Max).Equal(5)
	gt.Array(t, layout.Cells).Length(16).Required()

	for _, cell := range layout.Cells {
		gt.Value(t, cell.Value).Equal(values[cell.Row][cell.Col])
		gt.Value(t, cell.Label).Equal(strconv.Itoa(values[cell.Row][cell.Col]))
		gt.Value(t, cell.Rect.W).Equal(100.0)
		gt.Value(t, cell.Rect.X).Equal(grid.X + float64(cell.Col)*100)
		gt.Value(t, cell.Rect.Y).Equal(grid.Y + float64(cell.Row)*100)
	}

	// first row is the first matrix row, drawn at the top
	gt.Value(t, layout.Cells[0].Row).Equal(0)
	gt.Value(t, layout.Cells[0].Rect.Y).Equal(grid.Y)
}

func TestCalculateHeatmapLayout_ColorsFollowValues(t *testing.T) {
	values := diagram.Defaults().Heatmap.Values
	layout, err := CalculateHeatmapLayout(values, Rect{W: 400, H: 400})
	gt.NoError(t, err).Required()

	for _, a := range layout.Cells {
		for _, b := range layout.Cells {
			if a.Value < b.Value && !(Intensity(a.Color) < Intensity(b.Color)) {
				t.Errorf("value %d (intensity %v) is not lighter than value %d (intensity %v)",
					a.Value, Intensity(a.Color), b.Value, Intensity(b.Color))
			}
			if a.Value == b.Value {
				gt.Value(t, a.Color).Equal(b.Color)
			}
		}
	}
}

func TestCalculateHeatmapLayout_FlatMatrix(t *testing.T) {
	layout, err := CalculateHeatmapLayout([][]int{{3, 3}, {3, 3}}, Rect{W: 10, H: 10})
	gt.NoError(t, err).Required()
	for _, cell := range layout.Cells {
		gt.Value(t, cell.Norm).Equal(0.0)
	}
}

func TestCalculateHeatmapLayout_Errors(t *testing.T) {
	_, err := CalculateHeatmapLayout(nil, Rect{W: 10, H: 10})
	gt.Bool(t, errors.Is(err, ErrNoLabels)).True()

	_, err = CalculateHeatmapLayout([][]int{{1, 2}, {3}}, Rect{W: 10, H: 10})
	gt.Error(t, err)
}
