// Package renderer draws the documentation visuals onto an in-memory canvas and
// saves them as PNG. Layout geometry is computed by pure functions (see layout.go)
// so it can be checked without rasterizing anything.
package renderer

import (
	"context"
	"image/color"

	"github.com/m-mizutani/goerr/v2"
)

// Shared styling, in points or pixels at DPI
const (
	titleSize       = 14.0
	labelSize       = 11.0
	boxCornerRadius = 22.0
	boxStroke       = 3.0
	arrowWidth      = 3.0
	arrowHeadLength = 27.0
	arrowHeadWidth  = 18.0
)

// checkContext returns ctx.Err() if the context is already done
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// drawBoxDiagram draws a centered title titleOffset pixels above the first box,
// then every arrow and box of layout with labels in bold.
func drawBoxDiagram(c *Canvas, title string, layout *Layout, fill color.Color, titleOffset float64) error {
	theme := c.Theme()

	titleFace, err := c.Face(true, titleSize)
	if err != nil {
		return err
	}
	labelFace, err := c.Face(true, labelSize)
	if err != nil {
		return err
	}

	if title != "" && len(layout.Boxes) > 0 {
		c.DrawText(title, Point{X: c.Width() / 2, Y: layout.Boxes[0].Rect.Y - titleOffset}, titleFace, theme.Foreground, AlignCenter)
	}

	for _, a := range layout.Arrows {
		c.Arrow(a, arrowWidth, arrowHeadLength, arrowHeadWidth, theme.Arrow)
	}

	for _, box := range layout.Boxes {
		c.RoundedBox(box.Rect, boxCornerRadius, boxStroke, fill, theme.BoxStroke)
		c.DrawText(box.Label, box.Rect.Center(), labelFace, theme.Foreground, AlignCenter)
	}

	return nil
}

// wrapRenderError annotates a routine failure with the diagram and target path
func wrapRenderError(err error, name, path string) error {
	return goerr.Wrap(err, "failed to render "+name, goerr.V("diagram", name), goerr.V("path", path))
}
