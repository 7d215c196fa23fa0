package renderer

import (
	"context"
	"math"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
)

const (
	flowchartWidthIn     = 10.0
	flowchartHeightIn    = 6.0
	flowchartTitleOffset = 81.0
)

var flowchartFill = parseColor("#FFF7E6")

// RenderFlowchart draws the steps top to bottom, joined by downward arrows, and
// saves the image to path. The canvas grows taller when the steps need more room.
func RenderFlowchart(ctx context.Context, fc diagram.Flowchart, path string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	layout, err := CalculateFlowchartLayout(fc.Steps, flowchartWidthIn*DPI)
	if err != nil {
		return wrapRenderError(err, "flowchart", path)
	}

	heightIn := math.Max(flowchartHeightIn, layout.Height/DPI)
	c, err := NewCanvas(flowchartWidthIn, heightIn, DefaultTheme)
	if err != nil {
		return wrapRenderError(err, "flowchart", path)
	}
	defer c.Close()

	if err := drawBoxDiagram(c, fc.Title, layout, flowchartFill, flowchartTitleOffset); err != nil {
		return wrapRenderError(err, "flowchart", path)
	}

	if err := c.Save(path); err != nil {
		return wrapRenderError(err, "flowchart", path)
	}
	return nil
}
