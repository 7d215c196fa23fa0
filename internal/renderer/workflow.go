package renderer

import (
	"context"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
)

const (
	workflowWidthIn     = 12.0
	workflowHeightIn    = 4.0
	workflowTitleOffset = 108.0
)

var workflowFill = parseColor("#E9F5FF")

// RenderWorkflow draws the stages left to right, joined by arrows, and saves the image to path
func RenderWorkflow(ctx context.Context, wf diagram.Workflow, path string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	c, err := NewCanvas(workflowWidthIn, workflowHeightIn, DefaultTheme)
	if err != nil {
		return wrapRenderError(err, "workflow", path)
	}
	defer c.Close()

	layout, err := CalculateWorkflowLayout(wf.Stages, c.Width(), c.Height())
	if err != nil {
		return wrapRenderError(err, "workflow", path)
	}

	if err := drawBoxDiagram(c, wf.Title, layout, workflowFill, workflowTitleOffset); err != nil {
		return wrapRenderError(err, "workflow", path)
	}

	if err := c.Save(path); err != nil {
		return wrapRenderError(err, "workflow", path)
	}
	return nil
}
