package renderer

import (
	"context"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
)

// WorkflowDiagram adapts a workflow to interfaces.Diagram
type WorkflowDiagram struct {
	workflow diagram.Workflow
}

// NewWorkflowDiagram wraps wf for the generator
func NewWorkflowDiagram(wf diagram.Workflow) *WorkflowDiagram {
	return &WorkflowDiagram{workflow: wf}
}

func (d *WorkflowDiagram) Name() string     { return "workflow" }
func (d *WorkflowDiagram) Filename() string { return d.workflow.File }

func (d *WorkflowDiagram) Render(ctx context.Context, path string) error {
	return RenderWorkflow(ctx, d.workflow, path)
}

// FlowchartDiagram adapts a flowchart to interfaces.Diagram
type FlowchartDiagram struct {
	flowchart diagram.Flowchart
}

// NewFlowchartDiagram wraps fc for the generator
func NewFlowchartDiagram(fc diagram.Flowchart) *FlowchartDiagram {
	return &FlowchartDiagram{flowchart: fc}
}

func (d *FlowchartDiagram) Name() string     { return "flowchart" }
func (d *FlowchartDiagram) Filename() string { return d.flowchart.File }

func (d *FlowchartDiagram) Render(ctx context.Context, path string) error {
	return RenderFlowchart(ctx, d.flowchart, path)
}

// HeatmapDiagram adapts a heatmap to interfaces.Diagram
type HeatmapDiagram struct {
	heatmap diagram.Heatmap
}

// NewHeatmapDiagram wraps hm for the generator
func NewHeatmapDiagram(hm diagram.Heatmap) *HeatmapDiagram {
	return &HeatmapDiagram{heatmap: hm}
}

func (d *HeatmapDiagram) Name() string     { return "heatmap" }
func (d *HeatmapDiagram) Filename() string { return d.heatmap.File }

func (d *HeatmapDiagram) Render(ctx context.Context, path string) error {
	return RenderHeatmap(ctx, d.heatmap, path)
}
