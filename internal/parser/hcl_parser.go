package parser

import (
	"context"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/ankek/pharma-doc-visuals/internal/validation"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/m-mizutani/goerr/v2"
)

var rootSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrOutputDir},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: blockWorkflow},
		{Type: blockFlowchart},
		{Type: blockHeatmap},
	},
}

var workflowSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrTitle},
		{Name: attrStages},
		{Name: attrFile},
	},
}

var flowchartSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrTitle},
		{Name: attrSteps},
		{Name: attrFile},
	},
}

var heatmapSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: attrTitle},
		{Name: attrRows},
		{Name: attrColumns},
		{Name: attrValues},
		{Name: attrFile},
	},
}

// ParseConfigFile reads an HCL file and applies it on top of base.
// It respects the provided context for cancellation.
func ParseConfigFile(ctx context.Context, path string, base diagram.Set) (*Config, error) {
	// Check if context is already cancelled
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := validation.ValidateInputPath(path); err != nil {
		return nil, err
	}

	p := hclparse.NewParser()
	file, diags := p.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, goerr.Wrap(ErrInvalidConfig, "HCL parse errors",
			goerr.V("path", path), goerr.V("diagnostics", diags.Error()))
	}

	cfg, err := decodeBody(file.Body, base)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decode config file", goerr.V("path", path))
	}
	return cfg, nil
}

// ParseConfig parses HCL source held in memory. filename is only used in diagnostics.
func ParseConfig(src []byte, filename string, base diagram.Set) (*Config, error) {
	p := hclparse.NewParser()
	file, diags := p.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, goerr.Wrap(ErrInvalidConfig, "HCL parse errors",
			goerr.V("filename", filename), goerr.V("diagnostics", diags.Error()))
	}
	return decodeBody(file.Body, base)
}

// decodeBody applies the top level of a config file. Unknown attributes and
// blocks are rejected, as is a diagram block given more than once.
func decodeBody(body hcl.Body, base diagram.Set) (*Config, error) {
	content, diags := body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse body", goerr.V("diagnostics", diags.Error()))
	}

	cfg := &Config{Diagrams: base}

	if attr, ok := content.Attributes[attrOutputDir]; ok {
		dir, err := decodeString(attr)
		if err != nil {
			return nil, err
		}
		if dir == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, "output_dir cannot be empty")
		}
		cfg.OutputDir = dir
	}

	seen := make(map[string]bool)
	for _, block := range content.Blocks {
		if seen[block.Type] {
			return nil, goerr.Wrap(ErrInvalidConfig, "duplicate block",
				goerr.V("block", block.Type), goerr.V("range", block.DefRange.String()))
		}
		seen[block.Type] = true

		var err error
		switch block.Type {
		case blockWorkflow:
			err = applyWorkflow(block, &cfg.Diagrams.Workflow)
		case blockFlowchart:
			err = applyFlowchart(block, &cfg.Diagrams.Flowchart)
		case blockHeatmap:
			err = applyHeatmap(block, &cfg.Diagrams.Heatmap)
		}
		if err != nil {
			return nil, err
		}
	}

	if err := cfg.Diagrams.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "configured diagrams are invalid", goerr.V("error", err.Error()))
	}

	return cfg, nil
}

func blockContent(block *hcl.Block, schema *hcl.BodySchema) (*hcl.BodyContent, error) {
	content, diags := block.Body.Content(schema)
	if diags.HasErrors() {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse block",
			goerr.V("block", block.Type), goerr.V("diagnostics", diags.Error()))
	}
	return content, nil
}

func applyWorkflow(block *hcl.Block, w *diagram.Workflow) error {
	content, err := blockContent(block, workflowSchema)
	if err != nil {
		return err
	}

	if attr, ok := content.Attributes[attrTitle]; ok {
		if w.Title, err = decodeString(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrStages]; ok {
		if w.Stages, err = decodeStringList(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrFile]; ok {
		if w.File, err = decodeString(attr); err != nil {
			return err
		}
	}
	return nil
}

func applyFlowchart(block *hcl.Block, f *diagram.Flowchart) error {
	content, err := blockContent(block, flowchartSchema)
	if err != nil {
		return err
	}

	if attr, ok := content.Attributes[attrTitle]; ok {
		if f.Title, err = decodeString(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrSteps]; ok {
		if f.Steps, err = decodeStringList(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrFile]; ok {
		if f.File, err = decodeString(attr); err != nil {
			return err
		}
	}
	return nil
}

func applyHeatmap(block *hcl.Block, h *diagram.Heatmap) error {
	content, err := blockContent(block, heatmapSchema)
	if err != nil {
		return err
	}

	if attr, ok := content.Attributes[attrTitle]; ok {
		if h.Title, err = decodeString(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrRows]; ok {
		if h.Rows, err = decodeStringList(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrColumns]; ok {
		if h.Columns, err = decodeStringList(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrValues]; ok {
		if h.Values, err = decodeIntMatrix(attr); err != nil {
			return err
		}
	}
	if attr, ok := content.Attributes[attrFile]; ok {
		if h.File, err = decodeString(attr); err != nil {
			return err
		}
	}
	return nil
}
