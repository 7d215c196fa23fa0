// Package parser reads optional HCL files that override the built-in diagram content.
package parser

import (
	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidConfig is returned for any file that cannot be decoded into diagrams
var ErrInvalidConfig = goerr.New("invalid configuration")

// Config is the result of applying a config file to a base diagram set
type Config struct {
	// OutputDir is empty unless the file sets output_dir
	OutputDir string
	Diagrams  diagram.Set
}

// Block and attribute names accepted in a config file
const (
	blockWorkflow  = "workflow"
	blockFlowchart = "flowchart"
	blockHeatmap   = "heatmap"

	attrOutputDir = "output_dir"
	attrTitle     = "title"
	attrFile      = "file"
	attrStages    = "stages"
	attrSteps     = "steps"
	attrRows      = "rows"
	attrColumns   = "columns"
	attrValues    = "values"
)
