// Package diagram defines the content rendered into the documentation visuals:
// the workflow stages, the document flowchart steps and the compliance risk matrix.
// The built-in content is returned by Defaults and may be overridden from a config file.
package diagram

import (
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Default output file names
const (
	WorkflowFile  = "pharma_workflow.png"
	FlowchartFile = "document_flowchart.png"
	HeatmapFile   = "compliance_risk_map.png"
)

// ErrInvalidDiagram is returned when diagram content cannot be rendered
var ErrInvalidDiagram = goerr.New("invalid diagram")

// Workflow is a left-to-right sequence of stages
type Workflow struct {
	Title  string
	Stages []string
	File   string
}

// Flowchart is a top-to-bottom sequence of process steps
type Flowchart struct {
	Title string
	Steps []string
	File  string
}

// Heatmap is a matrix of risk scores indexed by (likelihood, impact)
type Heatmap struct {
	Title   string
	Rows    []string // likelihood labels, top to bottom
	Columns []string // impact labels, left to right
	Values  [][]int
	File    string
}

// Set groups the three diagrams generated on every run
type Set struct {
	Workflow  Workflow
	Flowchart Flowchart
	Heatmap   Heatmap
}

// Validate checks the workflow has stages and a usable file name
func (w *Workflow) Validate() error {
	if len(w.Stages) == 0 {
		return goerr.Wrap(ErrInvalidDiagram, "workflow has no stages")
	}
	return validateFile(w.File)
}

// Validate checks the flowchart has steps and a usable file name
func (f *Flowchart) Validate() error {
	if len(f.Steps) == 0 {
		return goerr.Wrap(ErrInvalidDiagram, "flowchart has no steps")
	}
	return validateFile(f.File)
}

// Validate checks the matrix is rectangular and matches its labels
func (h *Heatmap) Validate() error {
	if len(h.Values) == 0 {
		return goerr.Wrap(ErrInvalidDiagram, "heatmap has no values")
	}
	if len(h.Rows) != len(h.Values) {
		return goerr.Wrap(ErrInvalidDiagram, "heatmap row labels do not match values",
			goerr.V("labels", len(h.Rows)), goerr.V("rows", len(h.Values)))
	}
	for i, row := range h.Values {
		if len(row) != len(h.Columns) {
			return goerr.Wrap(ErrInvalidDiagram, "heatmap column labels do not match values",
				goerr.V("row", i), goerr.V("labels", len(h.Columns)), goerr.V("columns", len(row)))
		}
	}
	if len(h.Columns) == 0 {
		return goerr.Wrap(ErrInvalidDiagram, "heatmap has no columns")
	}
	return validateFile(h.File)
}

// Validate checks every diagram and that no two share an output file
func (s *Set) Validate() error {
	if err := s.Workflow.Validate(); err != nil {
		return goerr.Wrap(err, "invalid workflow")
	}
	if err := s.Flowchart.Validate(); err != nil {
		return goerr.Wrap(err, "invalid flowchart")
	}
	if err := s.Heatmap.Validate(); err != nil {
		return goerr.Wrap(err, "invalid heatmap")
	}

	seen := make(map[string]bool)
	for _, name := range []string{s.Workflow.File, s.Flowchart.File, s.Heatmap.File} {
		if seen[name] {
			return goerr.Wrap(ErrInvalidDiagram, "duplicate output file", goerr.V("file", name))
		}
		seen[name] = true
	}
	return nil
}

// validateFile accepts a bare base name ending in .png
func validateFile(name string) error {
	if name == "" {
		return goerr.Wrap(ErrInvalidDiagram, "output file name is empty")
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) || name == ".." {
		return goerr.Wrap(ErrInvalidDiagram, "output file must be a base name", goerr.V("file", name))
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		return goerr.Wrap(ErrInvalidDiagram, "output file must be a .png", goerr.V("file", name))
	}
	return nil
}
