// Package generator runs a full regeneration of the documentation visuals.
// It is shared by the command line entry point and the end-to-end tests so both
// go through the same directory checks, ordering and error wrapping.
package generator

import (
	"context"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/ankek/pharma-doc-visuals/internal/interfaces"
	"github.com/ankek/pharma-doc-visuals/internal/logging"
	"github.com/ankek/pharma-doc-visuals/internal/renderer"
	"github.com/ankek/pharma-doc-visuals/internal/validation"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNoDiagrams is returned when a run is requested with nothing to render
var ErrNoDiagrams = goerr.New("no diagrams to generate")

// Generator renders diagrams into an output directory
type Generator struct {
	logger    *slog.Logger
	directory interfaces.DirectoryPreparer
}

// Option configures a Generator
type Option func(*Generator)

// WithLogger sets the logger used for per-diagram records
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithDirectoryPreparer replaces the output directory check
func WithDirectoryPreparer(p interfaces.DirectoryPreparer) Option {
	return func(g *Generator) {
		g.directory = p
	}
}

// New returns a Generator using the default logger and validation.Validator
func New(opts ...Option) *Generator {
	g := &Generator{
		logger:    logging.Default(),
		directory: validation.Validator{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Config describes one run
type Config struct {
	OutputDir string
	Diagrams  []interfaces.Diagram
}

// Result contains the outputs of a successful run
type Result struct {
	// OutputDir is the absolute output directory
	OutputDir string
	// Files holds the absolute path of every image, in render order
	Files []string
}

// DefaultDiagrams returns the diagrams of set in generation order:
// workflow, risk heatmap, flowchart.
func DefaultDiagrams(set diagram.Set) []interfaces.Diagram {
	return []interfaces.Diagram{
		renderer.NewWorkflowDiagram(set.Workflow),
		renderer.NewHeatmapDiagram(set.Heatmap),
		renderer.NewFlowchartDiagram(set.Flowchart),
	}
}

// Generate renders every diagram of cfg, one after the other.
//
// It performs the following steps:
//  1. Validates the output directory, creating it if missing
//  2. Renders each diagram to <OutputDir>/<Filename>
//  3. Stops at the first failure
//
// Files written before a failure are left in place.
func (g *Generator) Generate(ctx context.Context, cfg Config) (*Result, error) {
	if len(cfg.Diagrams) == 0 {
		return nil, goerr.Wrap(ErrNoDiagrams, "nothing to render")
	}

	dir, err := g.directory.EnsureOutputDir(cfg.OutputDir)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid output directory", goerr.V("dir", cfg.OutputDir))
	}

	result := &Result{
		OutputDir: dir,
		Files:     make([]string, 0, len(cfg.Diagrams)),
	}

	for _, d := range cfg.Diagrams {
		// Check context before each diagram
		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "generation cancelled", goerr.V("next", d.Name()))
		default:
		}

		path := filepath.Join(dir, d.Filename())
		g.logger.Debug("rendering diagram", "diagram", d.Name(), "path", path)

		if err := d.Render(ctx, path); err != nil {
			return nil, goerr.Wrap(err, "failed to render diagram",
				goerr.V("diagram", d.Name()), goerr.V("path", path))
		}

		attrs := []any{"diagram", d.Name(), "path", path}
		if w, h, err := imageSize(path); err == nil {
			attrs = append(attrs, "width", w, "height", h)
		}
		g.logger.Info("rendered diagram", attrs...)

		result.Files = append(result.Files, path)
	}

	return result, nil
}

// imageSize reads the dimensions from a PNG header
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
