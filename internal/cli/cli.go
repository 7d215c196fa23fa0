// Package cli is the command line entry point that regenerates the documentation visuals.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ankek/pharma-doc-visuals/internal/diagram"
	"github.com/ankek/pharma-doc-visuals/internal/generator"
	"github.com/ankek/pharma-doc-visuals/internal/logging"
	"github.com/ankek/pharma-doc-visuals/internal/parser"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// DefaultOutputDir is created under the project root when no output is configured
const DefaultOutputDir = "visuals"

// options collects the flag values of one invocation
type options struct {
	output    string
	config    string
	logLevel  string
	logFormat string
}

func (o *options) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output directory (relative paths resolve against the project root)",
			Sources:     cli.EnvVars("PHARMA_VISUALS_OUTPUT"),
			Destination: &o.output,
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "HCL file overriding diagram content",
			Sources:     cli.EnvVars("PHARMA_VISUALS_CONFIG"),
			Destination: &o.config,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level [debug|info|warn|error]",
			Value:       "warn",
			Sources:     cli.EnvVars("PHARMA_VISUALS_LOG_LEVEL"),
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format [text|json]",
			Value:       logging.FormatText,
			Sources:     cli.EnvVars("PHARMA_VISUALS_LOG_FORMAT"),
			Destination: &o.logFormat,
		},
	}
}

// Run parses args and regenerates every visual
func Run(ctx context.Context, args []string, version string) error {
	return run(ctx, args, version, color.Output, os.Stderr)
}

func run(ctx context.Context, args []string, version string, stdout, stderr io.Writer) error {
	var opts options

	app := &cli.Command{
		Name:      "pharma-doc-visuals",
		Usage:     "Regenerate the workflow, flowchart and compliance risk visuals",
		Version:   version,
		Flags:     opts.flags(),
		Writer:    stdout,
		ErrWriter: stderr,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, err := logging.New(stderr, opts.logLevel, opts.logFormat)
			if err != nil {
				return ctx, err
			}
			logging.SetDefault(logger)
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return regenerate(ctx, opts, stdout)
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to regenerate visuals", "error", err)
		return err
	}

	return nil
}

func regenerate(ctx context.Context, opts options, stdout io.Writer) error {
	logger := logging.Default()

	root, err := findProjectRoot()
	if err != nil {
		return err
	}

	set := diagram.Defaults()
	configDir := ""
	if opts.config != "" {
		cfg, err := parser.ParseConfigFile(ctx, opts.config, set)
		if err != nil {
			return goerr.Wrap(err, "failed to load config", goerr.V("path", opts.config))
		}
		set = cfg.Diagrams
		configDir = cfg.OutputDir
		logger.Debug("loaded config", "path", opts.config)
	}

	outputDir := resolveOutputDir(root, opts.output, configDir)
	logger.Debug("resolved output directory", "root", root, "dir", outputDir)

	result, err := generator.New(generator.WithLogger(logger)).Generate(ctx, generator.Config{
		OutputDir: outputDir,
		Diagrams:  generator.DefaultDiagrams(set),
	})
	if err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintf(stdout, "✅ Visuals regenerated in: %s\n", result.OutputDir)
	return nil
}

// resolveOutputDir picks the flag value, then the config value, then the default.
// Relative paths are joined to root.
func resolveOutputDir(root, flagDir, configDir string) string {
	dir := DefaultOutputDir
	switch {
	case flagDir != "":
		dir = flagDir
	case configDir != "":
		dir = configDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(root, dir)
}

// findProjectRoot returns the nearest ancestor of the working directory that
// holds a go.mod, or the working directory itself when there is none.
func findProjectRoot() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", goerr.Wrap(err, "failed to get working directory")
	}
	return projectRootFrom(wd), nil
}

func projectRootFrom(start string) string {
	dir := filepath.Clean(start)
	for {
		if info, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Clean(start)
		}
		dir = parent
	}
}
