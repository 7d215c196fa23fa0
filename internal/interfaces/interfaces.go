// Package interfaces defines interfaces for dependency injection and testing
package interfaces

import "context"

// Diagram is one image produced by a generation run
type Diagram interface {
	// Name identifies the diagram in logs and errors
	Name() string

	// Filename is the base name of the image written into the output directory
	Filename() string

	// Render draws the diagram and writes it to path
	Render(ctx context.Context, path string) error
}

// DirectoryPreparer validates the output directory, creating it when missing,
// and returns its absolute path
type DirectoryPreparer interface {
	EnsureOutputDir(dir string) (string, error)
}
