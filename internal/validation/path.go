// Package validation provides safety checks for the paths the generator reads and writes.
// It creates the output directory on demand and verifies that it can be written to.
package validation

import (
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// Path errors
var (
	ErrInvalidOutputDir = goerr.New("invalid output directory")
	ErrInvalidInputPath = goerr.New("invalid input path")
)

// Validator implements interfaces.DirectoryPreparer
type Validator struct{}

// EnsureOutputDir delegates to the package function
func (Validator) EnsureOutputDir(dir string) (string, error) {
	return EnsureOutputDir(dir)
}

// EnsureOutputDir resolves dir to an absolute path, creates it with its parents if
// it does not exist and verifies it is a writable directory. Calling it on an
// existing directory is not an error.
func EnsureOutputDir(dir string) (string, error) {
	if dir == "" {
		return "", goerr.Wrap(ErrInvalidOutputDir, "output directory cannot be empty")
	}

	absDir, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", goerr.Wrap(ErrInvalidOutputDir, "failed to resolve absolute path", goerr.V("dir", dir), goerr.V("error", err.Error()))
	}

	info, err := os.Stat(absDir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(absDir, 0755); err != nil {
			return "", goerr.Wrap(err, "failed to create output directory", goerr.V("dir", absDir))
		}
	case err != nil:
		return "", goerr.Wrap(err, "failed to access output directory", goerr.V("dir", absDir))
	case !info.IsDir():
		return "", goerr.Wrap(ErrInvalidOutputDir, "output path is not a directory", goerr.V("dir", absDir))
	}

	// Check the directory is writable by creating a probe file
	probe, err := os.CreateTemp(absDir, ".visuals_write_test_*")
	if err != nil {
		return "", goerr.Wrap(err, "output directory is not writable", goerr.V("dir", absDir))
	}
	probe.Close()
	os.Remove(probe.Name())

	return absDir, nil
}

// ValidateInputPath checks that a file to be read exists and is a regular file
func ValidateInputPath(inputPath string) error {
	if inputPath == "" {
		return goerr.Wrap(ErrInvalidInputPath, "input path cannot be empty")
	}

	cleanPath := filepath.Clean(inputPath)
	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return goerr.Wrap(ErrInvalidInputPath, "input path does not exist", goerr.V("path", cleanPath))
		}
		return goerr.Wrap(err, "failed to access input path", goerr.V("path", cleanPath))
	}

	if info.IsDir() {
		return goerr.Wrap(ErrInvalidInputPath, "input path must be a file", goerr.V("path", cleanPath))
	}

	return nil
}
