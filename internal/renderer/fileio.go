package renderer

import (
	"io"
	"os"

	"github.com/google/renameio/v2"
	"github.com/m-mizutani/goerr/v2"
)

// ensureDir creates dir and its parents; an existing directory is not an error
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return goerr.Wrap(err, "failed to create output directory", goerr.V("dir", dir))
	}
	return nil
}

// writeFileAtomic streams write into a pending file next to path and replaces
// path only once the write succeeded, so a failed write leaves any previous file untouched.
func writeFileAtomic(path string, write func(w io.Writer) error) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("path", path))
	}
	defer pending.Cleanup()

	if err := write(pending); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return goerr.Wrap(err, "failed to move file into place", goerr.V("path", path))
	}
	return nil
}
