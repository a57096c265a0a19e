package sync

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"

	"github.com/sidkik/musicsync/pkg/errors"
)

// Mocked out for unit testing.
var fs = afero.NewOsFs()

// readDir lists the children of `dir`. Symlinks are resolved so that a
// linked directory is traversed like a regular one. Broken links are
// returned as-is.
func readDir(dir string) ([]os.FileInfo, error) {
	children, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, err
	}

	for i, child := range children {
		if child.Mode()&os.ModeSymlink == 0 {
			continue
		}

		if target, err := fs.Stat(filepath.Join(dir, child.Name())); err == nil {
			children[i] = namedFileInfo{FileInfo: target, name: child.Name()}
		}
	}
	return children, nil
}

// namedFileInfo reports the name of the link rather than the name of the
// link's target.
type namedFileInfo struct {
	os.FileInfo
	name string
}

func (fi namedFileInfo) Name() string {
	return fi.name
}

// exists returns whether `path` exists. A path whose parent is a file
// doesn't exist either. Other errors are returned.
func exists(path string) (bool, error) {
	ok, err := afero.Exists(fs, path)
	if err != nil && errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return ok, err
}
