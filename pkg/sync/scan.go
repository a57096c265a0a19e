package sync

import (
	"path"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/musicsync/pkg/errors"
)

const (
	// MaxDepth is the deepest level that Scan lists. The root is at depth 1.
	// It bounds recursion through symlink cycles and similar pathological
	// trees.
	MaxDepth = 10

	// trackMarker is the substring that marks a file as a track. It's a
	// case-sensitive substring match rather than a suffix match, so
	// `song.mp3.bak` is tracked as well.
	trackMarker = ".mp3"
)

// ScanResult contains the relative paths of the tracks and directories under
// a root, in traversal order.
type ScanResult struct {
	Files []string
	Dirs  []string
}

// Scan walks `root` and returns the tracks and directories within it.
// Directories whose names contain a "." are skipped along with everything
// under them.
func Scan(root string) (ScanResult, error) {
	var res ScanResult
	if err := scanDir(root, "", 1, &res); err != nil {
		return ScanResult{}, err
	}
	return res, nil
}

func scanDir(root, relDir string, depth int, res *ScanResult) error {
	dir := filepath.Join(root, filepath.FromSlash(relDir))
	if depth > MaxDepth {
		log.WithField("path", dir).Warn("Too deep. Skipping directory.")
		return nil
	}

	children, err := readDir(dir)
	if err != nil {
		return errors.FilesystemAccessError{Op: "list", Path: dir, Err: err}
	}

	for _, child := range children {
		name := child.Name()
		relPath := path.Join(relDir, name)
		switch {
		case child.IsDir() && !strings.Contains(name, "."):
			res.Dirs = append(res.Dirs, relPath)
			if err := scanDir(root, relPath, depth+1, res); err != nil {
				return err
			}
		case !child.IsDir() && strings.Contains(name, trackMarker):
			res.Files = append(res.Files, relPath)
		default:
			log.WithField("path", relPath).Debug("Ignoring path")
		}
	}
	return nil
}
