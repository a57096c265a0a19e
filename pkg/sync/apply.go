package sync

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/sidkik/musicsync/pkg/errors"
)

// Action describes what happened to a single path while applying a plan.
type Action string

const (
	Removed    Action = "REMOVED"
	NotFound   Action = "NOT FOUND"
	NotEmpty   Action = "NOT EMPTY"
	DirCreated Action = "DIR CREATED"
	Copied     Action = "COPIED"
)

// Progress is reported once for each path in the plan.
type Progress struct {
	// Index is 1-based.
	Index  int
	Total  int
	Action Action
	Path   string
}

// Reporter receives progress updates while a plan is applied.
type Reporter interface {
	// Phase is called before each phase starts, even if the phase has no
	// work.
	Phase(name string)
	Progress(Progress)
}

// Roots are the directories that the relative paths in a Plan are
// resolved against.
type Roots struct {
	Source      string
	Destination string
}

// ApplyOptions tweak how Apply behaves. The zero value is ready to use.
type ApplyOptions struct {
	Reporter Reporter

	// StrictDirRemoval makes Apply fail with a DirectoryNotEmptyError when a
	// directory slated for removal still has children. By default, the
	// directory is left in place and the rest of the plan is applied.
	StrictDirRemoval bool

	Clock clockwork.Clock
}

// Summary describes the result of applying a plan.
type Summary struct {
	Actions map[Action]int
	Elapsed time.Duration
}

type phase struct {
	name  string
	paths []string
	apply func(relPath string) (Action, error)
}

type applier struct {
	roots  Roots
	strict bool
}

// Apply executes the plan against the filesystem. The phases run in an order
// that's safe for dependencies between them: files are removed before the
// directories containing them, and directories are created before files are
// copied into them.
// If a phase fails, the remaining phases are skipped. The changes made up to
// that point are not rolled back.
func Apply(plan Plan, roots Roots, opts ApplyOptions) (Summary, error) {
	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	a := applier{roots: roots, strict: opts.StrictDirRemoval}
	phases := []phase{
		{"Removing files", plan.FilesToRemove, a.removeFile},
		{"Removing dirs", plan.DirsToRemove, a.removeDir},
		{"Creating dirs", plan.DirsToAdd, a.createDir},
		{"Copying files", plan.FilesToAdd, a.copyFile},
	}

	start := clock.Now()
	summary := Summary{Actions: map[Action]int{}}
	for _, p := range phases {
		reporter.Phase(p.name)
		for i, relPath := range p.paths {
			action, err := p.apply(relPath)
			if err != nil {
				summary.Elapsed = clock.Now().Sub(start)
				return summary, errors.WithContext(err, strings.ToLower(p.name))
			}

			summary.Actions[action]++
			reporter.Progress(Progress{
				Index:  i + 1,
				Total:  len(p.paths),
				Action: action,
				Path:   relPath,
			})
		}
	}
	summary.Elapsed = clock.Now().Sub(start)

	log.WithFields(log.Fields{
		"copied":  truncateSlice(plan.FilesToAdd, 5),
		"removed": truncateSlice(plan.FilesToRemove, 5),
		"elapsed": summary.Elapsed,
	}).Debug("Applied plan")
	return summary, nil
}

func (a applier) destPath(relPath string) string {
	return filepath.Join(a.roots.Destination, filepath.FromSlash(relPath))
}

// removeFile removes a file from the destination. A file that's already gone
// isn't an error, since it may have been removed by someone else after the
// scan.
func (a applier) removeFile(relPath string) (Action, error) {
	destPath := a.destPath(relPath)
	ok, err := exists(destPath)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "stat", Path: destPath, Err: err}
	}

	if !ok {
		return NotFound, nil
	}

	if err := fs.Remove(destPath); err != nil {
		return "", errors.FilesystemAccessError{Op: "remove", Path: destPath, Err: err}
	}
	return Removed, nil
}

// removeDir removes an empty directory from the destination, along with any
// ancestors that become empty as a result. The destination root itself is
// never removed.
func (a applier) removeDir(relPath string) (Action, error) {
	destPath := a.destPath(relPath)
	ok, err := exists(destPath)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "stat", Path: destPath, Err: err}
	}

	if !ok {
		return NotFound, nil
	}

	empty, err := afero.IsEmpty(fs, destPath)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "list", Path: destPath, Err: err}
	}

	if !empty {
		notEmptyErr := errors.DirectoryNotEmptyError{Path: destPath}
		if a.strict {
			return "", notEmptyErr
		}

		log.WithError(notEmptyErr).Warn("Leaving directory in place because it still has contents")
		return NotEmpty, nil
	}

	if err := fs.Remove(destPath); err != nil {
		return "", errors.FilesystemAccessError{Op: "remove", Path: destPath, Err: err}
	}

	for parent := path.Dir(relPath); parent != "."; parent = path.Dir(parent) {
		parentPath := a.destPath(parent)
		if empty, err := afero.IsEmpty(fs, parentPath); err != nil || !empty {
			break
		}

		if err := fs.Remove(parentPath); err != nil {
			log.WithError(err).WithField("path", parentPath).Debug(
				"Failed to remove empty parent directory")
			break
		}
	}
	return Removed, nil
}

func (a applier) createDir(relPath string) (Action, error) {
	destPath := a.destPath(relPath)
	if err := fs.MkdirAll(destPath, 0755); err != nil {
		return "", errors.FilesystemAccessError{Op: "mkdir", Path: destPath, Err: err}
	}

	// Some filesystems don't fail MkdirAll when a file is in the way, so
	// double check that a directory was actually created.
	isDir, err := afero.IsDir(fs, destPath)
	if err == nil && !isDir {
		err = errors.New("a file already exists at this path")
	}
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "mkdir", Path: destPath, Err: err}
	}
	return DirCreated, nil
}

func (a applier) copyFile(relPath string) (Action, error) {
	src := filepath.Join(a.roots.Source, filepath.FromSlash(relPath))
	dst := a.destPath(relPath)

	dstParent := filepath.Dir(dst)
	dstParentExists, err := afero.DirExists(fs, dstParent)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "stat", Path: dstParent, Err: err}
	}

	if !dstParentExists {
		if err := fs.MkdirAll(dstParent, 0755); err != nil {
			return "", errors.FilesystemAccessError{Op: "mkdir", Path: dstParent, Err: err}
		}
	}

	srcFile, err := fs.Open(src)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "read", Path: src, Err: err}
	}
	defer srcFile.Close()

	dstFile, err := fs.Create(dst)
	if err != nil {
		return "", errors.FilesystemAccessError{Op: "write", Path: dst, Err: err}
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return "", errors.FilesystemAccessError{Op: "copy", Path: dst, Err: err}
	}

	if err := dstFile.Close(); err != nil {
		return "", errors.FilesystemAccessError{Op: "write", Path: dst, Err: err}
	}
	return Copied, nil
}

// truncateSlice truncates the given slice of strings to the given length. If
// the slice is longer than `length`, a message is appended saying how many
// more items are in the slice.
func truncateSlice(slc []string, length int) (truncated []string) {
	if len(slc) <= length {
		return slc
	}
	msg := fmt.Sprintf("... %d more ...", len(slc)-length)
	return append(append([]string{}, slc[:length]...), msg)
}

type nopReporter struct{}

func (nopReporter) Phase(string)      {}
func (nopReporter) Progress(Progress) {}
