package sync

import (
	"path/filepath"

	"github.com/sidkik/musicsync/pkg/errors"
)

// Plan contains the changes required to make the destination tree match the
// source tree.
type Plan struct {
	FilesToAdd    []string
	FilesToRemove []string
	DirsToAdd     []string
	DirsToRemove  []string
}

// Empty returns whether the plan has nothing to do.
func (plan Plan) Empty() bool {
	return len(plan.FilesToAdd) == 0 && len(plan.FilesToRemove) == 0 &&
		len(plan.DirsToAdd) == 0 && len(plan.DirsToRemove) == 0
}

// NewPlan diffs the scans of the source and destination trees.
func NewPlan(source, dest ScanResult, destRoot string) (Plan, error) {
	filesToAdd, filesToRemove, err := Diff(source.Files, dest.Files, destRoot)
	if err != nil {
		return Plan{}, errors.WithContext(err, "diff files")
	}

	dirsToAdd, dirsToRemove, err := Diff(source.Dirs, dest.Dirs, destRoot)
	if err != nil {
		return Plan{}, errors.WithContext(err, "diff dirs")
	}

	return Plan{
		FilesToAdd:    filesToAdd,
		FilesToRemove: filesToRemove,
		DirsToAdd:     dirsToAdd,
		DirsToRemove:  dirsToRemove,
	}, nil
}

// Comparison holds the scans of both trees, and the plan for syncing them.
type Comparison struct {
	Source      ScanResult
	Destination ScanResult
	Plan        Plan
}

// Compare scans both roots and plans the changes needed to sync them.
func Compare(roots Roots) (Comparison, error) {
	source, err := Scan(roots.Source)
	if err != nil {
		return Comparison{}, errors.WithContext(err, "scan source")
	}

	dest, err := Scan(roots.Destination)
	if err != nil {
		return Comparison{}, errors.WithContext(err, "scan destination")
	}

	plan, err := NewPlan(source, dest, roots.Destination)
	if err != nil {
		return Comparison{}, errors.WithContext(err, "plan")
	}
	return Comparison{Source: source, Destination: dest, Plan: plan}, nil
}

// Diff returns the source paths that are missing under `destRoot`, and the
// destination paths that aren't in the source.
// The paths to add are checked against the filesystem rather than `destList`,
// so a path that exists in the destination but wasn't scanned (e.g. because
// it's too deep) isn't copied again.
func Diff(sourceList, destList []string, destRoot string) (toAdd, toRemove []string, err error) {
	for _, relPath := range sourceList {
		destPath := filepath.Join(destRoot, filepath.FromSlash(relPath))
		ok, err := exists(destPath)
		if err != nil {
			return nil, nil, errors.FilesystemAccessError{Op: "stat", Path: destPath, Err: err}
		}

		if !ok {
			toAdd = append(toAdd, relPath)
		}
	}

	inSource := make(map[string]struct{}, len(sourceList))
	for _, relPath := range sourceList {
		inSource[relPath] = struct{}{}
	}

	for _, relPath := range destList {
		if _, ok := inSource[relPath]; !ok {
			toRemove = append(toRemove, relPath)
		}
	}
	return toAdd, toRemove, nil
}
