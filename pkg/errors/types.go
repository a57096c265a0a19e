package errors

import (
	"fmt"
)

// MissingFieldError represents a missing required field.
type MissingFieldError struct {
	Field string
}

func (err MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", err.Field)
}

// FileNotFound represents when we were unable to access a file
// because the path didn't exist.
type FileNotFound struct {
	Path string
}

func (err FileNotFound) Error() string {
	return fmt.Sprintf("%q does not exist", err.Path)
}

// FilesystemAccessError represents a path that couldn't be listed, created,
// read, or written. Err holds the underlying cause, such as a permission
// error or a file sitting where a directory was expected.
type FilesystemAccessError struct {
	Op   string
	Path string
	Err  error
}

func (err FilesystemAccessError) Error() string {
	return fmt.Sprintf("%s %q: %s", err.Op, err.Path, err.Err)
}

func (err FilesystemAccessError) Unwrap() error {
	return err.Err
}

// DirectoryNotEmptyError is returned when removing a directory that still has
// children.
type DirectoryNotEmptyError struct {
	Path string
}

func (err DirectoryNotEmptyError) Error() string {
	return fmt.Sprintf("directory %q is not empty", err.Path)
}
