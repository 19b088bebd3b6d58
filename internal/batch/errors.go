package batch

import (
	"errors"
	"fmt"
)

// Kind classifies a per-file failure.
type Kind string

const (
	KindDecode     Kind = "decode"
	KindOCR        Kind = "ocr"
	KindFilesystem Kind = "filesystem"
	KindUnexpected Kind = "unexpected"
)

// FileError is the failure of a single source file.
type FileError struct {
	Kind  Kind
	Index int
	Path  string
	Err   error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s error on file %d (%s): %v", e.Kind, e.Index, e.Path, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" when err is not a *FileError.
func KindOf(err error) Kind {
	var fe *FileError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

// Precondition sentinels, matchable with errors.Is.
var (
	ErrNoSources     = errors.New("please select source files first")
	ErrNoDestination = errors.New("please select a destination folder")
	ErrNoZones       = errors.New("please define at least one OCR zone")
	ErrNoImage       = errors.New("please select an image first")
)

// PreconditionError means the run was refused before touching any file.
type PreconditionError struct {
	Reason error
}

func (e *PreconditionError) Error() string { return e.Reason.Error() }

func (e *PreconditionError) Unwrap() error { return e.Reason }

var (
	// ErrDestinationUnavailable means the destination directory is missing or
	// is not a directory.
	ErrDestinationUnavailable = errors.New("destination directory unavailable")

	// ErrBusy means a run is already in progress on this Processor.
	ErrBusy = errors.New("a batch is already running")
)
