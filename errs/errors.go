// Package errs defines the sentinel errors returned by memdwarf packages.
//
// Errors are wrapped with context using fmt.Errorf("%w: ...") and should be
// matched with errors.Is.
package errs

import "errors"

// Lookup errors. These are expected and recoverable; the caller decides
// what to do next.
var (
	ErrNotFound  = errors.New("no entry")
	ErrEndOfData = errors.New("end of data")
)

// Integrity errors. Bytes that disagree with their declared lengths or
// widths are never tolerated.
var (
	ErrMalformed        = errors.New("malformed debug information")
	ErrNoRootRecord     = errors.New("unit has no root record")
	ErrCursorRegression = errors.New("unit cursor did not advance")
	ErrNoDebugInfo      = errors.New("no debug information sections")
)

// Capability errors.
var (
	ErrUnsupportedCapability = errors.New("capability not supported by backing store")
)

// Usage errors.
var (
	ErrSessionClosed  = errors.New("session is finished")
	ErrNoOpenUnit     = errors.New("no unit is open")
	ErrRecordReleased = errors.New("record belongs to a released unit")
	ErrNotStringForm  = errors.New("attribute form is not a string form")
	ErrStringDecode   = errors.New("failed to decode string attribute")
)

// Construction errors.
var (
	ErrInvalidSectionCount = errors.New("declared section count does not match section table")
	ErrDuplicateSection    = errors.New("duplicate section name")
	ErrInvalidOption       = errors.New("invalid option")
)
