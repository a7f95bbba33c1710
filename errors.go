package mediareport

import (
	"errors"
	"fmt"
)

// Kind classifies the failures a report or upload run can end with.
type Kind int

const (
	// KindUnknown is the zero Kind.
	KindUnknown Kind = iota
	// KindUnsupportedFileType marks a file rejected at selection time.
	KindUnsupportedFileType
	// KindNoFileSelected marks an upload attempted with nothing chosen.
	KindNoFileSelected
	// KindNetwork marks a transport failure during upload.
	KindNetwork
	// KindServer marks a non-OK HTTP status from the upload endpoint.
	KindServer
	// KindUnrecognizedResponse marks an OK response with an unexpected content type.
	KindUnrecognizedResponse
	// KindCapture marks a missing capture region or a failed rasterization.
	KindCapture
)

var kindNames = map[Kind]string{
	KindUnknown:              "unknown",
	KindUnsupportedFileType:  "unsupported file type",
	KindNoFileSelected:       "no file selected",
	KindNetwork:              "network failure",
	KindServer:               "server error",
	KindUnrecognizedResponse: "unrecognized response",
	KindCapture:              "capture error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the error type returned by upload and report operations.
//
// Two Errors match under [errors.Is] when their Kind is equal, so callers
// can test against the sentinel values below.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "upload"
	Message string // user-facing detail, may be empty
	Status  int    // HTTP status for KindServer
	Err     error  // underlying cause
}

func (e *Error) Error() string {
	msg := "mediareport: "
	if e.Op != "" {
		msg += e.Op + ": "
	}
	msg += e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors returned by the library.
var (
	ErrUnsupportedFileType  = &Error{Kind: KindUnsupportedFileType}
	ErrNoFileSelected       = &Error{Kind: KindNoFileSelected}
	ErrNetwork              = &Error{Kind: KindNetwork}
	ErrServer               = &Error{Kind: KindServer}
	ErrUnrecognizedResponse = &Error{Kind: KindUnrecognizedResponse}
	ErrCapture              = &Error{Kind: KindCapture}

	// ErrClosed is returned when attempting to use a closed [Capturer].
	ErrClosed = errors.New("mediareport: capturer is closed")

	// ErrBusy is returned by [Session.Begin] while a generation is in flight.
	ErrBusy = errors.New("mediareport: a report is already being generated")

	// ErrInvalidLayout is returned for page geometry that cannot be paginated.
	ErrInvalidLayout = errors.New("mediareport: invalid page layout")
)

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func captureError(msg string, err error) *Error {
	return &Error{Kind: KindCapture, Op: "capture", Message: msg, Err: err}
}
