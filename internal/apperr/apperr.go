// Package apperr defines the application error taxonomy.
//
// Every failure that crosses a package boundary is classified with a Kind.
// The web layer uses the kind to pick an HTTP status, and UserMessageFor to
// build the client-facing payload. Each kind carries a short support code
// that users can quote when reporting problems:
//
//	FILE001 - wrong file extension
//	FILE002 - bytes not parseable as an Excel sheet
//	FILE003 - sheet too small to contain header + data
//	FILE004 - no row matched the header keywords
//	DB001   - uniqueness constraint violated at commit time
//	ERR000  - anything unexpected
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error.
type Kind int

const (
	// KindUnknown covers unexpected failures. Reported to clients as a
	// generic server error; the technical detail stays in the logs.
	KindUnknown Kind = iota

	// KindUnsupportedFormat means the uploaded file has the wrong extension.
	KindUnsupportedFormat

	// KindDecode means the file bytes could not be parsed as a spreadsheet.
	KindDecode

	// KindInsufficientData means the sheet has too few rows, either overall
	// or after the located header.
	KindInsufficientData

	// KindHeaderNotFound means no row matched enough header keywords.
	KindHeaderNotFound

	// KindConflict means a uniqueness constraint fired outside the normal
	// look-up-then-create path (e.g. two concurrent uploads racing on the
	// same identifier). Retryable.
	KindConflict
)

// Code returns the support reference code for the kind.
func (k Kind) Code() string {
	switch k {
	case KindUnsupportedFormat:
		return "FILE001"
	case KindDecode:
		return "FILE002"
	case KindInsufficientData:
		return "FILE003"
	case KindHeaderNotFound:
		return "FILE004"
	case KindConflict:
		return "DB001"
	default:
		return "ERR000"
	}
}

// Error is a classified application error. Message is safe to show to
// clients; Err (optional) carries the technical cause for the logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a classified error with a client-safe message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap classifies an underlying error, keeping it available via Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind from an error chain. Unclassified errors
// report KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage is the client-facing view of an error: what happened, what to
// do about it, and a code for support reference.
type UserMessage struct {
	Message string `json:"error"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// actions suggests a next step per kind.
var actions = map[Kind]string{
	KindUnsupportedFormat: "Upload a legacy Excel export with the .xls extension",
	KindDecode:            "Re-export the report and try again",
	KindInsufficientData:  "The sheet must contain a header row and at least one data row",
	KindHeaderNotFound:    "Check that the export contains the standard report header",
	KindConflict:          "Another upload touched the same records; retry in a moment",
}

// UserMessageFor maps any error to a client-facing message. Classified
// errors expose their own message; everything else degrades to a generic
// failure so internal detail never leaks.
func UserMessageFor(err error) UserMessage {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindUnknown {
		return UserMessage{
			Message: e.Message,
			Action:  actions[e.Kind],
			Code:    e.Kind.Code(),
		}
	}
	return UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Please try again or contact support",
		Code:    KindUnknown.Code(),
	}
}
