package cuesheet

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFormat marks malformed cue sheet input.
	ErrFormat = errors.New("cue sheet format error")
	// ErrIntegrity marks structurally inconsistent cue sheet input.
	ErrIntegrity = errors.New("cue sheet integrity error")
)

// FormatError reports a malformed line, token, or timecode.
type FormatError struct {
	// Line is the 1-based position in the blank-stripped line sequence, or 0
	// when the failure is not tied to a line (for example a bare timecode).
	Line    int
	Command string
	Field   string
	Message string
	Err     error
}

func (e *FormatError) Error() string {
	parts := make([]string, 0, 3)
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line %d", e.Line))
	}
	if e.Command != "" {
		parts = append(parts, e.Command)
	}
	msg := e.Message
	if msg == "" {
		msg = "invalid value"
	}
	if e.Field != "" && !strings.Contains(msg, e.Field) {
		msg = e.Field + ": " + msg
	}
	parts = append(parts, msg)
	out := strings.Join(parts, ": ")
	if e.Err != nil {
		out += ": " + e.Err.Error()
	}
	return out
}

// Is matches ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// IntegrityError reports that a nonstandard sheet declares a different number
// of FILE entries than TRACK headers.
type IntegrityError struct {
	Files  int
	Tracks int
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("file count (%d) and track count (%d) don't match", e.Files, e.Tracks)
}

// Is matches ErrIntegrity.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// atLine stamps a line position and command onto a FormatError produced by a
// field parser. Other errors pass through untouched.
func atLine(err error, pos int, command string) error {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return err
	}
	stamped := *fe
	if stamped.Line == 0 {
		stamped.Line = pos
	}
	if stamped.Command == "" {
		stamped.Command = command
	}
	return &stamped
}
