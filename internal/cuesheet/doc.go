// Package cuesheet parses cue sheets into a validated document tree.
//
// Parsing runs in fixed phases over a fully buffered line sequence: blank
// lines are dropped, each remaining line is tokenized into a command keyword
// and raw tokens, the whole sequence is classified as a standard (single
// FILE) or nonstandard (multi FILE) layout, and a single assembly pass folds
// the lines into a Sheet. The classification must be known before assembly
// because it decides how TRACK headers attach to FILE entries.
//
// The package performs no logging and holds no state between calls. A Sheet
// returned by Parse, ParseLines, Read, or ParseFile is exclusively owned by
// the caller and safe for concurrent reads.
//
// Failures are reported as *FormatError (malformed or out of range values,
// missing tokens) or *IntegrityError (FILE and TRACK counts disagree in a
// nonstandard sheet). Both match ErrFormat and ErrIntegrity via errors.Is.
package cuesheet
