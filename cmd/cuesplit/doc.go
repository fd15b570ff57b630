// Package main hosts the cuesplit CLI entrypoint and command graph.
//
// The Cobra command tree inspects cue sheets, splits and encodes albums,
// reports external tool availability, scaffolds configuration, and lists the
// run history. Configuration is resolved once per invocation in the command
// context; the heavy lifting lives in the internal packages.
package main
