// Package services defines shared utilities consumed by the split workflow and
// its external-tool collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and track
//     numbers for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (failed vs rejected).
//
// Use these helpers when wiring new pipeline steps so error handling and
// observability stay uniform.
package services
