// Package workflow runs the end-to-end split of one cue sheet.
//
// A run takes an exclusive lock on the output directory, parses and
// classifies the sheet, optionally title-cases its text, decodes one WAV per
// track, then encodes, tags, and files each track concurrently. Originals
// (the cue sheet, its source audio, and an optional cover) are copied next to
// the encoded tracks. Every run is recorded in the history store when one is
// configured.
package workflow
