// Package splitter decodes the audio referenced by a cue sheet into one
// temporary WAV file per track.
//
// Standard sheets are cut from their single source file at each track's
// INDEX 01 sample offset. Nonstandard sheets already hold one file per track,
// so each file is decoded whole. Noncompliant sheets cannot be split because
// their track boundaries cross files.
//
// Supported sources are FLAC (flac), WavPack (wvunpack), and Monkey's Audio
// (mac, converted to FLAC before splitting). Commands run through a
// runner.Executor so tests can substitute a recorder.
package splitter
