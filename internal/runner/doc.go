// Package runner executes external audio tools.
//
// The Executor interface is the seam the splitter and encoder use so tests can
// substitute recorded command lines for real decoder and encoder processes.
package runner
