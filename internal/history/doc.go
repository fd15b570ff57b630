// Package history persists a record of split runs in SQLite.
//
// Each run is inserted when the workflow starts and finalized with a status,
// an optional error message, and the number of tracks written. The CLI's
// history command reads the most recent runs back.
package history
