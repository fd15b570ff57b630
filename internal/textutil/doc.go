// Package textutil provides text transforms for tags and file names.
//
// The primary use cases are:
//   - Title-casing performer, songwriter, and title values with English
//     small-word and Roman numeral rules
//   - Sanitizing file names for safe filesystem use
package textutil
