// Package logs reads the run log file for the CLI.
//
// Last returns the final lines of the file with bounded memory, Since reads
// everything appended after an offset, and Follow polls for new lines until
// its context ends. Every reader accepts an optional substring so callers
// can narrow output to one stage or one run's correlation ID.
package logs
