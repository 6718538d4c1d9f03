// Package preflight provides readiness checks for the filesystem paths and
// external tools an export run depends on.
//
// These checks run in two contexts:
//   - The workflow manager checks the inputs of the stages it is about to
//     run and refuses to start if any of them fail, so a run never wipes the
//     output folder only to stop at a missing game install.
//   - The CLI "vtripper doctor" command runs every check and renders a table.
package preflight
