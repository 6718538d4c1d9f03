// Package manifest edits the Unity package manifest (Packages/manifest.json)
// of an exported project.
//
// Patch pins a set of package versions under "dependencies" while keeping
// the document's key order, so re-running the edit on an already patched
// manifest leaves the file byte-identical. The document is checked against
// an embedded JSON Schema before any edit is applied.
package manifest
