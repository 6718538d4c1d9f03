// Package organizer turns the raw AssetRipper output into the project layout
// the editor expects.
//
// The steps run in a fixed order: drop the auxiliary export files, flatten
// ExportedProject into the output root, prune scene and map folders, strip
// plugin assemblies that conflict with editor packages, and copy the game's
// own managed assemblies in their place. Every path is relative to the
// flattened root, so the flatten step must run before the prune steps.
package organizer
