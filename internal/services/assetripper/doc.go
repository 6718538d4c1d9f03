// Package assetripper mediates access to the AssetRipper CLI that converts the
// compiled game build into a Unity project tree.
//
// It builds the `unityproject` invocation, streams the tool's stdout into the
// structured log (trimmed, blank lines dropped), and waits for the process to
// exit. The exit status is logged but never fails the export; only a missing
// binary, a configured timeout, or cancellation do. Tests swap the process
// runner through the Executor interface.
package assetripper
