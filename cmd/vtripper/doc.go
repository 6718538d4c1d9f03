// Package main hosts the vtripper CLI entrypoint and command graph.
//
// Running vtripper with no subcommand exports the configured VTOL VR install
// into a Unity project folder by running every pipeline stage. The run
// subcommand exposes the stage window and dry-run flags; stages, doctor, and
// config cover inspection and setup. Configuration is resolved lazily once
// per invocation so commands that do not need it (stages, config init) work
// without a config file.
package main
