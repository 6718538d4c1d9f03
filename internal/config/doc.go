// Package config loads, normalizes, and validates the vtripper TOML
// configuration.
//
// Defaults reproduce the fixed layout the exporter was built around (the
// AssetRipper CLI on PATH, the Steam install of VTOL VR, an `out` project
// folder and a local `SPlugins` folder next to the working directory).
// Load resolves the file from an explicit path, then
// ~/.config/vtripper/config.toml, then ./vtripper.toml, and expands every path
// to an absolute form so stages never depend on the working directory.
package config
