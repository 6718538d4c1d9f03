package organizer

// Layout names the folders and files the reorganization touches. Paths are
// slash separated and relative to the output directory unless noted.
type Layout struct {
	// AuxiliaryDir is removed entirely.
	AuxiliaryDir string
	// ExportedDir holds the Unity project and is flattened into the root.
	ExportedDir string

	ScenesDir string
	// KeepScene is the only scene folder that survives pruning.
	KeepScene string
	// PrunedMaps are folders under ScenesDir/KeepScene that are removed.
	PrunedMaps []string

	PluginsDir string
	// PluginPrefix selects plugin files that are removed by name prefix.
	PluginPrefix string
	PluginDirs   []string
	PluginFiles  []string

	// ManagedLibraries are copied from the game's managed folder into PluginsDir.
	ManagedLibraries []string
}

// DefaultLayout returns the VTOL VR export layout.
func DefaultLayout() Layout {
	return Layout{
		AuxiliaryDir: "AuxiliaryFiles",
		ExportedDir:  "ExportedProject",
		ScenesDir:    "Assets/Scenes",
		KeepScene:    "Maps",
		PrunedMaps:   []string{"Akutan"},
		PluginsDir:   "Assets/Plugins",
		PluginPrefix: "Unity.",
		PluginDirs:   []string{"Assembly-CSharp-firstpass"},
		PluginFiles:  []string{"SteamVR.dll", "SteamVR_Actions.dll"},
		ManagedLibraries: []string{
			"Assembly-CSharp-firstpass.dll",
			"System.Memory.dll",
			"System.Buffers.dll",
			"Unity.XR.Oculus.dll",
			"Unity.XR.OpenVR.dll",
			"System.Runtime.CompilerServices.Unsafe.dll",
		},
	}
}
