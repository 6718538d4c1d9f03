package config

import "runtime"

const (
	defaultConfigPath       = "~/.config/vtripper/config.toml"
	defaultDecompilerBinary = "AssetRipper.CLI"
	defaultOutputDir        = "out"
	defaultSPluginsDir      = "SPlugins"
	defaultLogDir           = "~/.local/share/vtripper/logs"
	defaultStartStage       = "pre-clean"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DecompilerBinary: defaultDecompilerBinary,
			GameDir:          defaultGameDir(),
			OutputDir:        defaultOutputDir,
			SPluginsDir:      defaultSPluginsDir,
			LogDir:           defaultLogDir,
		},
		Pipeline: Pipeline{
			StartStage: defaultStartStage,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

func defaultGameDir() string {
	if runtime.GOOS == "windows" {
		return "C:/Program Files (x86)/Steam/steamapps/common/VTOL VR"
	}
	return "~/.steam/steam/steamapps/common/VTOL VR"
}
