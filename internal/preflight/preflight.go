package preflight

import (
	"context"

	"vtripper/internal/config"
	"vtripper/internal/organizer"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Check names, shared with callers that select checks per stage.
const (
	NameDecompiler       = "AssetRipper CLI"
	NameGameDir          = "Game directory"
	NameManagedLibraries = "Managed libraries"
	NameSPlugins         = "SPlugins folder"
	NameOutputDir        = "Output directory"
	NameLogDir           = "Log directory"
)

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	checks := []func() Result{
		func() Result { return CheckDecompiler(cfg.Paths.DecompilerBinary) },
		func() Result { return CheckDirectoryReadable(NameGameDir, cfg.Paths.GameDir) },
		func() Result { return CheckManagedLibraries(cfg) },
		func() Result { return CheckDirectoryReadable(NameSPlugins, cfg.Paths.SPluginsDir) },
		func() Result { return CheckParentWritable(NameOutputDir, cfg.Paths.OutputDir) },
		func() Result { return CheckDirectoryAccess(NameLogDir, cfg.Paths.LogDir) },
	}

	results := make([]Result, 0, len(checks))
	for _, check := range checks {
		if ctx.Err() != nil {
			break
		}
		results = append(results, check())
	}
	return results
}

// CheckManagedLibraries verifies the game install ships every assembly the
// reorganizer copies.
func CheckManagedLibraries(cfg *config.Config) Result {
	return CheckFilesPresent(NameManagedLibraries, cfg.ManagedDir(), organizer.DefaultLayout().ManagedLibraries)
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
