package workflow

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"vtripper/internal/services"
)

// Stage identifies one step of the export pipeline.
type Stage int

const (
	PreClean Stage = iota
	RipProject
	FormatProject
	EditManifest
	CopyDLLs
	FixScripts
)

type stageInfo struct {
	name    string
	ident   string
	summary string
}

var stageTable = [...]stageInfo{
	PreClean:      {"pre-clean", "PreClean", "Delete and recreate the output directory"},
	RipProject:    {"rip-project", "RipProject", "Export the game as a Unity project with AssetRipper"},
	FormatProject: {"format-project", "FormatProject", "Flatten the export, prune scenes and plugins, copy managed assemblies"},
	EditManifest:  {"edit-manifest", "EditManifest", "Pin package versions in Packages/manifest.json"},
	CopyDLLs:      {"copy-dlls", "CopyDLLs", "Copy SPlugins into Assets/Scripts/SPlugins"},
	FixScripts:    {"fix-scripts", "FixScripts", "Strip generated get_transform properties from UI scripts"},
}

func (s Stage) valid() bool {
	return s >= 0 && int(s) < len(stageTable)
}

// String returns the stage name used on the command line and in config.
func (s Stage) String() string {
	if !s.valid() {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageTable[s].name
}

// Identifier returns the CamelCase form of the stage name.
func (s Stage) Identifier() string {
	if !s.valid() {
		return s.String()
	}
	return stageTable[s].ident
}

// Summary describes what the stage does.
func (s Stage) Summary() string {
	if !s.valid() {
		return ""
	}
	return stageTable[s].summary
}

// Next returns the stage after s. It reports false past the last stage.
func (s Stage) Next() (Stage, bool) {
	next := s + 1
	if !s.valid() || !next.valid() {
		return s, false
	}
	return next, true
}

// Stages lists every stage in execution order.
func Stages() []Stage {
	stages := make([]Stage, len(stageTable))
	for i := range stageTable {
		stages[i] = Stage(i)
	}
	return stages
}

// First returns the stage a default run starts at.
func First() Stage { return PreClean }

// Last returns the final stage.
func Last() Stage { return Stage(len(stageTable) - 1) }

// ParseStage resolves a stage from its name or CamelCase identifier,
// ignoring case.
func ParseStage(name string) (Stage, error) {
	trimmed := strings.TrimSpace(name)
	fold := cases.Fold()
	want := fold.String(trimmed)
	for i, info := range stageTable {
		if want == fold.String(info.name) || want == fold.String(info.ident) {
			return Stage(i), nil
		}
	}
	names := make([]string, len(stageTable))
	for i, info := range stageTable {
		names[i] = info.name
	}
	return 0, services.Wrap(services.ErrConfiguration, "", "parse stage",
		fmt.Sprintf("unknown stage %q (want one of %s)", trimmed, strings.Join(names, ", ")), nil)
}
