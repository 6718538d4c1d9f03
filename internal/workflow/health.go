package workflow

import (
	"context"
	"strings"

	"vtripper/internal/preflight"
	"vtripper/internal/stage"
)

// HealthCheck reports whether the inputs of every stage are in place.
func (m *Manager) HealthCheck(ctx context.Context) []stage.Health {
	stages := Stages()
	results := make([]stage.Health, 0, len(stages))
	for _, s := range stages {
		handler, err := m.handlerFor(s)
		if err != nil {
			results = append(results, stage.Unhealthy(s.String(), err.Error()))
			continue
		}
		results = append(results, handler.HealthCheck(ctx))
	}
	return results
}

func (m *Manager) checkPreClean(context.Context) stage.Health {
	return healthFromResults(PreClean.String(),
		preflight.CheckParentWritable(preflight.NameOutputDir, m.cfg.Paths.OutputDir))
}

func (m *Manager) checkRipProject(context.Context) stage.Health {
	return healthFromResults(RipProject.String(),
		preflight.CheckDecompiler(m.cfg.Paths.DecompilerBinary),
		preflight.CheckDirectoryReadable(preflight.NameGameDir, m.cfg.Paths.GameDir),
	)
}

func (m *Manager) checkFormatProject(context.Context) stage.Health {
	return healthFromResults(FormatProject.String(), preflight.CheckManagedLibraries(m.cfg))
}

func (m *Manager) checkCopyDLLs(context.Context) stage.Health {
	return healthFromResults(CopyDLLs.String(),
		preflight.CheckDirectoryReadable(preflight.NameSPlugins, m.cfg.Paths.SPluginsDir))
}

func healthFromResults(name string, results ...preflight.Result) stage.Health {
	details := make([]string, 0, len(results))
	for _, r := range results {
		if !r.Passed {
			return stage.Unhealthy(name, r.Name+": "+r.Detail)
		}
		details = append(details, r.Name+": "+r.Detail)
	}
	health := stage.Healthy(name)
	health.Detail = strings.Join(details, "; ")
	return health
}
