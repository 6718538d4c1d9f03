// Package deps reports whether the external executables a run shells out to
// can be found.
package deps

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Requirement defines an external executable the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Commands containing a path separator are checked in place; bare names are
// resolved against PATH. The resolved location is recorded in Command.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, check(req))
	}
	return results
}

func check(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	if strings.ContainsRune(cmd, os.PathSeparator) || strings.ContainsRune(cmd, '/') {
		info, err := os.Stat(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			return status
		}
		if info.IsDir() {
			status.Detail = fmt.Sprintf("%q is a directory", cmd)
			return status
		}
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found or not executable", cmd)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}
