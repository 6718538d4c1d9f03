package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vtripper/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	return checkDirectory(name, path, true, "read/write ok")
}

// CheckDirectoryReadable verifies that the directory exists and can be listed.
func CheckDirectoryReadable(name, path string) Result {
	return checkDirectory(name, path, false, "read ok")
}

func checkDirectory(name, path string, write bool, okDetail string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := dirAccess(path, write); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, okDetail)}
}

// CheckFilesPresent verifies that every named file exists as a regular file
// inside dir.
func CheckFilesPresent(name, dir string, files []string) Result {
	var missing []string
	for _, file := range files {
		info, err := os.Stat(filepath.Join(dir, file))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, file)
		}
	}
	if len(missing) > 0 {
		return Result{Name: name, Detail: fmt.Sprintf("missing from %s: %s", dir, strings.Join(missing, ", "))}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d files in %s", len(files), dir)}
}

// CheckParentWritable verifies that path can be created or replaced: its
// parent directory must exist and be writable.
func CheckParentWritable(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	parent := filepath.Dir(filepath.Clean(path))
	result := CheckDirectoryAccess(name, parent)
	if result.Passed {
		result.Detail = fmt.Sprintf("%s (parent writable)", path)
	}
	return result
}

// CheckDecompiler verifies that the decompiler binary resolves to an executable.
func CheckDecompiler(command string) Result {
	status := deps.CheckBinaries([]deps.Requirement{{
		Name:        NameDecompiler,
		Command:     command,
		Description: "Required for the rip-project stage",
	}})[0]
	if !status.Available {
		return Result{Name: NameDecompiler, Detail: status.Detail}
	}
	return Result{Name: NameDecompiler, Passed: true, Detail: status.Command}
}
