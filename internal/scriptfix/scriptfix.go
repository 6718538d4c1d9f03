package scriptfix

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"vtripper/internal/fileutil"
	"vtripper/internal/logging"
	"vtripper/internal/services"
)

const stageName = "fix-scripts"

// TargetSubdir is the folder scanned by the default run, relative to the
// output directory.
const TargetSubdir = "Assets/Scripts/Assembly-CSharp/UnityEngine/UI"

// SourceExt selects the files that are patched.
const SourceExt = ".cs"

// Transform is one textual fix applied to every source file.
type Transform struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Apply returns src with every non-overlapping match replaced.
func (t Transform) Apply(src string) string {
	return t.Pattern.ReplaceAllLiteralString(src, t.Replacement)
}

// getTransformPattern matches an explicitly implemented get_transform property
// getter: the [SpecialName] attribute line, the declaration line, and the body
// up to the first closing brace.
var getTransformPattern = regexp.MustCompile(`\[SpecialName\]\r?\n.+\.get_transform\(\)[\w\W]+?}`)

// DefaultTransforms returns the fixes applied by the fix-scripts stage.
func DefaultTransforms() []Transform {
	return []Transform{
		{Name: "strip-get-transform", Pattern: getTransformPattern, Replacement: ""},
	}
}

// Result lists the files PatchTree looked at and the ones it rewrote.
type Result struct {
	Scanned []string
	Patched []string
}

// PatchTree applies transforms to every file under root whose name ends in
// ext. Files are rewritten only when their content changes, keeping their
// permission bits.
func PatchTree(ctx context.Context, root, ext string, transforms []Transform, logger *slog.Logger) (Result, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "scriptfix"))

	files, err := fileutil.ListFiles(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, stageName, "list scripts", root, err)
		}
		return Result{}, services.Wrap(services.ErrFilesystem, stageName, "list scripts", root, err)
	}

	var result Result
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !strings.HasSuffix(path, ext) {
			continue
		}
		result.Scanned = append(result.Scanned, path)

		changed, err := patchFile(path, transforms)
		if err != nil {
			return result, services.Wrap(services.ErrFilesystem, stageName, "patch script", path, err)
		}
		if changed {
			logger.Info("fixed script", logging.String("file", path))
			result.Patched = append(result.Patched, path)
		}
	}
	logger.Info("script fixes applied",
		logging.Int("scanned", len(result.Scanned)),
		logging.Int("patched", len(result.Patched)),
	)
	return result, nil
}

func patchFile(path string, transforms []Transform) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	original := string(data)
	updated := original
	for _, transform := range transforms {
		updated = transform.Apply(updated)
	}
	if updated == original {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
