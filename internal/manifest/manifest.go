package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/PaesslerAG/jsonpath"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"vtripper/internal/services"
)

const (
	stageName       = "edit-manifest"
	dependenciesKey = "dependencies"
	schemaURL       = "manifest.schema.json"
)

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("parse manifest schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("load manifest schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Pin fixes one package to a version.
type Pin struct {
	Package string
	Version string
}

// DefaultPins returns the package versions the exported project needs to open
// cleanly in the editor.
func DefaultPins() []Pin {
	return []Pin{
		{Package: "com.unity.formats.fbx", Version: "5.1.1"},
		{Package: "com.unity.textmeshpro", Version: "3.0.6"},
		{Package: "com.unity.xr.management", Version: "4.0.7"},
		{Package: "com.unity.xr.openxr", Version: "1.2.8"},
	}
}

// Result reports what Patch changed.
type Result struct {
	// Updated lists packages whose version changed or that were added.
	Updated []string
	// Written is false when the file already matched.
	Written bool
}

// Patch sets every pin under "dependencies" in the manifest at path and
// writes the document back with two-space indentation. Existing keys keep
// their position; new ones are appended.
func Patch(path string, pins []Pin) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, services.Wrap(services.ErrNotFound, stageName, "read manifest", path, err)
		}
		return Result{}, services.Wrap(services.ErrFilesystem, stageName, "read manifest", path, err)
	}
	if err := Validate(data); err != nil {
		return Result{}, err
	}

	root, err := parseObject(data)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, stageName, "parse manifest", path, err)
	}
	rawDeps, _ := root.get(dependenciesKey)
	deps, err := parseObject(rawDeps)
	if err != nil {
		return Result{}, services.Wrap(services.ErrValidation, stageName, "parse dependencies", path, err)
	}

	var result Result
	for _, pin := range pins {
		encoded, err := json.Marshal(pin.Version)
		if err != nil {
			return Result{}, fmt.Errorf("encode version for %s: %w", pin.Package, err)
		}
		if current, ok := deps.get(pin.Package); ok && bytes.Equal(current, encoded) {
			continue
		}
		deps.set(pin.Package, encoded)
		result.Updated = append(result.Updated, pin.Package)
	}

	encodedDeps, err := deps.MarshalJSON()
	if err != nil {
		return Result{}, fmt.Errorf("encode dependencies: %w", err)
	}
	root.set(dependenciesKey, encodedDeps)
	out, err := encode(root)
	if err != nil {
		return Result{}, fmt.Errorf("encode manifest: %w", err)
	}
	if bytes.Equal(out, data) {
		return result, nil
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, out, mode); err != nil {
		return Result{}, services.Wrap(services.ErrFilesystem, stageName, "write manifest", path, err)
	}
	result.Written = true
	return result, nil
}

// Validate checks data against the embedded manifest schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return services.Wrap(services.ErrValidation, stageName, "parse manifest", "malformed JSON", err)
	}
	if err := schema.Validate(inst); err != nil {
		return services.Wrap(services.ErrValidation, stageName, "validate manifest", "unexpected manifest shape", err)
	}
	return nil
}

// Lookup returns the version recorded for pkg in the manifest at path.
func Lookup(path, pkg string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrNotFound, stageName, "read manifest", path, err)
		}
		return "", services.Wrap(services.ErrFilesystem, stageName, "read manifest", path, err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", services.Wrap(services.ErrValidation, stageName, "parse manifest", path, err)
	}

	expr := "$." + dependenciesKey + "[" + strconv.Quote(pkg) + "]"
	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, stageName, "lookup dependency", pkg, err)
	}
	version, ok := val.(string)
	if !ok {
		return "", services.Wrap(services.ErrValidation, stageName, "lookup dependency",
			fmt.Sprintf("%s version is %T, want string", pkg, val), nil)
	}
	return version, nil
}

// Verify confirms every pin is recorded in the manifest at path.
func Verify(path string, pins []Pin) error {
	for _, pin := range pins {
		got, err := Lookup(path, pin.Package)
		if err != nil {
			return err
		}
		if got != pin.Version {
			return services.Wrap(services.ErrValidation, stageName, "verify manifest",
				fmt.Sprintf("%s is %q, want %q", pin.Package, got, pin.Version), nil)
		}
	}
	return nil
}
