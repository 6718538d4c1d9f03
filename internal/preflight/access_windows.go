//go:build windows

package preflight

import (
	"errors"
	"io"
	"os"
)

// dirAccess lists path and, when write is set, creates and removes a probe
// file in it. Windows ACLs are not reflected in mode bits.
func dirAccess(path string, write bool) error {
	dir, err := os.Open(path)
	if err != nil {
		return err
	}
	_, err = dir.Readdirnames(1)
	dir.Close()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !write {
		return nil
	}
	probe, err := os.CreateTemp(path, ".vtripper-access-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}
