//go:build unix

package preflight

import "golang.org/x/sys/unix"

// dirAccess asks the kernel whether the current user may list path and,
// when write is set, create entries in it.
func dirAccess(path string, write bool) error {
	mode := uint32(unix.R_OK | unix.X_OK)
	if write {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode)
}
