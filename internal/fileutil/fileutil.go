package fileutil

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFileVerified copies src to dst, then reads dst back and compares its
// size and xxhash digest with what was read from src. dst is removed on
// mismatch.
func CopyFileVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return fmt.Errorf("copy %s: source is a directory", src)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcDigest := xxhash.New()
	if _, err := io.Copy(out, io.TeeReader(in, srcDigest)); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	size, sum, err := digestFile(dst)
	if err != nil {
		return err
	}
	if size != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), size)
	}
	if sum != srcDigest.Sum64() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy digest mismatch for %s", dst)
	}
	return nil
}

func digestFile(path string) (int64, uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	d := xxhash.New()
	n, err := io.Copy(d, f)
	if err != nil {
		return 0, 0, fmt.Errorf("read back %s: %w", path, err)
	}
	return n, d.Sum64(), nil
}

// ResetDir deletes path and everything beneath it, then recreates it empty.
// A missing path is simply created.
func ResetDir(path string) error {
	cleaned := filepath.Clean(path)
	if path == "" || cleaned == filepath.Dir(cleaned) {
		return fmt.Errorf("refusing to reset %q", path)
	}
	if err := RemoveTree(cleaned); err != nil {
		return err
	}
	if err := os.Mkdir(cleaned, 0o755); err != nil {
		return fmt.Errorf("recreate %s: %w", cleaned, err)
	}
	return nil
}

// RemoveTree removes path recursively. Children are removed before their
// parent directory. A missing path is not an error; symlinks are removed
// without following them.
func RemoveTree(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove %s: %w", path, err)
		}
		return nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("list %s: %w", path, err)
	}
	for _, entry := range entries {
		if err := RemoveTree(filepath.Join(path, entry.Name())); err != nil {
			return err
		}
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove directory %s: %w", path, err)
	}
	return nil
}

// MoveEntry renames src to dst, replacing whatever already exists at dst.
func MoveEntry(src, dst string) error {
	if src == dst {
		return nil
	}
	if _, err := os.Lstat(dst); err == nil {
		if err := RemoveTree(dst); err != nil {
			return fmt.Errorf("replace %s: %w", dst, err)
		}
	}
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return nil
}

// Exists reports whether path exists. Errors other than "not found" are returned.
func Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// ListFiles returns every regular file under root, depth first, in lexical order.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
