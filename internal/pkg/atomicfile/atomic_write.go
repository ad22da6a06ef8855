// Package atomicfile writes files the way conf.yml and generated .conf
// files must be written: temp file in the same directory, fsync, then
// rename — so readers never observe a partial write (spec §4.1, §4.5).
package atomicfile

import (
	"io"
	"os"
	"path/filepath"
)

// Write writes content to path atomically: it creates a temp file
// alongside path, writes and syncs it, then renames it into place. A
// leftover existing file is backed up to path+".bak" first so a bad write
// never destroys the last-known-good config.
func Write(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
		if err := copyFile(path, path+".bak", st.Mode().Perm()); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
