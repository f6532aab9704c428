package scaffold

import (
	"fmt"
	"io"
	"os"

	"github.com/go-git/go-billy/v5"
)

// copyDir recursively copies src to dst. Symlinks are followed, so the copy
// holds the link targets' content.
func copyDir(fs billy.Filesystem, src, dst string) error {
	srcInfo, err := fs.Stat(src)
	if err != nil {
		return err
	}

	if err := fs.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := fs.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := fs.Join(src, entry.Name())
		dstPath := fs.Join(dst, entry.Name())

		info := entry
		if entry.Mode()&os.ModeSymlink != 0 {
			if info, err = fs.Stat(srcPath); err != nil {
				return fmt.Errorf("following symlink %s: %w", srcPath, err)
			}
		}

		switch {
		case info.IsDir():
			if err := copyDir(fs, srcPath, dstPath); err != nil {
				return err
			}
		case info.Mode().IsRegular():
			if err := copyFile(fs, srcPath, dstPath, info.Mode().Perm()); err != nil {
				return err
			}
		}
		// Sockets, devices and pipes are not part of a cape.
	}

	return nil
}

// copyFile copies a single file from src to dst with the given permissions.
func copyFile(fs billy.Filesystem, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
