package compiler

import (
	"io"
	"os"
)

// copyFile copies src to dst, preserving the permission bits
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := dstFile.Chmod(srcInfo.Mode().Perm()); err != nil {
		return err
	}

	return dstFile.Close()
}
