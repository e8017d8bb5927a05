package compiler

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// FindExecutable looks name up the way a shell would, relative to cwd.
// Names containing a path separator are resolved against cwd and checked
// directly; bare names are searched in each searchPath entry.
func FindExecutable(name, searchPath, cwd string) (string, bool) {
	if name == "" {
		return "", false
	}

	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(cwd, p)
		}

		return checkExecutable(p)
	}

	for _, dir := range filepath.SplitList(searchPath) {
		if dir == "" {
			continue
		}

		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cwd, dir)
		}

		if p, ok := checkExecutable(filepath.Join(dir, name)); ok {
			return p, true
		}
	}

	return "", false
}

func checkExecutable(p string) (string, bool) {
	candidates := []string{p}
	if runtime.GOOS == "windows" && filepath.Ext(p) == "" {
		candidates = append(candidates, p+".exe")
	}

	for _, c := range candidates {
		info, err := os.Stat(c)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		if runtime.GOOS == "windows" || info.Mode().Perm()&0o111 != 0 {
			return c, true
		}
	}

	return "", false
}
