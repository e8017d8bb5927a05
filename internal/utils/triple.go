package utils

import (
	"path/filepath"
	"strings"
)

// DefaultTriple is the platform triple used when none is configured
const DefaultTriple = "x86_64-unknown-linux-musl"

// IsWindowsTriple reports whether the triple denotes a Windows target
func IsWindowsTriple(triple string) bool {
	return strings.Contains(triple, "windows")
}

// ExeName returns the file name cargo gives a bin target's artifact for the triple
func ExeName(bin, triple string) string {
	if IsWindowsTriple(triple) {
		return bin + ".exe"
	}

	return bin
}

// ArtifactPath returns <targetDir>/<triple>/release/<bin>[.exe]
func ArtifactPath(targetDir, triple, bin string) string {
	return filepath.Join(targetDir, triple, "release", ExeName(bin, triple))
}
