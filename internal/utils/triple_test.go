package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWindowsTriple(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"x86_64-unknown-linux-musl", false},
		{"x86_64-pc-windows-gnu", true},
		{"x86_64-pc-windows-msvc", true},
		{"aarch64-apple-darwin", false},
		{"", false},
	}

	for _, test := range tests {
		result := IsWindowsTriple(test.input)
		assert.Equal(t, test.expected, result, "IsWindowsTriple(%q)", test.input)
	}
}

func TestArtifactPath(t *testing.T) {
	tests := []struct {
		name     string
		triple   string
		bin      string
		expected string
	}{
		{
			name:     "linux target has no suffix",
			triple:   "x86_64-unknown-linux-musl",
			bin:      "hello",
			expected: filepath.Join("/ws/target", "x86_64-unknown-linux-musl", "release", "hello"),
		},
		{
			name:     "windows target gets exe suffix",
			triple:   "x86_64-pc-windows-gnu",
			bin:      "hello",
			expected: filepath.Join("/ws/target", "x86_64-pc-windows-gnu", "release", "hello.exe"),
		},
		{
			name:     "dotted bin name keeps its name",
			triple:   "x86_64-pc-windows-gnu",
			bin:      "a.b",
			expected: filepath.Join("/ws/target", "x86_64-pc-windows-gnu", "release", "a.b.exe"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ArtifactPath("/ws/target", tt.triple, tt.bin))
		})
	}
}
