// Package workspace models the Cargo workspace a payload is built from and
// picks the single bin target to build.
package workspace

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// BinKind is the only target kind a payload can be built from
const BinKind = "bin"

// Target is a buildable entry point of a package
type Target struct {
	Name    string   `json:"name"`
	Kind    []string `json:"kind"`
	SrcPath string   `json:"src_path"`
}

// IsBin reports whether the target kind is exactly ["bin"]
func (t Target) IsBin() bool {
	return len(t.Kind) == 1 && t.Kind[0] == BinKind
}

// Package is a workspace package as reported by `cargo metadata`
type Package struct {
	Name         string   `json:"name"`
	ID           string   `json:"id"`
	ManifestPath string   `json:"manifest_path"`
	Targets      []Target `json:"targets"`
}

// Dir returns the package root, the directory holding its manifest
func (p *Package) Dir() string {
	return filepath.Dir(p.ManifestPath)
}

// Metadata is the subset of `cargo metadata --format-version 1` output
// needed to resolve and build a bin target
type Metadata struct {
	Packages         []Package `json:"packages"`
	WorkspaceMembers []string  `json:"workspace_members"`
	TargetDirectory  string    `json:"target_directory"`
}

// Parse decodes `cargo metadata` JSON output
func Parse(data []byte) (*Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse `cargo metadata` output: %w", err)
	}

	if m.TargetDirectory == "" {
		return nil, fmt.Errorf("`cargo metadata` output has no `target_directory`")
	}

	return &m, nil
}

// IsMember reports whether the package id belongs to the workspace
func (m *Metadata) IsMember(id string) bool {
	for _, member := range m.WorkspaceMembers {
		if member == id {
			return true
		}
	}

	return false
}
