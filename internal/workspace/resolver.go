package workspace

import (
	"fmt"
	"strings"
)

// Mode tells Resolve how to pick a bin target
type Mode int

const (
	// Infer picks the only bin target of the workspace
	Infer Mode = iota
	// ByName picks the bin target with a given name
	ByName
	// BySourcePath picks the bin target with a given absolute main source path
	BySourcePath
)

// Selection is a target selection hint
type Selection struct {
	Mode  Mode
	Value string
}

// SelectByName selects the bin target called name
func SelectByName(name string) Selection {
	return Selection{Mode: ByName, Value: name}
}

// SelectBySourcePath selects the bin target whose main source file is path.
// path must already be absolute.
func SelectBySourcePath(path string) Selection {
	return Selection{Mode: BySourcePath, Value: path}
}

// SelectInferred selects the workspace's only bin target
func SelectInferred() Selection {
	return Selection{Mode: Infer}
}

// Candidate pairs a bin target with its owning package
type Candidate struct {
	Target  Target
	Package *Package
}

// ResolveError reports a selection that matched zero or several targets
type ResolveError struct {
	Selection  Selection
	Candidates []string
	Note       string

	// Matches holds the targets behind Candidates
	Matches []Candidate
}

func (e *ResolveError) Error() string {
	var msg string

	switch e.Selection.Mode {
	case ByName:
		if len(e.Candidates) == 0 {
			msg = fmt.Sprintf("no bin target named `%s`", e.Selection.Value)
		} else {
			msg = fmt.Sprintf("multiple bin targets named `%s` in this workspace (in packages: %s)",
				e.Selection.Value, strings.Join(e.Candidates, ", "))
		}
	case BySourcePath:
		if len(e.Candidates) == 0 {
			msg = fmt.Sprintf("`%s` is not the main source file of any bin targets in this workspace", e.Selection.Value)
		} else {
			msg = fmt.Sprintf("multiple bin targets which `src_path` is `%s`: %s",
				e.Selection.Value, strings.Join(e.Candidates, ", "))
		}
	default:
		if len(e.Candidates) == 0 {
			msg = "no bin target in this workspace"
		} else {
			msg = "could not determine which binary to choose. Use the `--bin` option or `--src` option to specify a binary.\n" +
				"available binaries: " + strings.Join(e.Candidates, ", ") + "\n" +
				"note: currently `cargo-payload` does not support the `default-run` manifest key."
		}
	}

	if e.Note != "" {
		msg += "\n" + e.Note
	}

	return msg
}

// Ambiguous reports whether several targets matched
func (e *ResolveError) Ambiguous() bool {
	return len(e.Candidates) > 1
}

// ManifestPaths returns the manifests of the packages owning the matched
// targets, without duplicates, in match order
func (e *ResolveError) ManifestPaths() []string {
	var paths []string
	seen := make(map[string]bool)

	for _, c := range e.Matches {
		if c.Package == nil || seen[c.Package.ManifestPath] {
			continue
		}

		seen[c.Package.ManifestPath] = true
		paths = append(paths, c.Package.ManifestPath)
	}

	return paths
}

// BinTargets returns every bin target of the workspace members, in
// metadata order
func BinTargets(m *Metadata) []Candidate {
	var candidates []Candidate

	for i := range m.Packages {
		pkg := &m.Packages[i]
		if !m.IsMember(pkg.ID) {
			continue
		}

		for _, target := range pkg.Targets {
			if target.IsBin() {
				candidates = append(candidates, Candidate{Target: target, Package: pkg})
			}
		}
	}

	return candidates
}

// Resolve returns the one bin target matching sel. It never guesses: zero
// or multiple matches produce a *ResolveError.
func Resolve(m *Metadata, sel Selection) (Candidate, error) {
	var matches []Candidate

	for _, c := range BinTargets(m) {
		switch sel.Mode {
		case ByName:
			if c.Target.Name != sel.Value {
				continue
			}
		case BySourcePath:
			if c.Target.SrcPath != sel.Value {
				continue
			}
		}

		matches = append(matches, c)
	}

	if len(matches) == 1 {
		return matches[0], nil
	}

	err := &ResolveError{Selection: sel, Matches: matches}
	for _, c := range matches {
		if sel.Mode == ByName {
			err.Candidates = append(err.Candidates, c.Package.Name)
		} else {
			err.Candidates = append(err.Candidates, c.Target.Name)
		}
	}

	return Candidate{}, err
}
