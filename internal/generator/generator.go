// Package generator renders the self-extracting loader source that carries
// an encoded artifact together with the original program text.
package generator

import (
	"embed"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/Norgate-AV/cargo-payload/internal/codec"
)

// DefaultExtractPath is where generated loaders write the decoded artifact
const DefaultExtractPath = "/tmp/a.out"

// Language selects the loader skeleton
type Language string

const (
	Rust Language = "rust"
	Go   Language = "go"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

var docMarkers = map[Language]string{
	Rust: "//!",
	Go:   "//",
}

// Languages lists the supported loader languages
func Languages() []string {
	langs := make([]string, 0, len(docMarkers))
	for lang := range docMarkers {
		langs = append(langs, string(lang))
	}

	sort.Strings(langs)
	return langs
}

// IsSupported reports whether lang has a loader skeleton
func IsSupported(lang string) bool {
	_, ok := docMarkers[Language(lang)]
	return ok
}

// Input holds everything a loader is parameterized by
type Input struct {
	Language    Language
	Source      string
	Payload     string
	ExtractPath string
}

type templateData struct {
	Doc      string
	Alphabet string
	Path     string
	Payload  string
}

// Render produces the loader source. Output depends only on in.
func Render(in Input) (string, error) {
	marker, ok := docMarkers[in.Language]
	if !ok {
		return "", fmt.Errorf("unsupported template language %q (expected one of %s)", in.Language, strings.Join(Languages(), ", "))
	}

	path := in.ExtractPath
	if path == "" {
		path = DefaultExtractPath
	}

	data := templateData{
		Doc:      DocBlock(in.Source, marker),
		Alphabet: codec.Alphabet,
		Path:     path,
		Payload:  in.Payload,
	}

	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, string(in.Language)+".tmpl", data); err != nil {
		return "", fmt.Errorf("failed to render %s loader: %w", in.Language, err)
	}

	return sb.String(), nil
}

// DocBlock prefixes every source line with marker. Empty lines become the
// bare marker. Each output line ends with a newline.
func DocBlock(source, marker string) string {
	var sb strings.Builder
	for _, line := range Lines(source) {
		if line == "" {
			sb.WriteString(marker + "\n")
			continue
		}

		sb.WriteString(marker + " " + line + "\n")
	}

	return sb.String()
}

// Lines splits text on '\n', dropping a trailing "\r" from each line and
// the empty remainder after a final newline.
func Lines(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
