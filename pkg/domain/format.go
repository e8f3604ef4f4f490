package domain

import (
	"path/filepath"
	"strings"
)

// Format identifies the syntax of a machine description.
type Format string

const (
	FormatText Format = "tm"   // five-section text format
	FormatYAML Format = "yaml" // structured YAML document
)

// FormatFromName infers the format from a file name or key.
// Anything that is not YAML is read as text.
func FormatFromName(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatText
}

// TrimFormat strips a known description extension from name.
func TrimFormat(name string) string {
	switch ext := filepath.Ext(name); strings.ToLower(ext) {
	case ".tm", ".yaml", ".yml":
		return strings.TrimSuffix(name, ext)
	}
	return name
}
