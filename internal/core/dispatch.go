package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format describes one supported family of question files.
type Format struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`

	parse func([]byte) ImportResult
}

// Formats returns the supported formats in display order.
func Formats() []Format {
	return []Format{
		{Name: "spreadsheet", Extensions: []string{".xlsx", ".xls"}, parse: ParseTabular},
		{Name: "document", Extensions: []string{".docx"}, parse: ParseDocument},
	}
}

// SupportedExtensions lists every accepted extension in display order.
func SupportedExtensions() []string {
	var exts []string
	for _, f := range Formats() {
		exts = append(exts, f.Extensions...)
	}
	return exts
}

// FormatFor returns the format handling filename's extension.
// Matching is case-insensitive.
func FormatFor(filename string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range Formats() {
		for _, e := range f.Extensions {
			if e == ext {
				return f, true
			}
		}
	}
	return Format{}, false
}

// ParseQuestionFile routes data to the parser for filename's extension.
// Unsupported extensions fail without invoking any parser.
func ParseQuestionFile(data []byte, filename string) ImportResult {
	f, ok := FormatFor(filename)
	if !ok {
		return fatalResult(fmt.Errorf("%w: %s. Supported: %s",
			ErrUnsupportedFormat, filename, strings.Join(SupportedExtensions(), ", ")))
	}
	return f.parse(data)
}
