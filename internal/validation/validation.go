// Package validation checks user-supplied paths and formats before any work
// is done with them.
package validation

import (
	"fmt"
	"os"
)

// ReportFormats lists the formats the report generator understands.
var ReportFormats = []string{"text", "json", "xml"}

// InputFile checks that path names an existing regular file.
func InputFile(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is not a regular file", path)
	}
	return nil
}

// InputDirectory checks that path names an existing directory.
func InputDirectory(path string) error {
	info, err := stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", path)
	}
	return nil
}

func stat(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path is empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("error checking path %s: %w", path, err)
	}
	return info, nil
}

// ReportFormat checks that format is one of ReportFormats.
func ReportFormat(format string) error {
	for _, f := range ReportFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json', 'xml'", format)
}
