package validation_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/expense-tracker/internal/validation"

	"github.com/stretchr/testify/assert"
)

func TestInputFileAndDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "expenses.csv")
	assert.NoError(t, os.WriteFile(testFile, []byte("date,amount,description\n"), 0600))

	tests := []struct {
		name       string
		check      func(string) error
		path       string
		errContain string
	}{
		{"file ok", validation.InputFile, testFile, ""},
		{"file is dir", validation.InputFile, tmpDir, "not a regular file"},
		{"file missing", validation.InputFile, filepath.Join(tmpDir, "nope.csv"), "path does not exist"},
		{"file empty", validation.InputFile, "", "path is empty"},
		{"dir ok", validation.InputDirectory, tmpDir, ""},
		{"dir is file", validation.InputDirectory, testFile, "not a directory"},
		{"dir missing", validation.InputDirectory, filepath.Join(tmpDir, "nope"), "path does not exist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.path)
			if tt.errContain == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContain)
		})
	}
}

func TestReportFormat(t *testing.T) {
	for _, f := range []string{"text", "json", "xml"} {
		assert.NoError(t, validation.ReportFormat(f), f)
	}
	for _, f := range []string{"", "csv", "TEXT", "html"} {
		err := validation.ReportFormat(f)
		assert.Error(t, err, f)
		if err != nil {
			assert.Contains(t, err.Error(), "unsupported report format")
		}
	}
}
