package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gokuljokul/method-name-relevance-detector/internal/model"
)

// SavePath returns the conventional report file name for a source path:
// the base name with its extension replaced by _analysis.json, placed in dir.
func SavePath(dir, sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, base+"_analysis.json")
}

// Save writes the report as indented JSON with stable field names. Failures
// come back as *model.PersistenceError so the caller can downgrade them to a
// warning without invalidating console output already produced.
func Save(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return &model.PersistenceError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return &model.PersistenceError{Path: path, Err: err}
	}
	return nil
}
