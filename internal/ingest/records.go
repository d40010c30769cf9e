// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.yaml.in/yaml/v3"

	"github.com/listic-lab/pubgraph/pkg/types"
)

// RecordFile is one ingested source, written under data/records/ for the
// resolve stage to pick up. Re-ingesting a source replaces its file.
type RecordFile struct {
	Source       types.SourceSystem  `json:"source" yaml:"source"`
	Publications []types.Publication `json:"publications" yaml:"publications"`
	Skipped      int                 `json:"skipped" yaml:"skipped"`
	Countries    map[string]string   `json:"countries,omitempty" yaml:"countries,omitempty"`
}

// WriteRecordFile writes rf to dir/<source>.yaml and returns the written path.
func WriteRecordFile(dir string, rf RecordFile) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating records directory: %w", err)
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return "", fmt.Errorf("marshaling record file: %w", err)
	}

	path := filepath.Join(dir, string(rf.Source)+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ReadRecordFiles loads every record file under dir in file name order.
// A missing directory yields an empty slice, not an error.
func ReadRecordFiles(dir string) ([]RecordFile, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing record files: %w", err)
	}
	sort.Strings(paths)

	var out []RecordFile
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var rf RecordFile
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		out = append(out, rf)
	}
	return out, nil
}
