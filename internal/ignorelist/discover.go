package ignorelist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// SearchNames are the file names looked for, in order, in each directory
var SearchNames = []string{
	".attjr-ignore.yaml",
	".attjr-ignore.yml",
	".attjr-ignore.json",
	".attjr-ignore.jsonc",
}

// Discover returns a Loader that reads explicitPath when set, otherwise
// walks from startDir up to the filesystem root looking for SearchNames.
func Discover(startDir, explicitPath string) Loader {
	return func(ctx context.Context) (*File, error) {
		if explicitPath != "" {
			return ReadFile(explicitPath)
		}

		path, err := find(startDir)
		if err != nil || path == "" {
			return nil, err
		}
		return ReadFile(path)
	}
}

func find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, name := range SearchNames {
			candidate := filepath.Join(dir, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// ReadFile parses an ignore file. The format is chosen by extension:
// .yaml/.yml use YAML, .json/.jsonc allow comments and trailing commas.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	file, err := Parse(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return file, nil
}

// Parse decodes ignore file contents for the given extension
func Parse(ext string, data []byte) (*File, error) {
	var file File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return &file, nil
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
	default:
		return nil, errors.New("unsupported ignore file extension " + ext)
	}
	return &file, nil
}
