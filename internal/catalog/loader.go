package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// toolRecordConfig is the YAML shape for a user-supplied catalog entry
type toolRecordConfig struct {
	Name                string   `yaml:"name"`
	Description         string   `yaml:"description"`
	RequiredCredentials []string `yaml:"required_credentials"`
}

type catalogFile struct {
	Tools []toolRecordConfig `yaml:"tools"`
}

// stubHandle declares interface compatibility for tools whose invocation
// surface lives outside this build. Invoking one returns an informative
// message instead of failing.
type stubHandle struct {
	name string
}

func (h stubHandle) Invoke(ctx context.Context, input string) (string, error) {
	return fmt.Sprintf("tool '%s' is declared but not invocable in this build", h.name), nil
}

// NewStubHandle creates a declaration-only handle for a named tool
func NewStubHandle(name string) Handle {
	return stubHandle{name: name}
}

// LoadInto reads additional tool records from YAML files or directories and
// registers them into the catalog. Loaded records get stub handles; the
// catalog only needs their names and credential lists for selection.
func LoadInto(c *Catalog, paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to access catalog path %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return fmt.Errorf("failed to read catalog directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if entry.IsDir() {
					continue
				}
				ext := filepath.Ext(entry.Name())
				if ext != ".yaml" && ext != ".yml" {
					continue
				}
				if err := loadFile(c, filepath.Join(path, entry.Name())); err != nil {
					return err
				}
			}
			continue
		}

		if err := loadFile(c, path); err != nil {
			return err
		}
	}
	return nil
}

func loadFile(c *Catalog, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	for _, cfg := range file.Tools {
		if cfg.Name == "" {
			return fmt.Errorf("catalog file %s contains a tool without a name", path)
		}
		record := ToolRecord{
			Name:                cfg.Name,
			Description:         cfg.Description,
			RequiredCredentials: cfg.RequiredCredentials,
			Handle:              NewStubHandle(cfg.Name),
		}
		if err := c.Register(record); err != nil {
			return fmt.Errorf("catalog file %s: %w", path, err)
		}
	}
	return nil
}
