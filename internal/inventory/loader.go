package inventory

import (
	"os"

	"gopkg.in/yaml.v3"

	"inventory-api/internal/model"
)

// Load reads and parses the inventory file at path.
// Every failure is returned as a *ConfigurationError naming the path.
func Load(path string) (*model.InventoryDocument, error) {
	if path == "" {
		return nil, &ConfigurationError{Reason: "inventory file path is required"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ConfigurationError{Path: path, Reason: "inventory file not found", Err: err}
		}
		return nil, &ConfigurationError{Path: path, Reason: "failed to read inventory file", Err: err}
	}

	var doc model.InventoryDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ConfigurationError{Path: path, Reason: "failed to parse inventory file", Err: err}
	}

	if reason := checkShape(&doc); reason != "" {
		return nil, &ConfigurationError{Path: path, Reason: reason}
	}

	return &doc, nil
}

// LoadIndex loads the inventory file at path and builds its index.
func LoadIndex(path string) (*Index, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}

	idx, err := Build(doc)
	if err != nil {
		if cfgErr, ok := err.(*ConfigurationError); ok {
			cfgErr.Path = path
		}
		return nil, err
	}
	idx.source = path

	return idx, nil
}

// checkShape returns a non-empty reason if doc lacks the all.children mapping.
func checkShape(doc *model.InventoryDocument) string {
	switch {
	case doc == nil:
		return "inventory document is empty"
	case doc.All == nil:
		return "missing 'all' section"
	case doc.All.Children == nil:
		return "missing 'all.children' section"
	}
	return ""
}
