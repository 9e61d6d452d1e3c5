package pkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"gopkg.in/yaml.v3"
)

// LoadContent reads exercise definitions from a .json, .yaml or .yml file.
// An empty path returns the built-in definitions.
func LoadContent(path string) (*models.Content, error) {
	if path == "" {
		return models.DefaultContent(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read content file: %w", err)
	}

	var content models.Content
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &content)
	case ".json":
		err = json.Unmarshal(data, &content)
	default:
		return nil, fmt.Errorf("unsupported content file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse content file %s: %w", path, err)
	}
	return &content, nil
}
