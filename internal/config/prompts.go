package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// PromptColumn is one column of the welcome view. Only items of selectable
// columns can be copied into the input field.
type PromptColumn struct {
	Title      string   `yaml:"title"`
	Selectable bool     `yaml:"selectable"`
	Items      []string `yaml:"items"`
}

// PromptCatalog is the set of columns shown before the first message
type PromptCatalog struct {
	Columns []PromptColumn `yaml:"columns"`
}

// DefaultPromptCatalog returns the built-in welcome columns
func DefaultPromptCatalog() PromptCatalog {
	return PromptCatalog{
		Columns: []PromptColumn{
			{
				Title:      "Examples",
				Selectable: true,
				Items: []string{
					"What is the purpose of human life? →",
					"Who is Narada Muni? →",
					"Explain the story of Dhruva Maharaja →",
				},
			},
			{
				Title: "Capabilities",
				Items: []string{
					"Answers from the purports of the Srimad Bhagavatam",
					"Cites the verses it draws on",
					"Understands follow-up phrasing",
				},
			},
			{
				Title: "Limitations",
				Items: []string{
					"Only knows the indexed texts",
					"May occasionally misquote a reference",
					"Does not remember earlier questions",
				},
			},
		},
	}
}

// SelectableItems returns the items of every selectable column in display order
func (c PromptCatalog) SelectableItems() []string {
	var items []string
	for _, col := range c.Columns {
		if col.Selectable {
			items = append(items, col.Items...)
		}
	}
	return items
}

// GetPromptsPath returns the path to the prompt catalog file
func GetPromptsPath(cfg Config) (string, error) {
	if cfg.PromptsFile != "" {
		return cfg.PromptsFile, nil
	}
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "prompts.yaml"), nil
}

// LoadPrompts reads the catalog at path. A missing file yields the defaults.
func LoadPrompts(path string) (PromptCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPromptCatalog(), nil
		}
		return PromptCatalog{}, fmt.Errorf("failed to read prompts: %w", err)
	}

	var catalog PromptCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return PromptCatalog{}, fmt.Errorf("failed to parse prompts: %w", err)
	}
	if err := ValidatePrompts(catalog); err != nil {
		return PromptCatalog{}, err
	}

	return catalog, nil
}

// SavePrompts writes catalog to path, creating the parent directory
func SavePrompts(path string, catalog PromptCatalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create prompts directory: %w", err)
	}

	data, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal prompts: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// ValidatePrompts rejects columns without a title and blank items
func ValidatePrompts(catalog PromptCatalog) error {
	for i, col := range catalog.Columns {
		if strings.TrimSpace(col.Title) == "" {
			return fmt.Errorf("prompt column %d has no title", i+1)
		}
		for j, item := range col.Items {
			if strings.TrimSpace(item) == "" {
				return fmt.Errorf("prompt column %q item %d is empty", col.Title, j+1)
			}
		}
	}
	return nil
}
