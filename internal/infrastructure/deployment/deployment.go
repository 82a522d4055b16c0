package deployment

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultName    = "search_web_tool"
	DefaultVersion = "1.0.0"
)

// Tool describes one tool exposed by the module
type Tool struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Descriptor is the deployment descriptor the orchestration framework ships
// with the tool module. JSON files parse as well since JSON is valid YAML.
type Descriptor struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	Tools       []Tool `yaml:"tools,omitempty"`
}

// Default returns the descriptor used when no file is deployed
func Default() *Descriptor {
	return &Descriptor{
		Name:        DefaultName,
		Version:     DefaultVersion,
		Description: "Search news and web results through the Serper API",
	}
}

// Load reads the descriptor at path. A missing file yields Default().
func Load(path string) (*Descriptor, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	descriptor := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), descriptor); err != nil {
		return nil, err
	}
	if descriptor.Name == "" {
		descriptor.Name = DefaultName
	}
	if descriptor.Version == "" {
		descriptor.Version = DefaultVersion
	}
	return descriptor, nil
}

// ToolDescription returns the configured description for a tool, or fallback
func (d *Descriptor) ToolDescription(name, fallback string) string {
	if d == nil {
		return fallback
	}
	for _, tool := range d.Tools {
		if tool.Name == name && tool.Description != "" {
			return tool.Description
		}
	}
	return fallback
}
