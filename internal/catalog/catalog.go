// Package catalog loads primitive descriptors from a YAML catalog file, so
// tooling can introspect types that are not compiled into the binary.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/headless/internal/logic"
	"github.com/alexisbeaulieu97/headless/internal/primitive"
	headlesserrors "github.com/alexisbeaulieu97/headless/pkg/errors"
)

// Entry is one primitive descriptor as written in the catalog file.
type Entry struct {
	Type        string   `yaml:"type"`
	Role        string   `yaml:"role"`
	Description string   `yaml:"description"`
	Events      []string `yaml:"events"`
	Elements    []string `yaml:"elements"`
}

// Catalog is a parsed, validated catalog file.
type Catalog struct {
	Version    string  `yaml:"version"`
	Primitives []Entry `yaml:"primitives"`
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, headlesserrors.NewCatalogError(path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates catalog bytes. Unknown fields are rejected so
// typos surface instead of silently dropping attributes. The path is used
// for error reporting only.
func Parse(data []byte, path string) (*Catalog, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var c Catalog
	if err := decoder.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, headlesserrors.NewCatalogError(path, fmt.Errorf("catalog file is empty"))
		}
		return nil, headlesserrors.NewCatalogError(path, err)
	}

	if len(c.Primitives) == 0 {
		return nil, headlesserrors.NewCatalogError(path, fmt.Errorf("catalog declares no primitives"))
	}

	seen := make(map[string]struct{}, len(c.Primitives))
	for idx, entry := range c.Primitives {
		if err := entry.descriptor().Validate(); err != nil {
			return nil, headlesserrors.NewCatalogError(path,
				fmt.Errorf("primitive %d: %w", idx, err))
		}
		if _, exists := seen[entry.Type]; exists {
			return nil, headlesserrors.NewCatalogError(path,
				fmt.Errorf("primitive type %q declared more than once", entry.Type))
		}
		seen[entry.Type] = struct{}{}
	}

	return &c, nil
}

// Descriptors converts the catalog entries into primitive descriptors.
func (c *Catalog) Descriptors() []primitive.Descriptor {
	descriptors := make([]primitive.Descriptor, 0, len(c.Primitives))
	for _, entry := range c.Primitives {
		descriptors = append(descriptors, entry.descriptor())
	}
	return descriptors
}

func (e Entry) descriptor() primitive.Descriptor {
	events := make([]logic.EventName, 0, len(e.Events))
	for _, event := range e.Events {
		events = append(events, logic.EventName(event))
	}
	elements := make([]logic.ElementName, 0, len(e.Elements))
	for _, element := range e.Elements {
		elements = append(elements, logic.ElementName(element))
	}
	return primitive.Descriptor{
		Type:        e.Type,
		Role:        e.Role,
		Description: e.Description,
		Events:      events,
		Elements:    elements,
	}
}
