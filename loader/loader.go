// Package loader imports composite predicate definitions from declarative
// YAML or JSON rule files, so whole legal-branch rule sets load without
// recompilation.
//
// Rule files list composites only. Primitive predicates carry arbitrary Go
// code and are registered through the predicate API before files are
// applied; a file entry with kind "primitive" is rejected.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/lexkit/lexengine/predicate"
)

// DefaultPatterns are the doublestar globs used when a caller does not
// choose their own rule-file patterns.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml", "**/*.json"}

// Document is one parsed rule file.
type Document struct {
	// Predicates are the composite definitions in file order.
	Predicates []Entry `yaml:"predicates" json:"predicates"`
}

// Entry is one composite predicate declaration.
type Entry struct {
	// Name is the predicate name to register.
	Name string `yaml:"name" json:"name"`

	// Kind is and, or, or not.
	Kind string `yaml:"kind" json:"kind"`

	// Children are the referenced predicate names.
	Children []string `yaml:"children" json:"children"`

	// Description documents what the predicate tests.
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Parse decodes a rule document. Format is "yaml" or "json".
func Parse(data []byte, format string) (*Document, error) {
	var doc Document
	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule document: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse rule document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rule document format %q", format)
	}
	return &doc, nil
}

// LoadFile parses a rule file, dispatching on its extension (.yaml, .yml,
// .json).
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Parse(data, "yaml")
	case ".json":
		return Parse(data, "json")
	default:
		return nil, fmt.Errorf("rule file %q: unsupported extension", path)
	}
}

// Apply registers every entry of doc into reg. Registration order follows
// file order; forward references are fine because the registry resolves
// children at Seal.
func (d *Document) Apply(reg *predicate.Registry) error {
	for _, entry := range d.Predicates {
		if err := entry.apply(reg); err != nil {
			return err
		}
	}
	return nil
}

func (e *Entry) apply(reg *predicate.Registry) error {
	kind := predicate.Kind(e.Kind)
	if kind == predicate.KindPrimitive {
		return fmt.Errorf("predicate %q: primitives carry Go code and must be registered through the API, not rule files", e.Name)
	}
	if !kind.Valid() {
		return fmt.Errorf("predicate %q: unknown kind %q", e.Name, e.Kind)
	}

	var opts []predicate.Option
	if e.Description != "" {
		opts = append(opts, predicate.WithDescription(e.Description))
	}
	return reg.RegisterComposite(e.Name, kind, e.Children, opts...)
}

// LoadDir applies every rule file under root matching the doublestar
// patterns (DefaultPatterns when nil) to reg, in sorted path order.
// It returns the paths loaded, relative to root.
func LoadDir(root string, patterns []string, reg *predicate.Registry) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid rule file pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				paths = append(paths, match)
			}
		}
	}
	sort.Strings(paths)

	for _, rel := range paths {
		doc, err := LoadFile(filepath.Join(root, rel))
		if err != nil {
			return nil, err
		}
		if err := doc.Apply(reg); err != nil {
			return nil, fmt.Errorf("rule file %q: %w", rel, err)
		}
	}
	return paths, nil
}
