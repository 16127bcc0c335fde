// Package project provides the project configuration model for rigconf:
// parsing section-structured project files into typed sections, validating
// project names against a path-safety policy, and discovering projects on
// disk.
package project

import (
	"fmt"

	"github.com/lc/rigconf/internal/value"
)

// Section is an immutable named group of typed key/value settings.
// Keys keep their file order; a key is unique within its section.
type Section struct {
	name string
	keys []string
	vals map[string]value.Value
}

// Name returns the normalized section identifier, e.g. "DeviceConfiguration".
func (s *Section) Name() string { return s.name }

// Get returns the typed value for key and whether it exists.
func (s *Section) Get(key string) (value.Value, bool) {
	v, ok := s.vals[key]
	return v, ok
}

// Keys returns the section's keys in file order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of keys in the section.
func (s *Section) Len() int { return len(s.keys) }

// Project is a fully parsed, immutable configuration bundle.
// A reload produces a new Project; existing ones are never mutated.
type Project struct {
	name     string
	loadID   string
	sections []*Section
	byName   map[string]*Section
}

// Name returns the project name.
func (p *Project) Name() string { return p.name }

// LoadID returns the unique identifier stamped when this snapshot was parsed.
func (p *Project) LoadID() string { return p.loadID }

// Sections returns the project's sections in declaration order.
func (p *Project) Sections() []*Section {
	out := make([]*Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// Section returns the section with the given identifier, or a
// SectionNotFoundError if the project never declared it.
func (p *Project) Section(name string) (*Section, error) {
	s, ok := p.byName[name]
	if !ok {
		return nil, &SectionNotFoundError{Project: p.name, Section: name}
	}
	return s, nil
}

// Lookup searches the sections in declaration order for key and returns its
// typed value. A key absent from every section yields a KeyNotFoundError.
func (p *Project) Lookup(key string) (value.Value, error) {
	for _, s := range p.sections {
		if v, ok := s.vals[key]; ok {
			return v, nil
		}
	}
	return value.Value{}, &KeyNotFoundError{Key: key}
}

// SectionNotFoundError reports an access to a section the loaded project
// never declared.
type SectionNotFoundError struct {
	Project string
	Section string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("section %q not declared by project %q", e.Section, e.Project)
}

// KeyNotFoundError reports a key lookup that matched no section.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q not found in configuration", e.Key)
}
