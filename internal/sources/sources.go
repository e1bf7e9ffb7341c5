// Package sources maintains the catalog feed registry stored in
// .ecorank/sources.toml. Each source names one product feed on disk;
// registered feeds are concatenated into a single catalog at load time,
// letting several vendor exports feed one assessment.
package sources

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"ecorank/internal/config"
	"ecorank/internal/errors"
)

// FileName is the registry file inside the .ecorank dotdir.
const FileName = "sources.toml"

// Version is the supported registry schema version
const Version = 1

// Registry represents the feed registry stored in sources.toml
type Registry struct {
	// Version is the schema version
	Version int `toml:"version"`

	// UpdatedAt is when the registry was last modified
	UpdatedAt time.Time `toml:"updated_at"`

	// Sources is the list of registered feeds
	Sources []Source `toml:"sources"`
}

// Source represents one registered catalog feed
type Source struct {
	// UID is the immutable UUID for this feed (never changes)
	UID string `toml:"uid"`

	// Name is the mutable human-friendly alias
	Name string `toml:"name"`

	// Path is the filesystem path to the feed, a JSON array of
	// products, optionally gzip-compressed
	Path string `toml:"path"`

	// Tags are optional labels for categorization
	Tags []string `toml:"tags,omitempty"`

	// AddedAt is when the feed was registered
	AddedAt time.Time `toml:"added_at"`
}

// NewRegistry creates an empty feed registry
func NewRegistry() *Registry {
	return &Registry{
		Version:   Version,
		UpdatedAt: time.Now().UTC(),
		Sources:   []Source{},
	}
}

// Add registers a feed
func (r *Registry) Add(name, path string, tags []string) (*Source, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.SourceInvalid, "source name must not be empty")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New(errors.SourceInvalid, "source path must not be empty")
	}
	for _, s := range r.Sources {
		if s.Name == name {
			return nil, errors.New(errors.SourceInvalid, fmt.Sprintf("source with name %q already exists", name))
		}
		if s.Path == path {
			return nil, errors.New(errors.SourceInvalid, fmt.Sprintf("feed at path %q already registered (as %q)", path, s.Name))
		}
	}

	source := Source{
		UID:     uuid.New().String(),
		Name:    name,
		Path:    path,
		Tags:    tags,
		AddedAt: time.Now().UTC(),
	}

	r.Sources = append(r.Sources, source)
	r.UpdatedAt = time.Now().UTC()

	return &source, nil
}

// Remove unregisters a feed by name
func (r *Registry) Remove(name string) error {
	for i, s := range r.Sources {
		if s.Name == name {
			r.Sources = append(r.Sources[:i], r.Sources[i+1:]...)
			r.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errors.New(errors.SourceNotFound, fmt.Sprintf("source %q not found", name))
}

// Rename changes the alias of a feed
// The UID remains unchanged
func (r *Registry) Rename(oldName, newName string) error {
	for _, s := range r.Sources {
		if s.Name == newName {
			return errors.New(errors.SourceInvalid, fmt.Sprintf("source with name %q already exists", newName))
		}
	}

	for i, s := range r.Sources {
		if s.Name == oldName {
			r.Sources[i].Name = newName
			r.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return errors.New(errors.SourceNotFound, fmt.Sprintf("source %q not found", oldName))
}

// Get returns a feed by name
func (r *Registry) Get(name string) *Source {
	for i := range r.Sources {
		if r.Sources[i].Name == name {
			return &r.Sources[i]
		}
	}
	return nil
}

// GetByUID returns a feed by UID
func (r *Registry) GetByUID(uid string) *Source {
	for i := range r.Sources {
		if r.Sources[i].UID == uid {
			return &r.Sources[i]
		}
	}
	return nil
}

// Paths returns the feed paths in registration order, for loading.
func (r *Registry) Paths() []string {
	paths := make([]string, 0, len(r.Sources))
	for _, s := range r.Sources {
		paths = append(paths, s.Path)
	}
	return paths
}

// Validate checks the registry for structural problems.
func (r *Registry) Validate() error {
	if r.Version != Version {
		return errors.New(errors.SourceInvalid, "unsupported sources schema version")
	}
	names := make(map[string]bool, len(r.Sources))
	for _, s := range r.Sources {
		if strings.TrimSpace(s.Name) == "" {
			return errors.New(errors.SourceInvalid, fmt.Sprintf("source %q has no name", s.UID))
		}
		if strings.TrimSpace(s.Path) == "" {
			return errors.New(errors.SourceInvalid, fmt.Sprintf("source %q has no path", s.Name))
		}
		if names[s.Name] {
			return errors.New(errors.SourceInvalid, fmt.Sprintf("source %q registered twice", s.Name))
		}
		names[s.Name] = true
	}
	return nil
}

// Load reads <baseDir>/.ecorank/sources.toml. A missing file yields an
// empty registry, in which case callers fall back to the configured
// catalog path.
func Load(baseDir string) (*Registry, error) {
	path := filepath.Join(baseDir, config.Dir, FileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewRegistry(), nil
	}

	var registry Registry
	if _, err := toml.DecodeFile(path, &registry); err != nil {
		return nil, errors.Wrap(errors.SourceInvalid, "parse "+FileName, err)
	}
	if registry.Version < 1 {
		registry.Version = Version
	}

	return &registry, nil
}

// Save writes the registry to <baseDir>/.ecorank/sources.toml.
// The dotdir must already exist; 'ecorank init' creates it.
func (r *Registry) Save(baseDir string) error {
	path := filepath.Join(baseDir, config.Dir, FileName)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", FileName, err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(r); err != nil {
		return fmt.Errorf("encode %s: %w", FileName, err)
	}

	return nil
}
