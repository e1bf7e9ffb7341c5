// Package profiles manages named scoring profiles stored in
// .ecorank/profiles.toml. A profile bundles aggregation weights, a
// reference lifespan, and the metrics a product must rate Excellent on,
// so recurring assessments can be replayed by name instead of by flag.
package profiles

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"ecorank/internal/config"
	"ecorank/internal/errors"
	"ecorank/internal/recommend"
	"ecorank/internal/scoring"
)

// FileName is the profiles file inside the .ecorank dotdir.
const FileName = "profiles.toml"

// Version is the supported profiles schema version
const Version = 1

// Profile is one named scoring configuration.
//
// The three weights form a set: leaving all of them at zero keeps the
// caller's weights, setting any of them replaces all three. A zero
// ReferenceLifespan likewise keeps the caller's value.
type Profile struct {
	// Name is the unique profile identifier used on the CLI and API
	Name string `toml:"name"`

	// Description is an optional human-readable description
	Description string `toml:"description,omitempty"`

	// Weights for the three sub-scores when aggregating the total
	WeightHazardousSubstances float64 `toml:"weight_hazardous_substances,omitempty"`
	WeightCircularity         float64 `toml:"weight_circularity,omitempty"`
	WeightCertification       float64 `toml:"weight_certification,omitempty"`

	// ReferenceLifespan is the expected-lifespan ceiling in years
	ReferenceLifespan float64 `toml:"reference_lifespan,omitempty"`

	// Require lists metric IDs a product must rate Excellent on
	Require []string `toml:"require,omitempty"`
}

// File represents the root structure of profiles.toml
type File struct {
	// Version is the schema version
	Version int `toml:"version"`

	// Profiles is the list of named profiles
	Profiles []Profile `toml:"profile"`
}

// Validate checks that the profile can be applied.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New(errors.ProfileInvalid, "profile name must not be empty")
	}
	weights := map[string]float64{
		"weight_hazardous_substances": p.WeightHazardousSubstances,
		"weight_circularity":          p.WeightCircularity,
		"weight_certification":        p.WeightCertification,
	}
	for field, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return errors.New(errors.WeightInvalid,
				fmt.Sprintf("profile %q: %s must be a finite number >= 0", p.Name, field))
		}
	}
	if p.ReferenceLifespan < 0 || math.IsNaN(p.ReferenceLifespan) || math.IsInf(p.ReferenceLifespan, 0) {
		return errors.New(errors.ProfileInvalid,
			fmt.Sprintf("profile %q: reference_lifespan must be a non-negative number of years", p.Name))
	}
	for _, id := range p.Require {
		if !recommend.IsMetric(id) {
			return errors.New(errors.MetricInvalid,
				fmt.Sprintf("profile %q requires unknown metric %q", p.Name, id)).
				WithHint("known metrics are hazardous_substances, circularity, and certification")
		}
	}
	return nil
}

// Apply merges the profile over base options. Unset fields keep the
// base value; see the Profile doc for what counts as unset.
func (p *Profile) Apply(base scoring.Options) scoring.Options {
	opts := base
	weights := scoring.Weights{
		HazardousSubstances: p.WeightHazardousSubstances,
		Circularity:         p.WeightCircularity,
		Certification:       p.WeightCertification,
	}
	if !weights.IsZero() {
		opts.Weights = weights
	}
	if p.ReferenceLifespan > 0 {
		opts.ReferenceLifespan = p.ReferenceLifespan
	}
	return opts
}

// Get returns a profile by name.
func (f *File) Get(name string) (*Profile, error) {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			return &f.Profiles[i], nil
		}
	}
	return nil, errors.New(errors.ProfileNotFound, fmt.Sprintf("profile %q not found", name))
}

// Add appends a profile after validating it and checking for duplicates.
func (f *File) Add(p Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, existing := range f.Profiles {
		if existing.Name == p.Name {
			return errors.New(errors.ProfileInvalid, fmt.Sprintf("profile %q already exists", p.Name))
		}
	}
	f.Profiles = append(f.Profiles, p)
	return nil
}

// Remove deletes a profile by name.
func (f *File) Remove(name string) error {
	for i := range f.Profiles {
		if f.Profiles[i].Name == name {
			f.Profiles = append(f.Profiles[:i], f.Profiles[i+1:]...)
			return nil
		}
	}
	return errors.New(errors.ProfileNotFound, fmt.Sprintf("profile %q not found", name))
}

// Names returns the profile names in sorted order.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for _, p := range f.Profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every profile and rejects duplicate names.
func (f *File) Validate() error {
	if f.Version != Version {
		return errors.New(errors.ProfileInvalid, "unsupported profiles schema version")
	}
	seen := make(map[string]bool, len(f.Profiles))
	for i := range f.Profiles {
		if err := f.Profiles[i].Validate(); err != nil {
			return err
		}
		if seen[f.Profiles[i].Name] {
			return errors.New(errors.ProfileInvalid,
				fmt.Sprintf("profile %q declared twice", f.Profiles[i].Name))
		}
		seen[f.Profiles[i].Name] = true
	}
	return nil
}

// Load reads <baseDir>/.ecorank/profiles.toml. A missing file yields an
// empty set. Load only parses; call Validate before applying a profile.
func Load(baseDir string) (*File, error) {
	path := filepath.Join(baseDir, config.Dir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &File{Version: Version}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ProfileInvalid, "read "+FileName, err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(errors.ProfileInvalid, "parse "+FileName, err)
	}
	if f.Version < 1 {
		f.Version = Version
	}
	return &f, nil
}

// Save writes the profiles to <baseDir>/.ecorank/profiles.toml.
// The dotdir must already exist; 'ecorank init' creates it.
func (f *File) Save(baseDir string) error {
	data, err := toml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", FileName, err)
	}

	path := filepath.Join(baseDir, config.Dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", FileName, err)
	}
	return nil
}

// CreateStarterFile writes an example profiles.toml unless one already
// exists.
func CreateStarterFile(baseDir string) error {
	path := filepath.Join(baseDir, config.Dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	starter := &File{
		Version: Version,
		Profiles: []Profile{
			{
				Name:                      "balanced",
				Description:               "Default weighting across all three metrics",
				WeightHazardousSubstances: 0.4,
				WeightCircularity:         0.4,
				WeightCertification:       0.2,
				ReferenceLifespan:         scoring.DefaultReferenceLifespan,
			},
			{
				Name:        "strict",
				Description: "Only products rated Excellent on every metric",
				Require: []string{
					recommend.MetricHazardousSubstances,
					recommend.MetricCircularity,
					recommend.MetricCertification,
				},
			},
		},
	}
	return starter.Save(baseDir)
}
