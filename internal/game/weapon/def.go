package weapon

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// MountOffset is the fixed offset at which a weapon's presentation is
// attached to its carrier.
type MountOffset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Def defines the static properties of a weapon type loaded from YAML.
type Def struct {
	Type            string      `yaml:"type"`
	Name            string      `yaml:"name"`
	Magazine        int         `yaml:"magazine"`         // rounds granted on acquisition and per reload
	MaxRounds       int         `yaml:"max_rounds"`       // cap when merging ammo from duplicate pickups
	ReloadSeconds   float64     `yaml:"reload_seconds"`   // time a reload takes
	CooldownSeconds float64     `yaml:"cooldown_seconds"` // minimum time between shots
	MountOffset     MountOffset `yaml:"mount_offset"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid and Type is known.
func (d *Def) Validate() error {
	var errs []error
	if _, err := ParseType(d.Type); err != nil {
		errs = append(errs, err)
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if d.Magazine <= 0 {
		errs = append(errs, errors.New("Magazine must be > 0"))
	}
	if d.MaxRounds < d.Magazine {
		errs = append(errs, errors.New("MaxRounds must be >= Magazine"))
	}
	if d.ReloadSeconds < 0 {
		errs = append(errs, errors.New("ReloadSeconds must not be negative"))
	}
	if d.CooldownSeconds < 0 {
		errs = append(errs, errors.New("CooldownSeconds must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon definition validation failed: %v", errs)
	}
	return nil
}

// LoadDefs reads all *.yaml files from dir, parses each as a Def, validates
// it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Defs or the first encountered error.
func LoadDefs(dir string) ([]*Def, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadDefs: cannot read directory %q: %w", dir, err)
	}

	var defs []*Def
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot read file %q: %w", path, err)
		}
		var d Def
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("LoadDefs: cannot parse file %q: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("LoadDefs: invalid weapon in %q: %w", path, err)
		}
		defs = append(defs, &d)
	}
	return defs, nil
}

// DefaultDefs returns the compiled-in definition set. It backs tests and
// deployments that ship no content directory.
//
// Postcondition: every returned Def passes Validate, and every known Type
// appears exactly once.
func DefaultDefs() []*Def {
	return []*Def{
		{
			Type:            string(TypeBlaster),
			Name:            "Blaster",
			Magazine:        20,
			MaxRounds:       100,
			ReloadSeconds:   1.2,
			CooldownSeconds: 0.6,
			MountOffset:     MountOffset{X: 0.25, Y: 1.1, Z: 0.4},
		},
		{
			Type:            string(TypeShotgun),
			Name:            "Shotgun",
			Magazine:        6,
			MaxRounds:       48,
			ReloadSeconds:   2.2,
			CooldownSeconds: 0.9,
			MountOffset:     MountOffset{X: 0.3, Y: 1.15, Z: 0.5},
		},
		{
			Type:            string(TypeAssaultRifle),
			Name:            "Assault Rifle",
			Magazine:        30,
			MaxRounds:       180,
			ReloadSeconds:   1.8,
			CooldownSeconds: 0.12,
			MountOffset:     MountOffset{X: 0.3, Y: 1.15, Z: 0.55},
		},
	}
}
