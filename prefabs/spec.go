package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/tbrandt/blastpad/ecs/component"
)

// WeaponSpec tunes one weapon type's detonation.
type WeaponSpec struct {
	Force     float64 `yaml:"force"`
	Radius    float64 `yaml:"radius"`
	Fragments int     `yaml:"fragments"`
}

// BlastSpec tunes the shared explosion model.
type BlastSpec struct {
	// TapForce is the weak area blast triggered by a double tap.
	TapForce      float64 `yaml:"tap_force"`
	DefaultRadius float64 `yaml:"default_radius"`
	// Spin bounds the random angular perturbation added per blast.
	Spin          float64 `yaml:"spin"`
	DistanceFloor float64 `yaml:"distance_floor"`
}

type FragmentSpec struct {
	TTLMinUnits float64 `yaml:"ttl_min_units"`
	TTLMaxUnits float64 `yaml:"ttl_max_units"`
	Jitter      float64 `yaml:"jitter"`
}

type SweepSpec struct {
	IntervalUnits float64 `yaml:"interval_units"`
	BelowMargin   float64 `yaml:"below_margin"`
	SideMargin    float64 `yaml:"side_margin"`
}

type SpawnSpec struct {
	DefaultSize float64 `yaml:"default_size"`
	Grid        float64 `yaml:"grid"`
}

type InputSpec struct {
	DoubleTapMS int `yaml:"double_tap_ms"`
}

// Tuning is the full sandbox tuning sheet loaded from weapons.yaml.
type Tuning struct {
	Weapons   map[component.WeaponType]WeaponSpec `yaml:"weapons"`
	Blast     BlastSpec                           `yaml:"blast"`
	Fragments FragmentSpec                        `yaml:"fragments"`
	Sweep     SweepSpec                           `yaml:"sweep"`
	Spawn     SpawnSpec                           `yaml:"spawn"`
	Input     InputSpec                           `yaml:"input"`
}

// Weapon returns the spec for a weapon type, falling back to the bomb
// numbers for unknown types.
func (t *Tuning) Weapon(wt component.WeaponType) WeaponSpec {
	if spec, ok := t.Weapons[wt]; ok {
		return spec
	}
	return t.Weapons[component.WeaponBomb]
}

// DefaultTuning mirrors the embedded weapons.yaml. Used when the prefab
// file is missing or malformed so the sandbox always starts.
func DefaultTuning() *Tuning {
	return &Tuning{
		Weapons: map[component.WeaponType]WeaponSpec{
			component.WeaponGrenade: {Force: 0.12, Radius: 100},
			component.WeaponBomb:    {Force: 0.09, Radius: 160},
			component.WeaponTNT:     {Force: 0.07, Radius: 300, Fragments: 12},
		},
		Blast:     BlastSpec{TapForce: 0.06, DefaultRadius: 160, Spin: 0.4, DistanceFloor: 1},
		Fragments: FragmentSpec{TTLMinUnits: 8, TTLMaxUnits: 14, Jitter: 30},
		Sweep:     SweepSpec{IntervalUnits: 5, BelowMargin: 200, SideMargin: 500},
		Spawn:     SpawnSpec{DefaultSize: 40, Grid: 20},
		Input:     InputSpec{DoubleTapMS: 300},
	}
}

// LoadTuning parses weapons.yaml, preferring the on-disk override.
func LoadTuning() (*Tuning, error) {
	data, err := Load("weapons.yaml")
	if err != nil {
		return nil, fmt.Errorf("prefabs: load weapons.yaml: %w", err)
	}
	tuning := DefaultTuning()
	if err := yaml.Unmarshal(data, tuning); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal weapons.yaml: %w", err)
	}
	return tuning, nil
}
