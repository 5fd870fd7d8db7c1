package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tbrandt/blastpad/ecs/component"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadTuningMatchesEmbedded(t *testing.T) {
	tuning, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}

	cases := []struct {
		weapon        component.WeaponType
		force, radius float64
		fragments     int
	}{
		{component.WeaponGrenade, 0.12, 100, 0},
		{component.WeaponBomb, 0.09, 160, 0},
		{component.WeaponTNT, 0.07, 300, 12},
	}
	for _, c := range cases {
		spec := tuning.Weapon(c.weapon)
		if spec.Force != c.force || spec.Radius != c.radius || spec.Fragments != c.fragments {
			t.Fatalf("%s = %+v, want force %v radius %v fragments %d", c.weapon, spec, c.force, c.radius, c.fragments)
		}
	}

	if tuning.Blast.TapForce != 0.06 || tuning.Blast.DefaultRadius != 160 {
		t.Fatalf("blast tuning = %+v", tuning.Blast)
	}
	if tuning.Sweep.IntervalUnits != 5 || tuning.Sweep.BelowMargin != 200 || tuning.Sweep.SideMargin != 500 {
		t.Fatalf("sweep tuning = %+v", tuning.Sweep)
	}
	if tuning.Spawn.DefaultSize != 40 || tuning.Spawn.Grid != 20 {
		t.Fatalf("spawn tuning = %+v", tuning.Spawn)
	}
	if tuning.Fragments.TTLMinUnits != 8 || tuning.Fragments.TTLMaxUnits != 14 || tuning.Fragments.Jitter != 30 {
		t.Fatalf("fragment tuning = %+v", tuning.Fragments)
	}
	if tuning.Input.DoubleTapMS != 300 {
		t.Fatalf("input tuning = %+v", tuning.Input)
	}
}

func TestWeaponFallsBackToBomb(t *testing.T) {
	tuning := DefaultTuning()
	got := tuning.Weapon(component.WeaponType("laser"))
	want := tuning.Weapons[component.WeaponBomb]
	if got != want {
		t.Fatalf("unknown weapon = %+v, want bomb %+v", got, want)
	}
}

func TestOverrideDirWins(t *testing.T) {
	dir := t.TempDir()
	SetOverrideDir(dir)
	t.Cleanup(func() { SetOverrideDir("") })

	// No override file yet: fall through to the embedded copy.
	if _, err := Load("weapons.yaml"); err != nil {
		t.Fatalf("Load without override: %v", err)
	}

	writeFile(t, dir, "weapons.yaml", "weapons:\n  bomb: {force: 0.5, radius: 50}\n")
	tuning, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning with override: %v", err)
	}
	spec := tuning.Weapon(component.WeaponBomb)
	if spec.Force != 0.5 || spec.Radius != 50 {
		t.Fatalf("override ignored, bomb = %+v", spec)
	}
	// Untouched sections keep their defaults.
	if tuning.Blast.TapForce != 0.06 {
		t.Fatalf("partial override clobbered blast tuning: %+v", tuning.Blast)
	}
}
