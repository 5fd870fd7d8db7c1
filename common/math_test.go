package common

import "testing"

func TestSnap(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		grid float64
		want float64
	}{
		{"rounds_up", 157, 20, 160},
		{"rounds_down", 243, 20, 240},
		{"midpoint_rounds_up", 150, 20, 160},
		{"exact", 240, 20, 240},
		{"negative", -37, 20, -40},
		{"zero_grid_passthrough", 157, 0, 157},
		{"negative_grid_passthrough", 157, -5, 157},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Snap(c.v, c.grid); got != c.want {
				t.Fatalf("Snap(%v, %v) = %v, want %v", c.v, c.grid, got, c.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 3); got != 3 {
		t.Fatalf("Clamp above = %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Fatalf("Clamp below = %v", got)
	}
	if got := Clamp(2, 0, 3); got != 2 {
		t.Fatalf("Clamp inside = %v", got)
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0.5); got != 5 {
		t.Fatalf("Lerp midpoint = %v", got)
	}
	if got := Lerp(3, 3, 0.9); got != 3 {
		t.Fatalf("Lerp equal endpoints = %v", got)
	}
}

func TestUnitsToTicks(t *testing.T) {
	cases := []struct {
		name  string
		units float64
		want  int
	}{
		{"one_unit", 1, TicksPerUnit},
		{"five_units", 5, 5 * TicksPerUnit},
		{"fraction_floors", 1.4, 8},
		{"tiny_clamps_to_one", 0.01, 1},
		{"zero_clamps_to_one", 0, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := UnitsToTicks(c.units); got != c.want {
				t.Fatalf("UnitsToTicks(%v) = %d, want %d", c.units, got, c.want)
			}
		})
	}
}
