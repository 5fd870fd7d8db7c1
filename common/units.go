package common

// The sandbox runs at a fixed 60 updates per second. Gameplay durations
// (fragment lifetimes, the sweep interval, the double-tap window) are
// tuned in coarse "units" of 100ms so the prefab numbers stay small.
const (
	TPS          = 60
	TicksPerUnit = TPS / 10
)

// UnitsToTicks converts a duration in tuning units to update ticks.
func UnitsToTicks(units float64) int {
	t := int(units * TicksPerUnit)
	if t < 1 {
		t = 1
	}
	return t
}
