package component

// Lifetime destroys an entity after the given number of update ticks.
// Fragments get a randomized lifetime so TNT debris always clears itself
// even with no further user action.
type Lifetime struct {
	Ticks int
}

var LifetimeComponent = NewComponent[Lifetime]()
