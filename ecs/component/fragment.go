package component

// Fragment marks the short-lived debris spawned by a TNT detonation.
type Fragment struct{}

var FragmentComponent = NewComponent[Fragment]()
