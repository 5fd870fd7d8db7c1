package component

// Grabbed marks the entity currently held by the pointer's grab joint.
// At most one entity carries it at a time.
type Grabbed struct{}

var GrabbedComponent = NewComponent[Grabbed]()
