package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime handles and collider configuration.
// Body and Shape stay nil until the physics system syncs the entity into
// the space; size fields describe the collider to build. Radius > 0 means
// circle, otherwise Width x Height box.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape

	Width      float64
	Height     float64
	Radius     float64
	Mass       float64
	Friction   float64
	Elasticity float64
	Static     bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
