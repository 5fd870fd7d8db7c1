package component

// Transform is an entity's world-space position and rotation, mirrored
// from the physics body after each step.
type Transform struct {
	X        float64
	Y        float64
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
