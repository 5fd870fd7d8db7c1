package component

import "image/color"

type ShapeKind int

const (
	ShapeRectangle ShapeKind = iota
	ShapeCircle
)

// Shape tags a plain rigid body placed by the spawn tool.
type Shape struct {
	Kind ShapeKind
	Fill color.NRGBA
}

var ShapeComponent = NewComponent[Shape]()
