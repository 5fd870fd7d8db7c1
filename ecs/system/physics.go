package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

// Gravity is the downward acceleration in canvas pixels per second^2
// (screen coordinates, y grows down).
const Gravity = 900.0

const physicsStep = 1.0 / 60.0

// grabStiffness tunes how hard the grab joint pulls a body toward the
// pointer without teleporting it through stacks.
const grabMaxForce = 50000.0

// PhysicsSystem owns the Chipmunk space. It lazily creates a cp body for
// every entity carrying a PhysicsBody component, steps the simulation at
// a fixed rate, and mirrors body poses back into Transform components.
type PhysicsSystem struct {
	space  *cp.Space
	width  float64
	height float64

	bodies        map[ecs.Entity]*bodyInfo
	shapeToEntity map[*cp.Shape]ecs.Entity

	mouseBody  *cp.Body
	grabJoint  *cp.Constraint
	grabbed    ecs.Entity
	grabTarget cp.Vector

	log zerolog.Logger
}

type bodyInfo struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
}

// NewPhysicsSystem creates a space with a ground segment along the bottom
// of the canvas. The sides stay open so bodies can be blasted off-screen
// and picked up by the sweeper.
func NewPhysicsSystem(width, height float64, log zerolog.Logger) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{X: 0, Y: Gravity})
	space.SleepTimeThreshold = 0.5
	space.SetCollisionSlop(0.5)

	ground := cp.NewSegment(space.StaticBody, cp.Vector{X: -2000, Y: height}, cp.Vector{X: width + 2000, Y: height}, 2)
	ground.SetFriction(0.8)
	ground.SetElasticity(0.2)
	space.AddShape(ground)

	return &PhysicsSystem{
		space:         space,
		width:         width,
		height:        height,
		bodies:        make(map[ecs.Entity]*bodyInfo),
		shapeToEntity: make(map[*cp.Shape]ecs.Entity),
		mouseBody:     cp.NewKinematicBody(),
		log:           log.With().Str("system", "physics").Logger(),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	return ps.space
}

func (ps *PhysicsSystem) Width() float64 {
	return ps.width
}

func (ps *PhysicsSystem) Height() float64 {
	return ps.height
}

// Update syncs registry entities into the space, steps the simulation,
// and mirrors poses back.
func (ps *PhysicsSystem) Update(w *ecs.World) {
	ps.cleanup(w)
	ps.sync(w)
	ps.dragMouseBody()
	ps.space.Step(physicsStep)
	ps.syncTransforms(w)
}

// sync creates cp bodies for entities whose PhysicsBody has no runtime
// handle yet.
func (ps *PhysicsSystem) sync(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body != nil {
			return
		}
		if info, ok := ps.bodies[e]; ok {
			pb.Body = info.body
			pb.Shape = info.shape
			return
		}
		info := ps.createBody(pb, t)
		if info == nil {
			return
		}
		ps.bodies[e] = info
		ps.shapeToEntity[info.shape] = e
		pb.Body = info.body
		pb.Shape = info.shape
	})
}

func (ps *PhysicsSystem) createBody(pb *component.PhysicsBody, t *component.Transform) *bodyInfo {
	radius := pb.Radius
	width, height := pb.Width, pb.Height
	if radius <= 0 && (width <= 0 || height <= 0) {
		width, height = 32, 32
	}

	friction := pb.Friction
	if friction <= 0 {
		friction = 0.6
	}

	if pb.Static {
		var shape *cp.Shape
		if radius > 0 {
			shape = cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: t.X, Y: t.Y})
		} else {
			bb := cp.BB{L: t.X - width/2, B: t.Y - height/2, R: t.X + width/2, T: t.Y + height/2}
			shape = cp.NewBox2(ps.space.StaticBody, bb, 0)
		}
		shape.SetFriction(friction)
		shape.SetElasticity(pb.Elasticity)
		ps.space.AddShape(shape)
		return &bodyInfo{body: ps.space.StaticBody, shape: shape, static: true}
	}

	mass := pb.Mass
	if mass <= 0 {
		mass = 1
	}

	var moment float64
	if radius > 0 {
		moment = cp.MomentForCircle(mass, 0, radius, cp.Vector{})
	} else {
		moment = cp.MomentForBox(mass, width, height)
	}

	body := cp.NewBody(mass, moment)
	body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	body.SetAngle(t.Rotation)

	var shape *cp.Shape
	if radius > 0 {
		shape = cp.NewCircle(body, radius, cp.Vector{})
	} else {
		shape = cp.NewBox(body, width, height, 0)
	}
	shape.SetFriction(friction)
	shape.SetElasticity(pb.Elasticity)

	ps.space.AddBody(body)
	ps.space.AddShape(shape)
	return &bodyInfo{body: body, shape: shape}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w, component.PhysicsBodyComponent, component.TransformComponent, func(e ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
		if pb.Body == nil || pb.Static {
			return
		}
		pos := pb.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = pb.Body.Angle()
	})
}

// cleanup removes space bodies whose entity died since the last tick.
// Removing twice is a no-op: several paths (detonation, erase, sweep,
// fragment expiry, clear-all) can all kill the same entity.
func (ps *PhysicsSystem) cleanup(w *ecs.World) {
	for e, info := range ps.bodies {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.removeInfo(w, e, info)
	}
}

func (ps *PhysicsSystem) removeInfo(w *ecs.World, e ecs.Entity, info *bodyInfo) {
	if info == nil {
		return
	}
	if ps.grabbed == e {
		ps.EndGrab(w)
	}
	if info.shape != nil {
		ps.space.RemoveShape(info.shape)
		delete(ps.shapeToEntity, info.shape)
	}
	if info.body != nil && !info.static {
		ps.space.RemoveBody(info.body)
	}
	delete(ps.bodies, e)
}

// HitTest returns the entity whose shape contains or nearly touches the
// point, if any.
func (ps *PhysicsSystem) HitTest(pos cp.Vector) (ecs.Entity, bool) {
	info := ps.space.PointQueryNearest(pos, 2, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, false
	}
	e, ok := ps.shapeToEntity[info.Shape]
	return e, ok
}

// StartGrab attaches a pivot joint between the pointer's kinematic body
// and the entity's body. Only one grab may be active; starting a new one
// drops the previous joint first.
func (ps *PhysicsSystem) StartGrab(w *ecs.World, e ecs.Entity, pos cp.Vector) bool {
	ps.EndGrab(w)
	pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
	if !ok || pb.Body == nil || pb.Static {
		return false
	}
	ps.mouseBody.SetPosition(pos)
	ps.grabTarget = pos
	joint := cp.NewPivotJoint2(ps.mouseBody, pb.Body, cp.Vector{}, pb.Body.WorldToLocal(pos))
	joint.SetMaxForce(grabMaxForce)
	joint.SetErrorBias(math.Pow(1.0-0.15, 60.0))
	ps.space.AddConstraint(joint)
	ps.grabJoint = joint
	ps.grabbed = e
	_ = ecs.Add(w, e, component.GrabbedComponent, component.Grabbed{})
	return true
}

// MoveGrab retargets the active grab toward the pointer.
func (ps *PhysicsSystem) MoveGrab(pos cp.Vector) {
	ps.grabTarget = pos
}

// EndGrab releases the active grab joint, if any.
func (ps *PhysicsSystem) EndGrab(w *ecs.World) {
	if ps.grabJoint == nil {
		return
	}
	ps.space.RemoveConstraint(ps.grabJoint)
	ps.grabJoint = nil
	if w != nil {
		ecs.Remove(w, ps.grabbed, component.GrabbedComponent)
	}
	ps.grabbed = 0
}

// Grabbing reports whether a grab joint is active.
func (ps *PhysicsSystem) Grabbing() bool {
	return ps.grabJoint != nil
}

// dragMouseBody eases the kinematic pointer body toward the grab target
// so the held body follows without snapping.
func (ps *PhysicsSystem) dragMouseBody() {
	if ps.grabJoint == nil {
		return
	}
	cur := ps.mouseBody.Position()
	next := cur.Add(ps.grabTarget.Sub(cur).Mult(0.25))
	ps.mouseBody.SetVelocityVector(next.Sub(cur).Mult(1.0 / physicsStep))
	ps.mouseBody.SetPosition(next)
}
