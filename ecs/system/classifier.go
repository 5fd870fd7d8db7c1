package system

import (
	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

type Tool int

const (
	ToolSpawn Tool = iota
	ToolErase
	ToolGrab
)

// ToolState is the toolbar's current selection, passed into the
// classifier explicitly so the gesture state machine stays testable.
type ToolState struct {
	Tool  Tool
	Shape component.ShapeKind
	Size  float64
	Snap  bool
}

// HitResult is the outcome of hit-testing a pointer position against the
// physics space.
type HitResult struct {
	Entity ecs.Entity
	Weapon bool
	OK     bool
}

type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionDetonate
	ActionSpawnShape
	ActionErase
	ActionGrabStart
	ActionGrabEnd
	ActionAreaBlast
	ActionSpawnWeapon
)

// Action is one decided outcome of a pointer or keyboard gesture.
type Action struct {
	Kind   ActionKind
	Pos    cp.Vector
	Target ecs.Entity
	Weapon component.WeaponType
}

// DragSession tracks an in-progress weapon drag from the toolbar onto the
// canvas. At most one session exists at a time.
type DragSession struct {
	Type component.WeaponType
	Pos  cp.Vector
}

// Classifier turns raw pointer events into actions based on the selected
// tool, hit-testing, and tap timing. It holds no world or engine state,
// only the gesture machine.
type Classifier struct {
	Tools *ToolState

	width          float64
	height         float64
	topInset       float64
	doubleTapTicks int

	lastUpTick int
	hasLastUp  bool
	drag       *DragSession
}

func NewClassifier(tools *ToolState, width, height float64, doubleTapTicks int) *Classifier {
	return &Classifier{
		Tools:          tools,
		width:          width,
		height:         height,
		doubleTapTicks: doubleTapTicks,
	}
}

// SetTopInset excludes a strip at the top of the window (the toolbar)
// from the canvas bounds used for weapon drops.
func (c *Classifier) SetTopInset(px float64) {
	c.topInset = px
}

// Drag returns the active drag session, or nil.
func (c *Classifier) Drag() *DragSession {
	return c.drag
}

// PointerDown decides the action for a press on the canvas.
//
// A hit weapon detonates unless the grab tool is selected; this takes
// priority over spawn and erase. Otherwise the selected tool decides.
func (c *Classifier) PointerDown(tick int, pos cp.Vector, hit HitResult) []Action {
	if hit.OK && hit.Weapon && c.Tools.Tool != ToolGrab {
		return []Action{{Kind: ActionDetonate, Target: hit.Entity, Pos: pos}}
	}
	switch c.Tools.Tool {
	case ToolSpawn:
		return []Action{{Kind: ActionSpawnShape, Pos: pos}}
	case ToolErase:
		return []Action{{Kind: ActionErase, Pos: pos}}
	case ToolGrab:
		if hit.OK {
			return []Action{{Kind: ActionGrabStart, Target: hit.Entity, Pos: pos}}
		}
	}
	return nil
}

// PointerUp decides the actions for a release.
//
// Releasing an active weapon drag drops the weapon if the release point
// is inside canvas bounds and silently discards it otherwise; drag
// releases do not count as canvas taps. A plain release within the
// double-tap window of the previous release triggers a weak area blast
// at this release point, independent of tool or any direct-hit
// detonation on the down edge.
func (c *Classifier) PointerUp(tick int, pos cp.Vector) []Action {
	if c.drag != nil {
		drag := c.drag
		c.drag = nil
		if c.InBounds(pos) {
			return []Action{{Kind: ActionSpawnWeapon, Pos: pos, Weapon: drag.Type}}
		}
		return nil
	}

	actions := []Action{{Kind: ActionGrabEnd}}
	if c.hasLastUp && tick-c.lastUpTick < c.doubleTapTicks {
		actions = append(actions, Action{Kind: ActionAreaBlast, Pos: pos})
	}
	c.lastUpTick = tick
	c.hasLastUp = true
	return actions
}

// DragStart opens a weapon drag session. A second start while one is
// active is ignored, preserving the single-session invariant.
func (c *Classifier) DragStart(wtype component.WeaponType, pos cp.Vector) {
	if c.drag != nil {
		return
	}
	c.drag = &DragSession{Type: wtype, Pos: pos}
}

// DragMove repositions the drag ghost.
func (c *Classifier) DragMove(pos cp.Vector) {
	if c.drag != nil {
		c.drag.Pos = pos
	}
}

// KeyboardSpawn is the keyboard affordance: activating a weapon control
// without a pointer drops that weapon at the canvas center.
func (c *Classifier) KeyboardSpawn(wtype component.WeaponType) Action {
	center := cp.Vector{X: c.width / 2, Y: c.topInset + (c.height-c.topInset)/2}
	return Action{Kind: ActionSpawnWeapon, Pos: center, Weapon: wtype}
}

// InBounds reports whether a point is on the canvas (below the toolbar
// inset and inside the window).
func (c *Classifier) InBounds(pos cp.Vector) bool {
	return pos.X >= 0 && pos.X <= c.width && pos.Y >= c.topInset && pos.Y <= c.height
}
