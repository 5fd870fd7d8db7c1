package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

// ToolbarHits lets the input system ask the UI layer whether a pointer
// press landed on the toolbar, and on which weapon button if any.
type ToolbarHits interface {
	Contains(x, y int) bool
	WeaponAt(x, y int) (component.WeaponType, bool)
}

// InputSystem polls Ebitengine for pointer and keyboard state each tick
// and feeds the classifier. Mouse and touch are unified into a single
// pointer; only the first concurrent touch is tracked.
type InputSystem struct {
	classifier *Classifier
	dispatcher *Dispatcher
	physics    *PhysicsSystem
	toolbar    ToolbarHits

	tick        int
	touchActive bool
	touchID     ebiten.TouchID
	touchIDs    []ebiten.TouchID
}

func NewInputSystem(classifier *Classifier, dispatcher *Dispatcher, physics *PhysicsSystem) *InputSystem {
	return &InputSystem{
		classifier: classifier,
		dispatcher: dispatcher,
		physics:    physics,
	}
}

// SetToolbar installs the UI hit-tester. Without one every press counts
// as a canvas press.
func (in *InputSystem) SetToolbar(t ToolbarHits) {
	in.toolbar = t
}

func (in *InputSystem) Update(w *ecs.World) {
	in.tick++

	mx, my := ebiten.CursorPosition()
	mpos := cp.Vector{X: float64(mx), Y: float64(my)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.pointerDown(w, mx, my, mpos)
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		in.pointerMove(mpos)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		in.pointerUp(w, mx, my, mpos)
	}

	in.touchIDs = inpututil.AppendJustPressedTouchIDs(in.touchIDs[:0])
	for _, id := range in.touchIDs {
		if in.touchActive {
			break
		}
		in.touchActive = true
		in.touchID = id
		tx, ty := ebiten.TouchPosition(id)
		in.pointerDown(w, tx, ty, cp.Vector{X: float64(tx), Y: float64(ty)})
	}
	if in.touchActive {
		if inpututil.IsTouchJustReleased(in.touchID) {
			tx, ty := inpututil.TouchPositionInPreviousTick(in.touchID)
			in.pointerUp(w, tx, ty, cp.Vector{X: float64(tx), Y: float64(ty)})
			in.touchActive = false
		} else {
			tx, ty := ebiten.TouchPosition(in.touchID)
			in.pointerMove(cp.Vector{X: float64(tx), Y: float64(ty)})
		}
	}

	in.keyboard(w)
}

func (in *InputSystem) pointerDown(w *ecs.World, x, y int, pos cp.Vector) {
	if in.toolbar != nil && in.toolbar.Contains(x, y) {
		if wt, ok := in.toolbar.WeaponAt(x, y); ok {
			in.classifier.DragStart(wt, pos)
		}
		return
	}
	hit := in.hitResult(w, pos)
	in.dispatcher.Apply(w, in.classifier.PointerDown(in.tick, pos, hit))
}

func (in *InputSystem) pointerMove(pos cp.Vector) {
	in.classifier.DragMove(pos)
	if in.physics.Grabbing() {
		in.physics.MoveGrab(pos)
	}
}

func (in *InputSystem) pointerUp(w *ecs.World, x, y int, pos cp.Vector) {
	// Releases on the toolbar with no drag in flight never reach the
	// canvas, so they don't arm the double-tap window.
	if in.toolbar != nil && in.toolbar.Contains(x, y) && in.classifier.Drag() == nil {
		in.physics.EndGrab(w)
		return
	}
	in.dispatcher.Apply(w, in.classifier.PointerUp(in.tick, pos))
}

func (in *InputSystem) hitResult(w *ecs.World, pos cp.Vector) HitResult {
	e, ok := in.physics.HitTest(pos)
	if !ok {
		return HitResult{}
	}
	return HitResult{
		Entity: e,
		Weapon: ecs.Has(w, e, component.WeaponComponent),
		OK:     true,
	}
}

func (in *InputSystem) keyboard(w *ecs.World) {
	// Ctrl chords belong to scene copy/paste, not to these bindings.
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		in.dispatcher.Apply(w, []Action{in.classifier.KeyboardSpawn(component.WeaponBomb)})
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		in.dispatcher.Apply(w, []Action{in.classifier.KeyboardSpawn(component.WeaponTNT)})
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		in.dispatcher.Apply(w, []Action{in.classifier.KeyboardSpawn(component.WeaponGrenade)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		ClearAll(w)
	}
}
