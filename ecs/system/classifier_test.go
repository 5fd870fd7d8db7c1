package system

import (
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

const testDoubleTap = 18 // 300ms at 60 ticks per second

func newTestClassifier(tool Tool) (*Classifier, *ToolState) {
	tools := &ToolState{Tool: tool, Shape: component.ShapeRectangle, Size: 40}
	c := NewClassifier(tools, 1280, 720, testDoubleTap)
	return c, tools
}

func kinds(actions []Action) []ActionKind {
	out := make([]ActionKind, len(actions))
	for i, a := range actions {
		out[i] = a.Kind
	}
	return out
}

func hasKind(actions []Action, k ActionKind) bool {
	for _, a := range actions {
		if a.Kind == k {
			return true
		}
	}
	return false
}

func TestPointerDownByTool(t *testing.T) {
	w := ecs.NewWorld()
	target := w.CreateEntity()

	cases := []struct {
		name string
		tool Tool
		hit  HitResult
		want ActionKind
	}{
		{"spawn_on_empty", ToolSpawn, HitResult{}, ActionSpawnShape},
		{"spawn_on_plain_body", ToolSpawn, HitResult{Entity: target, OK: true}, ActionSpawnShape},
		{"erase_on_empty", ToolErase, HitResult{}, ActionErase},
		{"grab_on_body", ToolGrab, HitResult{Entity: target, OK: true}, ActionGrabStart},
		{"weapon_detonates_under_spawn", ToolSpawn, HitResult{Entity: target, Weapon: true, OK: true}, ActionDetonate},
		{"weapon_detonates_under_erase", ToolErase, HitResult{Entity: target, Weapon: true, OK: true}, ActionDetonate},
		{"weapon_grabs_under_grab", ToolGrab, HitResult{Entity: target, Weapon: true, OK: true}, ActionGrabStart},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl, _ := newTestClassifier(c.tool)
			actions := cl.PointerDown(10, cp.Vector{X: 300, Y: 300}, c.hit)
			if len(actions) != 1 || actions[0].Kind != c.want {
				t.Fatalf("got %v, want [%v]", kinds(actions), c.want)
			}
		})
	}
}

func TestGrabOnEmptyDoesNothing(t *testing.T) {
	cl, _ := newTestClassifier(ToolGrab)
	if actions := cl.PointerDown(10, cp.Vector{X: 300, Y: 300}, HitResult{}); len(actions) != 0 {
		t.Fatalf("grab on empty canvas produced %v", kinds(actions))
	}
}

func TestDoubleTapWindow(t *testing.T) {
	cases := []struct {
		name       string
		secondTick int
		wantBlast  bool
	}{
		{"inside_window", 100 + testDoubleTap - 1, true},
		{"exactly_at_window", 100 + testDoubleTap, false},
		{"well_outside", 100 + testDoubleTap*3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl, _ := newTestClassifier(ToolSpawn)
			pos := cp.Vector{X: 300, Y: 300}
			cl.PointerUp(100, pos)
			actions := cl.PointerUp(c.secondTick, pos)
			if got := hasKind(actions, ActionAreaBlast); got != c.wantBlast {
				t.Fatalf("second up at tick %d: blast = %v, want %v", c.secondTick, got, c.wantBlast)
			}
		})
	}
}

func TestTripleTapBlastsTwice(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	pos := cp.Vector{X: 300, Y: 300}
	cl.PointerUp(100, pos)
	blasts := 0
	if hasKind(cl.PointerUp(110, pos), ActionAreaBlast) {
		blasts++
	}
	if hasKind(cl.PointerUp(120, pos), ActionAreaBlast) {
		blasts++
	}
	if blasts != 2 {
		t.Fatalf("triple tap produced %d blasts, want 2", blasts)
	}
}

func TestFirstUpNeverBlasts(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	if actions := cl.PointerUp(0, cp.Vector{X: 300, Y: 300}); hasKind(actions, ActionAreaBlast) {
		t.Fatalf("first release must not blast")
	}
}

func TestDragDropInsideBounds(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	cl.DragStart(component.WeaponTNT, cp.Vector{X: 20, Y: 20})
	cl.DragMove(cp.Vector{X: 400, Y: 400})

	actions := cl.PointerUp(50, cp.Vector{X: 400, Y: 400})
	if len(actions) != 1 || actions[0].Kind != ActionSpawnWeapon {
		t.Fatalf("drop inside bounds got %v", kinds(actions))
	}
	if actions[0].Weapon != component.WeaponTNT {
		t.Fatalf("dropped weapon %q, want tnt", actions[0].Weapon)
	}
	if cl.Drag() != nil {
		t.Fatalf("drag session should end on release")
	}
}

func TestDragDropOutsideBoundsDiscards(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	cl.SetTopInset(48)
	cases := []struct {
		name string
		pos  cp.Vector
	}{
		{"left_of_canvas", cp.Vector{X: -10, Y: 300}},
		{"below_canvas", cp.Vector{X: 300, Y: 900}},
		{"over_toolbar", cp.Vector{X: 300, Y: 20}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cl.DragStart(component.WeaponBomb, cp.Vector{X: 20, Y: 20})
			if actions := cl.PointerUp(50, c.pos); hasKind(actions, ActionSpawnWeapon) {
				t.Fatalf("drop at %v should be discarded", c.pos)
			}
			if cl.Drag() != nil {
				t.Fatalf("discarded drag should still end the session")
			}
		})
	}
}

func TestSecondDragStartIgnored(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	cl.DragStart(component.WeaponBomb, cp.Vector{X: 20, Y: 20})
	cl.DragStart(component.WeaponGrenade, cp.Vector{X: 30, Y: 20})
	if got := cl.Drag().Type; got != component.WeaponBomb {
		t.Fatalf("second DragStart replaced the session: %q", got)
	}
}

func TestDragReleaseDoesNotArmDoubleTap(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	pos := cp.Vector{X: 400, Y: 400}
	cl.DragStart(component.WeaponBomb, cp.Vector{X: 20, Y: 20})
	cl.PointerUp(100, pos)
	// Quick plain tap right after the drop must not read the drop as a
	// first tap.
	if actions := cl.PointerUp(105, pos); hasKind(actions, ActionAreaBlast) {
		t.Fatalf("drag release armed the double-tap window")
	}
}

func TestKeyboardSpawnAtCenter(t *testing.T) {
	cl, _ := newTestClassifier(ToolSpawn)
	cl.SetTopInset(48)
	a := cl.KeyboardSpawn(component.WeaponGrenade)
	if a.Kind != ActionSpawnWeapon || a.Weapon != component.WeaponGrenade {
		t.Fatalf("keyboard spawn got %+v", a)
	}
	if a.Pos.X != 640 {
		t.Fatalf("center X = %v, want 640", a.Pos.X)
	}
	if a.Pos.Y <= 48 || a.Pos.Y >= 720 {
		t.Fatalf("center Y = %v should sit on the canvas", a.Pos.Y)
	}
}
