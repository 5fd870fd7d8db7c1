package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/entity"
)

// sceneShape and sceneWeapon are the clipboard serialization of the
// canvas. Fragments and in-flight velocities are not captured; a pasted
// scene starts at rest.
type sceneShape struct {
	Kind string  `yaml:"kind"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Size float64 `yaml:"size"`
}

type sceneWeapon struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

type sceneFile struct {
	Shapes  []sceneShape  `yaml:"shapes"`
	Weapons []sceneWeapon `yaml:"weapons"`
}

var sceneRNG = rand.New(rand.NewSource(time.Now().UnixNano()))

func (g *Game) initClipboard() {
	if err := clipboard.Init(); err != nil {
		g.log.Warn().Err(err).Msg("clipboard unavailable, scene copy/paste disabled")
		return
	}
	g.clipboardOK = true
}

// sceneShortcuts handles Ctrl+C (copy canvas as YAML) and Ctrl+V (paste
// a copied canvas on top of the current one).
func (g *Game) sceneShortcuts() {
	if !g.clipboardOK || !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyScene()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.pasteScene()
	}
}

func (g *Game) copyScene() {
	scene := snapshotScene(g.world)
	data, err := yaml.Marshal(scene)
	if err != nil {
		g.log.Warn().Err(err).Msg("scene copy failed")
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.log.Info().Int("shapes", len(scene.Shapes)).Int("weapons", len(scene.Weapons)).Msg("scene copied")
}

func (g *Game) pasteScene() {
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	var scene sceneFile
	if err := yaml.Unmarshal(data, &scene); err != nil {
		g.log.Warn().Err(err).Msg("clipboard contents are not a scene")
		return
	}
	for _, s := range scene.Shapes {
		kind := component.ShapeRectangle
		if s.Kind == "circle" {
			kind = component.ShapeCircle
		}
		entity.NewShape(g.world, cp.Vector{X: s.X, Y: s.Y}, kind, s.Size, false, g.tuning, sceneRNG)
	}
	for _, wep := range scene.Weapons {
		entity.NewWeapon(g.world, cp.Vector{X: wep.X, Y: wep.Y}, component.WeaponType(wep.Type))
	}
	g.log.Info().Int("shapes", len(scene.Shapes)).Int("weapons", len(scene.Weapons)).Msg("scene pasted")
}

func snapshotScene(w *ecs.World) *sceneFile {
	scene := &sceneFile{}
	for _, e := range w.Entities() {
		if ecs.Has(w, e, component.FragmentComponent) {
			continue
		}
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		if wp, ok := ecs.Get(w, e, component.WeaponComponent); ok {
			scene.Weapons = append(scene.Weapons, sceneWeapon{Type: string(wp.Type), X: t.X, Y: t.Y})
			continue
		}
		sh, ok := ecs.Get(w, e, component.ShapeComponent)
		if !ok {
			continue
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || pb.Static {
			continue
		}
		size := pb.Width
		kind := "rect"
		if sh.Kind == component.ShapeCircle {
			kind = "circle"
			size = pb.Radius * 2
		}
		scene.Shapes = append(scene.Shapes, sceneShape{Kind: kind, X: t.X, Y: t.Y, Size: size})
	}
	return scene
}
