package system

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

// RenderSystem draws the canvas: ground line, shapes, weapons, and the
// drag ghost. All fills are flat color; rotated rectangles go through
// DrawTriangles against a white pixel.
type RenderSystem struct {
	white  *ebiten.Image
	width  float64
	height float64
}

func NewRenderSystem(width, height float64) *RenderSystem {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return &RenderSystem{
		white:  img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		width:  width,
		height: height,
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	vector.StrokeLine(screen, 0, float32(r.height), float32(r.width), float32(r.height), 2, color.NRGBA{R: 0x55, G: 0x55, B: 0x5c, A: 0xff}, true)

	ecs.ForEach(w, component.ShapeComponent, func(e ecs.Entity, sh *component.Shape) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		if sh.Kind == component.ShapeCircle || pb.Radius > 0 {
			vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(pb.Radius), sh.Fill, true)
		} else {
			r.fillRotatedRect(screen, t.X, t.Y, pb.Width, pb.Height, t.Rotation, sh.Fill)
		}
	})

	ecs.ForEach(w, component.WeaponComponent, func(e ecs.Entity, wp *component.Weapon) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		if pb.Radius > 0 {
			vector.DrawFilledCircle(screen, float32(t.X), float32(t.Y), float32(pb.Radius), wp.Fill, true)
			vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(pb.Radius), 2, wp.Outline, true)
		} else {
			r.fillRotatedRect(screen, t.X, t.Y, pb.Width, pb.Height, t.Rotation, wp.Fill)
			r.strokeRotatedRect(screen, t.X, t.Y, pb.Width, pb.Height, t.Rotation, wp.Outline)
		}
	})

	ecs.ForEach(w, component.GrabbedComponent, func(e ecs.Entity, _ *component.Grabbed) {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			return
		}
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok {
			return
		}
		radius := pb.Radius
		if radius <= 0 {
			radius = math.Hypot(pb.Width, pb.Height) / 2
		}
		vector.StrokeCircle(screen, float32(t.X), float32(t.Y), float32(radius+4), 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xb0}, true)
	})
}

// DrawGhost renders the half-transparent weapon being dragged from the
// toolbar at the pointer position.
func (r *RenderSystem) DrawGhost(screen *ebiten.Image, drag *DragSession) {
	if drag == nil {
		return
	}
	c := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60}
	vector.StrokeCircle(screen, float32(drag.Pos.X), float32(drag.Pos.Y), 14, 2, c, true)
	vector.DrawFilledCircle(screen, float32(drag.Pos.X), float32(drag.Pos.Y), 4, c, true)
}

// DrawEraserRing shows the eraser's reach at the pointer.
func (r *RenderSystem) DrawEraserRing(screen *ebiten.Image, pos cp.Vector, radius float64) {
	vector.StrokeCircle(screen, float32(pos.X), float32(pos.Y), float32(radius), 1, color.NRGBA{R: 0xe0, G: 0x60, B: 0x60, A: 0x90}, true)
}

func rectCorners(cx, cy, w, h, angle float64) [4]cp.Vector {
	hw, hh := w/2, h/2
	cos, sin := math.Cos(angle), math.Sin(angle)
	rot := func(x, y float64) cp.Vector {
		return cp.Vector{X: cx + x*cos - y*sin, Y: cy + x*sin + y*cos}
	}
	return [4]cp.Vector{rot(-hw, -hh), rot(hw, -hh), rot(hw, hh), rot(-hw, hh)}
}

func (r *RenderSystem) fillRotatedRect(screen *ebiten.Image, cx, cy, w, h, angle float64, fill color.NRGBA) {
	corners := rectCorners(cx, cy, w, h, angle)
	cr := float32(fill.R) / 0xff
	cg := float32(fill.G) / 0xff
	cb := float32(fill.B) / 0xff
	ca := float32(fill.A) / 0xff

	vs := make([]ebiten.Vertex, 4)
	for i, p := range corners {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0, SrcY: 0,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	screen.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, r.white, nil)
}

func (r *RenderSystem) strokeRotatedRect(screen *ebiten.Image, cx, cy, w, h, angle float64, outline color.NRGBA) {
	corners := rectCorners(cx, cy, w, h, angle)
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%4]
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, outline, true)
	}
}
