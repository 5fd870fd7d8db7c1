package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/system"
)

// toolbarHeight is the strip at the top reserved for the UI; pointer
// events inside it never reach the canvas.
const toolbarHeight = 48

// Toolbar is the top control strip: tool and shape selection, the size
// slider, the snap toggle, and the weapon buttons that double as drag
// sources. It implements system.ToolbarHits.
type Toolbar struct {
	ui    *ebitenui.UI
	tools *system.ToolState

	weaponButtons map[component.WeaponType]*widget.Button
	snapBtn       *widget.Button
	sizeLabel     *widget.Text
}

func NewToolbar(tools *system.ToolState, onClear func()) *Toolbar {
	t := &Toolbar{
		tools:         tools,
		weaponButtons: make(map[component.WeaponType]*widget.Button),
	}

	barImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x1c, G: 0x1c, B: 0x22, A: 0xff})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x3a, A: 0xff})
	btnHot := imageui.NewNineSliceColor(color.NRGBA{R: 0x4a, G: 0x4a, B: 0x55, A: 0xff})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	btnTextColor := &widget.ButtonTextColor{Idle: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}}

	button := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHot, Pressed: btnHot}),
			widget.ButtonOpts.Text(label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		)
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(barImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 10, Right: 10}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth, toolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionStart,
				VerticalPosition:   widget.AnchorLayoutPositionStart,
				StretchHorizontal:  true,
			}),
		),
	)

	bar.AddChild(button("Spawn", func() { tools.Tool = system.ToolSpawn }))
	bar.AddChild(button("Erase", func() { tools.Tool = system.ToolErase }))
	bar.AddChild(button("Grab", func() { tools.Tool = system.ToolGrab }))

	bar.AddChild(button("Rect", func() { tools.Shape = component.ShapeRectangle }))
	bar.AddChild(button("Circle", func() { tools.Shape = component.ShapeCircle }))

	bar.AddChild(button("Size -", func() { t.bumpSize(-10) }))
	t.sizeLabel = widget.NewText(
		widget.TextOpts.Text(fmt.Sprintf("%.0f", tools.Size), &face, color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	bar.AddChild(t.sizeLabel)
	bar.AddChild(button("Size +", func() { t.bumpSize(10) }))

	t.snapBtn = button(snapLabel(tools.Snap), func() {
		tools.Snap = !tools.Snap
		t.snapBtn.Text().Label = snapLabel(tools.Snap)
	})
	bar.AddChild(t.snapBtn)

	for _, wt := range []component.WeaponType{component.WeaponBomb, component.WeaponTNT, component.WeaponGrenade} {
		// Weapon buttons are drag handles, not click targets; the press is
		// picked up by the input layer through WeaponAt.
		btn := button(string(wt), func() {})
		t.weaponButtons[wt] = btn
		bar.AddChild(btn)
	}

	bar.AddChild(button("Clear", onClear))

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(bar)

	t.ui = &ebitenui.UI{Container: root}
	return t
}

func snapLabel(on bool) string {
	if on {
		return "Snap: on"
	}
	return "Snap: off"
}

func (t *Toolbar) bumpSize(delta float64) {
	s := t.tools.Size + delta
	if s < 10 {
		s = 10
	}
	if s > 150 {
		s = 150
	}
	t.tools.Size = s
	t.sizeLabel.Label = fmt.Sprintf("%.0f", s)
}

func (t *Toolbar) Update() {
	t.ui.Update()
}

func (t *Toolbar) Draw(screen *ebiten.Image) {
	t.ui.Draw(screen)
}

// Contains reports whether the point is inside the toolbar strip.
func (t *Toolbar) Contains(x, y int) bool {
	return y <= toolbarHeight
}

// WeaponAt maps a press inside the toolbar to the weapon button under
// it, if any.
func (t *Toolbar) WeaponAt(x, y int) (component.WeaponType, bool) {
	p := image.Pt(x, y)
	for wt, btn := range t.weaponButtons {
		if p.In(btn.GetWidget().Rect) {
			return wt, true
		}
	}
	return "", false
}
