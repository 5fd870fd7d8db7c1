package main

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/common"
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/system"
	"github.com/tbrandt/blastpad/prefabs"
	"github.com/tbrandt/blastpad/script"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

var canvasColor = color.NRGBA{R: 0x14, G: 0x14, B: 0x18, A: 0xff}

type Game struct {
	frames    int
	paused    bool
	showDebug bool

	world      *ecs.World
	tools      *system.ToolState
	tuning     *prefabs.Tuning
	physics    *system.PhysicsSystem
	exploder   *system.Exploder
	dispatcher *system.Dispatcher
	classifier *system.Classifier
	render     *system.RenderSystem

	toolbar *Toolbar
	pauseUI *ebitenui.UI

	watcher    *prefabs.Watcher
	scriptPath string

	clipboardOK bool

	log zerolog.Logger
}

func NewGame(prefabDir, scriptPath string, log zerolog.Logger) *Game {
	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to built-in tuning")
		tuning = prefabs.DefaultTuning()
	}

	g := &Game{
		world:      ecs.NewWorld(),
		tuning:     tuning,
		scriptPath: scriptPath,
		log:        log,
	}
	g.tools = &system.ToolState{
		Tool:  system.ToolSpawn,
		Shape: component.ShapeRectangle,
		Size:  tuning.Spawn.DefaultSize,
	}

	g.physics = system.NewPhysicsSystem(baseWidth, baseHeight, log)
	g.exploder = system.NewExploder(g.physics, tuning, log)
	g.dispatcher = system.NewDispatcher(g.physics, g.exploder, g.tools, tuning, log)

	doubleTapTicks := tuning.Input.DoubleTapMS * common.TPS / 1000
	g.classifier = system.NewClassifier(g.tools, baseWidth, baseHeight, doubleTapTicks)
	g.classifier.SetTopInset(toolbarHeight)

	input := system.NewInputSystem(g.classifier, g.dispatcher, g.physics)
	g.toolbar = NewToolbar(g.tools, func() {
		n := system.ClearAll(g.world)
		g.log.Info().Int("removed", n).Msg("canvas cleared")
	})
	input.SetToolbar(g.toolbar)

	g.world.AddSystem(input)
	g.world.AddSystem(g.physics)
	g.world.AddSystem(system.NewLifetimeSystem())
	g.world.AddSystem(system.NewSweepSystem(g.physics, tuning, log))

	g.render = system.NewRenderSystem(baseWidth, baseHeight)

	if scriptPath != "" {
		hook, err := script.Load(scriptPath)
		if err != nil {
			log.Warn().Err(err).Str("path", scriptPath).Msg("detonation script rejected")
		} else {
			g.exploder.SetHook(hook)
			log.Info().Str("path", scriptPath).Msg("detonation script loaded")
		}
	}

	g.startWatcher(prefabDir, scriptPath)
	g.initClipboard()
	g.pauseUI = NewPauseUI(g)
	return g
}

// startWatcher hot-reloads tuning and script files while the sandbox
// runs. Watching is best-effort: a failure only disables reloads.
func (g *Game) startWatcher(prefabDir, scriptPath string) {
	var dirs []string
	if prefabDir != "" {
		prefabs.SetOverrideDir(prefabDir)
		dirs = append(dirs, prefabDir)
	}
	if scriptPath != "" {
		dir := filepath.Dir(scriptPath)
		if len(dirs) == 0 || dirs[0] != dir {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		g.log.Warn().Err(err).Msg("prefab watching disabled")
		return
	}
	g.watcher = w
}

func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("prefab watcher error")
			}
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	if strings.EqualFold(filepath.Ext(path), ".tengo") {
		if g.scriptPath == "" {
			return
		}
		hook, err := script.Load(g.scriptPath)
		if err != nil {
			g.log.Warn().Err(err).Msg("script reload rejected, keeping previous hook")
			return
		}
		g.exploder.SetHook(hook)
		g.log.Info().Str("path", path).Msg("detonation script reloaded")
		return
	}

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		g.log.Warn().Err(err).Msg("tuning reload rejected, keeping previous sheet")
		return
	}
	g.tuning = tuning
	g.exploder.SetTuning(tuning)
	g.dispatcher.SetTuning(tuning)
	g.log.Info().Str("path", path).Msg("tuning reloaded")
}

func (g *Game) Update() error {
	g.frames++
	g.drainReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.showDebug = !g.showDebug
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.toolbar.Update()
	g.sceneShortcuts()
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(canvasColor)
	g.render.Draw(g.world, screen)

	mx, my := ebiten.CursorPosition()
	if g.tools.Tool == system.ToolErase && !g.toolbar.Contains(mx, my) {
		g.render.DrawEraserRing(screen, cp.Vector{X: float64(mx), Y: float64(my)}, g.tools.Size)
	}
	g.render.DrawGhost(screen, g.classifier.Drag())
	if g.showDebug {
		g.physics.DebugDraw(screen)
	}

	g.toolbar.Draw(screen)
	if g.paused {
		g.pauseUI.Draw(screen)
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.1f  bodies: %d", ebiten.ActualFPS(), ecs.Count(g.world, component.PhysicsBodyComponent)), 4, baseHeight-16)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
