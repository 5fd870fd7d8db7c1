// Command soak runs the sandbox headless: it spawns shapes and weapons
// at random, detonates them, and lets the sweeper and lifetimes clean
// up, reporting entity counts so leaks show up without a window.
package main

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/entity"
	"github.com/tbrandt/blastpad/ecs/system"
	"github.com/tbrandt/blastpad/prefabs"
)

const (
	width  = 1280
	height = 720
)

func main() {
	ticks := flag.Int("ticks", 60*60, "simulation ticks to run")
	seed := flag.Int64("seed", time.Now().UnixNano(), "rng seed")
	spawnEvery := flag.Int("spawn-every", 12, "ticks between spawns")
	report := flag.Int("report-every", 600, "ticks between reports")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	tuning, err := prefabs.LoadTuning()
	if err != nil {
		log.Warn().Err(err).Msg("falling back to built-in tuning")
		tuning = prefabs.DefaultTuning()
	}

	rng := rand.New(rand.NewSource(*seed))
	w := ecs.NewWorld()
	physics := system.NewPhysicsSystem(width, height, log)
	exploder := system.NewExploder(physics, tuning, log)

	w.AddSystem(physics)
	w.AddSystem(system.NewLifetimeSystem())
	w.AddSystem(system.NewSweepSystem(physics, tuning, log))

	weapons := []component.WeaponType{component.WeaponBomb, component.WeaponTNT, component.WeaponGrenade}
	var pending []ecs.Entity

	log.Info().Int64("seed", *seed).Int("ticks", *ticks).Msg("soak start")
	start := time.Now()

	for tick := 0; tick < *ticks; tick++ {
		if tick%*spawnEvery == 0 {
			pos := cp.Vector{X: rng.Float64() * width, Y: rng.Float64() * height * 0.5}
			if rng.Intn(3) == 0 {
				wt := weapons[rng.Intn(len(weapons))]
				pending = append(pending, entity.NewWeapon(w, pos, wt))
			} else {
				kind := component.ShapeRectangle
				if rng.Intn(2) == 0 {
					kind = component.ShapeCircle
				}
				entity.NewShape(w, pos, kind, 20+rng.Float64()*60, rng.Intn(2) == 0, tuning, rng)
			}
		}

		// Detonate a queued weapon once it has had time to settle.
		if len(pending) > 0 && tick%90 == 0 {
			exploder.Detonate(w, pending[0])
			pending = pending[1:]
		}

		w.Update()

		if tick%*report == 0 {
			log.Info().
				Int("tick", tick).
				Int("entities", len(w.Entities())).
				Int("bodies", ecs.Count(w, component.PhysicsBodyComponent)).
				Int("fragments", ecs.Count(w, component.FragmentComponent)).
				Msg("soak report")
		}
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("entities", len(w.Entities())).
		Msg("soak done")
}
