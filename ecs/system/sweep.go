package system

import (
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/common"
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/prefabs"
)

// SweepSystem periodically removes dynamic bodies that have left the
// playfield: fallen below the bottom margin or drifted past the side
// margins. There is no ceiling check, bodies thrown upward come back.
type SweepSystem struct {
	physics  *PhysicsSystem
	interval int
	below    float64
	side     float64
	counter  int
	log      zerolog.Logger
}

func NewSweepSystem(physics *PhysicsSystem, tune *prefabs.Tuning, log zerolog.Logger) *SweepSystem {
	return &SweepSystem{
		physics:  physics,
		interval: common.UnitsToTicks(tune.Sweep.IntervalUnits),
		below:    tune.Sweep.BelowMargin,
		side:     tune.Sweep.SideMargin,
		log:      log.With().Str("system", "sweep").Logger(),
	}
}

func (s *SweepSystem) Update(w *ecs.World) {
	s.counter++
	if s.counter < s.interval {
		return
	}
	s.counter = 0

	width, height := s.physics.Width(), s.physics.Height()
	removed := 0
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body == nil || pb.Static {
			return
		}
		pos := pb.Body.Position()
		if pos.Y > height+s.below || pos.X < -s.side || pos.X > width+s.side {
			if w.DestroyEntity(e) {
				removed++
			}
		}
	})
	if removed > 0 {
		s.log.Debug().Int("removed", removed).Msg("swept out-of-bounds bodies")
	}
}
