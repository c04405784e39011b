// Package sim runs headless fixed-timestep skirmishes between combat
// agents, each driven by its own weapon system.
package sim

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/config"
	"github.com/cory-johannsen/skirmish/internal/game/agent"
	"github.com/cory-johannsen/skirmish/internal/game/geo"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
	"github.com/cory-johannsen/skirmish/internal/game/weaponsys"
	"github.com/cory-johannsen/skirmish/internal/observability"
)

// sightRange is the open-arena visibility limit in world units.
const sightRange = 120.0

// Combatant is one agent in the arena: a body, its perception of the next
// agent in the ring, and its weapon system.
type Combatant struct {
	Body    *agent.Body
	Tracker *agent.StockTracker
	Weapons *weaponsys.System

	shotsFired int
}

// Arena is a ring of combatants advanced on a fixed timestep. Each agent
// targets its clockwise neighbour, so every weapon system runs against live
// perception every step.
type Arena struct {
	cfg    config.Config
	logger *zap.Logger

	combatants []*Combatant

	sinceSelection float64

	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewArena spawns the configured number of agents evenly on the arena
// circle, fully armed, each tracking its neighbour.
//
// Precondition: cfg must pass Validate; registry and logger must be non-nil.
// Postcondition: every combatant carries all registered weapon types with
// the configured default current.
func NewArena(cfg config.Config, registry *weapon.Registry, logger *zap.Logger) (*Arena, error) {
	a := &Arena{
		cfg:    cfg,
		logger: logger,
		stopCh: make(chan struct{}),
	}

	n := cfg.Simulation.Agents
	bodies := make([]*agent.Body, n)
	for i := 0; i < n; i++ {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos := geo.Vec3{
			X: cfg.Simulation.ArenaRadius * math.Sin(angle),
			Z: cfg.Simulation.ArenaRadius * math.Cos(angle),
		}
		bodies[i] = agent.NewBody(pos, 0, agent.DefaultTurnRate)
	}

	defaultType, err := weapon.ParseType(cfg.Combat.DefaultWeapon)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		body := bodies[i]
		neighbour := bodies[(i+1)%n]
		tracker := agent.NewStockTracker(body, neighbour, lineOfSight)

		c := &Combatant{Body: body, Tracker: tracker}
		agentLog := observability.AgentLogger(logger, body.ID())
		c.Weapons = weaponsys.NewSystem(body, tracker, registry, nil, weaponsys.Params{
			ReactionSeconds: cfg.Combat.ReactionSeconds,
			FacingTolerance: cfg.Combat.FacingTolerance,
			DefaultType:     defaultType,
			OnShot: func(weapon.Shot) {
				c.shotsFired++
			},
		}, agentLog)
		if err := c.Weapons.Init(); err != nil {
			return nil, err
		}
		// Arm beyond the default loadout so selection has real choices.
		for _, t := range []weapon.Type{weapon.TypeShotgun, weapon.TypeAssaultRifle} {
			if _, ok := registry.Def(t); !ok {
				continue
			}
			if err := c.Weapons.AddWeapon(t); err != nil {
				return nil, err
			}
		}
		a.combatants = append(a.combatants, c)
	}

	return a, nil
}

func lineOfSight(from, to geo.Vec3) bool {
	return geo.Distance(from, to) <= sightRange
}

// Combatants returns the arena's combatants in spawn order.
func (a *Arena) Combatants() []*Combatant {
	return a.combatants
}

// Step advances the whole arena by dt seconds: perception first, then for
// each agent selection (on its cadence) before the aim/fire decision, then
// body and weapon timers. Selection always completes before the aim path
// reads the current weapon.
//
// Precondition: dt > 0.
func (a *Arena) Step(dt float64) {
	runSelection := false
	a.sinceSelection += dt
	if a.sinceSelection >= a.cfg.Simulation.SelectionInterval.Seconds() {
		a.sinceSelection = 0
		runSelection = true
	}

	for _, c := range a.combatants {
		c.Tracker.Tick(dt)
		if runSelection {
			c.Weapons.SelectBestWeapon()
		}
		c.Weapons.AimAndShoot(dt)
		c.Body.Tick(dt)
	}
}

// Start runs the arena in real time until the configured duration elapses
// or Stop is called. It implements server.Service.
//
// Postcondition: returns nil on clean completion.
func (a *Arena) Start() error {
	dt := a.cfg.Simulation.TickInterval.Seconds()
	ticker := time.NewTicker(a.cfg.Simulation.TickInterval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if a.cfg.Simulation.Duration > 0 {
		deadline = time.After(a.cfg.Simulation.Duration)
	}

	a.logger.Info("arena running",
		zap.Int("agents", len(a.combatants)),
		zap.Duration("tick", a.cfg.Simulation.TickInterval),
		zap.Duration("duration", a.cfg.Simulation.Duration),
	)

	for {
		select {
		case <-a.stopCh:
			a.report()
			return nil
		case <-deadline:
			a.report()
			return nil
		case <-ticker.C:
			a.Step(dt)
		}
	}
}

// Stop ends the run. Safe to call multiple times.
func (a *Arena) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

func (a *Arena) report() {
	total := 0
	for _, c := range a.combatants {
		total += c.shotsFired
		cur := c.Weapons.CurrentWeapon()
		currentType := ""
		if cur != nil {
			currentType = string(cur.Type())
		}
		a.logger.Info("combatant summary",
			zap.String("agent", c.Body.ID()),
			zap.Int("shots_fired", c.shotsFired),
			zap.String("current_weapon", currentType),
		)
	}
	a.logger.Info("arena finished", zap.Int("total_shots", total))
}
