package weapon

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/geo"
)

// Shot is the record of one fired round.
type Shot struct {
	// WeaponID identifies the weapon instance that fired.
	WeaponID string
	// Type is the firing weapon's type.
	Type Type
	// Origin is the carrier position at the time of the shot.
	Origin geo.Vec3
	// AimPoint is the resolved point of aim.
	AimPoint geo.Vec3
}

// Weapon is one live weapon instance. It owns its round count, status, and
// the reload/cooldown timers that advance on each simulation tick.
//
// Invariant: 0 <= rounds <= def.MaxRounds.
// Invariant: status == StatusEmpty iff rounds == 0, except mid-reload.
type Weapon struct {
	id     string
	def    *Def
	curve  Curve
	status Status
	rounds int
	timer  float64 // remaining seconds of the current reload or cooldown
	onShot func(Shot)
	logger *zap.Logger
}

// New creates a ready weapon with a full magazine.
//
// Precondition: def must be non-nil and valid, and its type must have a
// desirability curve; panics otherwise. A nil onShot discards shot records;
// a nil logger is replaced with a no-op logger.
func New(def *Def, onShot func(Shot), logger *zap.Logger) *Weapon {
	if def == nil {
		panic("weapon: New: def must not be nil")
	}
	curve, ok := CurveFor(Type(def.Type))
	if !ok {
		panic(fmt.Sprintf("weapon: New: no desirability curve for type %q", def.Type))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Weapon{
		id:     uuid.NewString(),
		def:    def,
		curve:  curve,
		status: StatusReady,
		rounds: def.Magazine,
		onShot: onShot,
		logger: logger,
	}
}

// ID returns the unique instance identifier.
func (w *Weapon) ID() string { return w.id }

// Type returns the weapon's type.
func (w *Weapon) Type() Type { return Type(w.def.Type) }

// Def returns the static definition.
func (w *Weapon) Def() *Def { return w.def }

// Status returns the current status.
func (w *Weapon) Status() Status { return w.status }

// Rounds returns the remaining round count.
func (w *Weapon) Rounds() int { return w.rounds }

// Desirability scores this weapon against the given engagement distance.
//
// Postcondition: result >= 0.
func (w *Weapon) Desirability(dist float64) float64 {
	return w.curve(dist)
}

// AddRounds merges n rounds into the remaining count, capped at MaxRounds.
// An empty weapon that gains rounds becomes ready.
//
// Precondition: n >= 0 (panics otherwise).
func (w *Weapon) AddRounds(n int) {
	if n < 0 {
		panic(fmt.Sprintf("weapon: Weapon.AddRounds: n must be >= 0, got %d", n))
	}
	w.rounds += n
	if w.rounds > w.def.MaxRounds {
		w.rounds = w.def.MaxRounds
	}
	if w.status == StatusEmpty && w.rounds > 0 {
		w.status = StatusReady
	}
}

// Shoot fires one round at aim and reports it through the shot callback.
//
// Precondition: Status() == StatusReady; otherwise an error is returned and
// nothing fires.
// Postcondition: on success rounds decreases by one and the weapon is
// cooling down, or empty when the magazine ran dry.
func (w *Weapon) Shoot(origin, aim geo.Vec3) error {
	if w.status != StatusReady {
		return fmt.Errorf("weapon: Weapon.Shoot: weapon %q is %s, not ready", w.def.Type, w.status)
	}
	if w.rounds <= 0 {
		// Unreachable while the status invariant holds.
		return errors.New("weapon: Weapon.Shoot: no rounds remaining")
	}

	w.rounds--
	if w.onShot != nil {
		w.onShot(Shot{WeaponID: w.id, Type: w.Type(), Origin: origin, AimPoint: aim})
	}
	w.logger.Debug("shot fired",
		zap.String("weapon", w.def.Type),
		zap.Int("rounds_left", w.rounds),
	)

	switch {
	case w.rounds == 0:
		w.status = StatusEmpty
	case w.def.CooldownSeconds > 0:
		w.status = StatusCoolingDown
		w.timer = w.def.CooldownSeconds
	}
	return nil
}

// Reload begins a reload that restores one magazine of rounds when it
// completes. A reload already in progress is not restarted.
//
// Postcondition: Status() == StatusReloading, or StatusReady immediately
// when ReloadSeconds is zero.
func (w *Weapon) Reload() {
	if w.status == StatusReloading {
		return
	}
	w.logger.Debug("reload started", zap.String("weapon", w.def.Type))
	if w.def.ReloadSeconds == 0 {
		w.finishReload()
		return
	}
	w.status = StatusReloading
	w.timer = w.def.ReloadSeconds
}

// Tick advances the reload and cooldown timers by dt seconds. The carrier's
// tick registry calls this once per simulation step.
//
// Precondition: dt >= 0.
func (w *Weapon) Tick(dt float64) {
	switch w.status {
	case StatusReloading:
		w.timer -= dt
		if w.timer <= 0 {
			w.finishReload()
		}
	case StatusCoolingDown:
		w.timer -= dt
		if w.timer <= 0 {
			w.timer = 0
			if w.rounds > 0 {
				w.status = StatusReady
			} else {
				w.status = StatusEmpty
			}
		}
	}
}

func (w *Weapon) finishReload() {
	w.rounds += w.def.Magazine
	if w.rounds > w.def.MaxRounds {
		w.rounds = w.def.MaxRounds
	}
	w.status = StatusReady
	w.timer = 0
}
