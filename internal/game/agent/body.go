package agent

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/skirmish/internal/game/geo"
)

// DefaultTurnRate is the yaw rate in radians per second applied when a Body
// is constructed without an explicit rate.
const DefaultTurnRate = 3.0

// Body is an agent's physical presence: position, velocity, and facing.
// It also owns the per-step update set for registered components.
//
// Invariant: tickers holds each registered Ticker at most once.
type Body struct {
	id       string
	position geo.Vec3
	velocity geo.Vec3
	yaw      float64
	turnRate float64
	tickers  []Ticker
}

// NewBody creates a stationary Body at pos facing yaw.
//
// Precondition: turnRate > 0 (panics otherwise).
func NewBody(pos geo.Vec3, yaw, turnRate float64) *Body {
	if turnRate <= 0 {
		panic("agent: NewBody: turnRate must be > 0")
	}
	return &Body{
		id:       uuid.NewString(),
		position: pos,
		yaw:      yaw,
		turnRate: turnRate,
	}
}

// ID returns the unique agent identifier.
func (b *Body) ID() string { return b.id }

// Position returns the current world position.
func (b *Body) Position() geo.Vec3 { return b.position }

// Velocity returns the current velocity.
func (b *Body) Velocity() geo.Vec3 { return b.velocity }

// SetVelocity replaces the current velocity.
func (b *Body) SetVelocity(v geo.Vec3) { b.velocity = v }

// Yaw returns the current facing angle in radians.
func (b *Body) Yaw() float64 { return b.yaw }

// TurnToward rotates the facing toward point, rate-limited by the body's
// turn rate over dt seconds, and reports whether the facing is now within
// tolerance of the bearing to point. A point at the body's own position
// leaves the facing unchanged and reports true.
func (b *Body) TurnToward(point geo.Vec3, dt, tolerance float64) bool {
	if point.Sub(b.position).IsZero() {
		return true
	}
	target := geo.Heading(b.position, point)
	yaw, within := geo.TurnToward(b.yaw, target, b.turnRate, dt, tolerance)
	b.yaw = yaw
	return within
}

// Register adds t to the per-step update set.
//
// Postcondition: t is ticked exactly once per Tick call.
func (b *Body) Register(t Ticker) {
	for _, existing := range b.tickers {
		if existing == t {
			return
		}
	}
	b.tickers = append(b.tickers, t)
}

// Deregister removes t from the per-step update set, preserving the order
// of the remaining entries.
func (b *Body) Deregister(t Ticker) {
	for i, existing := range b.tickers {
		if existing == t {
			b.tickers = append(b.tickers[:i], b.tickers[i+1:]...)
			return
		}
	}
}

// Tick integrates position by velocity and advances every registered
// component.
//
// Precondition: dt >= 0.
func (b *Body) Tick(dt float64) {
	b.position = b.position.Add(b.velocity.Scale(dt))
	for _, t := range b.tickers {
		t.Tick(dt)
	}
}
