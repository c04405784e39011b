// Package agent provides the combat agent's body and perception
// collaborators: movement and facing, per-step component registration, and
// target tracking.
package agent

// Ticker is a component that advances internal state once per simulation
// step. Weapons register as Tickers so their reload and cooldown timers run.
type Ticker interface {
	Tick(dt float64)
}

// TickRegistry is the per-step advancement registration an agent exposes to
// its components.
type TickRegistry interface {
	// Register adds t to the per-step update set. Registering the same
	// Ticker twice is a no-op.
	Register(t Ticker)
	// Deregister removes t from the per-step update set. Unknown Tickers
	// are ignored.
	Deregister(t Ticker)
}
