package geo_test

import (
	"math"
	"testing"

	"github.com/cory-johannsen/skirmish/internal/game/geo"
	"pgregory.net/rapid"
)

func TestDistance_Axis(t *testing.T) {
	a := geo.Vec3{X: 1, Y: 0, Z: 0}
	b := geo.Vec3{X: 4, Y: 0, Z: 4}
	if got := geo.Distance(a, b); math.Abs(got-5) > 1e-9 {
		t.Fatalf("expected distance 5, got %v", got)
	}
}

func TestNormalize_Zero(t *testing.T) {
	v := geo.Vec3{}
	if got := v.Normalize(); !got.IsZero() {
		t.Fatalf("expected zero vector, got %+v", got)
	}
}

func TestHeading_CardinalDirections(t *testing.T) {
	origin := geo.Vec3{}
	cases := []struct {
		name string
		to   geo.Vec3
		want float64
	}{
		{"north", geo.Vec3{Z: 1}, 0},
		{"east", geo.Vec3{X: 1}, math.Pi / 2},
		{"west", geo.Vec3{X: -1}, -math.Pi / 2},
		{"south", geo.Vec3{Z: -1}, math.Pi},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := geo.Heading(origin, tc.to)
			if math.Abs(geo.AngleDiff(got, tc.want)) > 1e-9 {
				t.Fatalf("expected heading %v, got %v", tc.want, got)
			}
		})
	}
}

func TestTurnToward_RateLimited(t *testing.T) {
	yaw, within := geo.TurnToward(0, math.Pi, 1.0, 0.1, 0.05)
	if within {
		t.Fatal("expected facing outside tolerance after a small step")
	}
	if math.Abs(yaw-0.1) > 1e-9 {
		t.Fatalf("expected yaw 0.1 after one step, got %v", yaw)
	}
}

func TestTurnToward_SnapsOnlyWithinStep(t *testing.T) {
	yaw, within := geo.TurnToward(0, 0.05, 2.0, 0.1, 0.05)
	if !within {
		t.Fatal("expected facing within tolerance")
	}
	if yaw != 0.05 {
		t.Fatalf("expected yaw to land exactly on target, got %v", yaw)
	}
}

func TestProperty_TurnToward_NeverOvershoots(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		yaw := rapid.Float64Range(-math.Pi, math.Pi).Draw(rt, "yaw")
		target := rapid.Float64Range(-math.Pi, math.Pi).Draw(rt, "target")
		rate := rapid.Float64Range(0, 10).Draw(rt, "rate")
		dt := rapid.Float64Range(0, 0.5).Draw(rt, "dt")

		before := math.Abs(geo.AngleDiff(yaw, target))
		after, _ := geo.TurnToward(yaw, target, rate, dt, 0.05)
		if math.Abs(geo.AngleDiff(after, target)) > before+1e-9 {
			rt.Fatalf("turn moved facing away from target: before=%v after=%v", before, math.Abs(geo.AngleDiff(after, target)))
		}
	})
}

func TestProperty_AngleDiff_Bounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Float64Range(-100, 100).Draw(rt, "a")
		b := rapid.Float64Range(-100, 100).Draw(rt, "b")
		d := geo.AngleDiff(a, b)
		if d <= -math.Pi-1e-9 || d > math.Pi+1e-9 {
			rt.Fatalf("AngleDiff out of range: %v", d)
		}
	})
}
