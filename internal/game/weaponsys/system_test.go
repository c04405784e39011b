package weaponsys_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/agent"
	"github.com/cory-johannsen/skirmish/internal/game/geo"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
	"github.com/cory-johannsen/skirmish/internal/game/weaponsys"
)

// fakeCarrier records turn requests and the per-step registration set.
type fakeCarrier struct {
	pos, vel   geo.Vec3
	onTarget   bool
	turns      []geo.Vec3
	registered []agent.Ticker
}

func (f *fakeCarrier) Position() geo.Vec3 { return f.pos }
func (f *fakeCarrier) Velocity() geo.Vec3 { return f.vel }

func (f *fakeCarrier) TurnToward(point geo.Vec3, _, _ float64) bool {
	f.turns = append(f.turns, point)
	return f.onTarget
}

func (f *fakeCarrier) Register(t agent.Ticker) {
	f.registered = append(f.registered, t)
}

func (f *fakeCarrier) Deregister(t agent.Ticker) {
	for i, existing := range f.registered {
		if existing == t {
			f.registered = append(f.registered[:i], f.registered[i+1:]...)
			return
		}
	}
}

// fakeTracker serves a fixed target view.
type fakeTracker struct {
	info agent.TargetInfo
	ok   bool
}

func (f *fakeTracker) Target() (agent.TargetInfo, bool) { return f.info, f.ok }

func newSystem(t *testing.T, carrier *fakeCarrier, tracker *fakeTracker, params weaponsys.Params) *weaponsys.System {
	t.Helper()
	s := weaponsys.NewSystem(carrier, tracker, weapon.DefaultRegistry(), nil, params, nil)
	require.NoError(t, s.Init())
	return s
}

func TestInit_GrantsDefaultWeapon(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	weapons := s.Weapons()
	require.Len(t, weapons, 1)
	assert.Equal(t, weaponsys.DefaultWeaponType, weapons[0].Type())
	require.NotNil(t, s.CurrentWeapon())
	assert.Equal(t, weaponsys.DefaultWeaponType, s.CurrentWeapon().Type())
}

func TestAddWeapon_DuplicateMergesAmmo(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	start := s.RemainingAmmo(weapon.TypeBlaster)
	require.NoError(t, s.AddWeapon(weapon.TypeBlaster))

	assert.Len(t, s.Weapons(), 1, "duplicate pickup must not create a second instance")
	assert.Equal(t, start*2, s.RemainingAmmo(weapon.TypeBlaster))
}

func TestAddWeapon_UnknownTypeIsTypedError(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	err := s.AddWeapon(weapon.Type("bfg9000"))
	require.Error(t, err)
	assert.ErrorIs(t, err, weapon.ErrUnknownType)
	assert.Len(t, s.Weapons(), 1, "failed add must not mutate the arsenal")
}

func TestAddWeapon_RegistersForPerStepUpdates(t *testing.T) {
	carrier := &fakeCarrier{}
	s := newSystem(t, carrier, &fakeTracker{}, weaponsys.Params{})

	require.NoError(t, s.AddWeapon(weapon.TypeShotgun))
	assert.Len(t, carrier.registered, 2, "both weapons must be in the per-step update set")
}

func TestAddWeapon_NeverSwitchesCurrent(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	require.NoError(t, s.AddWeapon(weapon.TypeAssaultRifle))
	assert.Equal(t, weaponsys.DefaultWeaponType, s.CurrentWeapon().Type())
}

func TestRemoveWeapon_PreservesAcquisitionOrder(t *testing.T) {
	carrier := &fakeCarrier{}
	s := newSystem(t, carrier, &fakeTracker{}, weaponsys.Params{})
	require.NoError(t, s.AddWeapon(weapon.TypeShotgun))
	require.NoError(t, s.AddWeapon(weapon.TypeAssaultRifle))

	s.RemoveWeapon(weapon.TypeShotgun)

	weapons := s.Weapons()
	require.Len(t, weapons, 2)
	assert.Equal(t, weapon.TypeBlaster, weapons[0].Type())
	assert.Equal(t, weapon.TypeAssaultRifle, weapons[1].Type())
	assert.Len(t, carrier.registered, 2, "removed weapon must be deregistered")
}

func TestRemoveWeapon_AbsentTypeIsNoOp(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})
	s.RemoveWeapon(weapon.TypeShotgun)
	assert.Len(t, s.Weapons(), 1)
}

func TestRemoveWeapon_CurrentReassignedToOldest(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})
	require.NoError(t, s.AddWeapon(weapon.TypeShotgun))
	require.NoError(t, s.ChangeWeapon(weapon.TypeShotgun))

	s.RemoveWeapon(weapon.TypeShotgun)

	require.NotNil(t, s.CurrentWeapon(), "current reference must never dangle")
	assert.Equal(t, weapon.TypeBlaster, s.CurrentWeapon().Type())
}

func TestRemainingAmmo_ZeroForUnowned(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})
	assert.Zero(t, s.RemainingAmmo(weapon.TypeShotgun))
	assert.Zero(t, s.RemainingAmmo(weapon.Type("bfg9000")))
}

func TestReset_Idempotent(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})
	require.NoError(t, s.AddWeapon(weapon.TypeShotgun))
	require.NoError(t, s.AddWeapon(weapon.TypeAssaultRifle))

	defaultDef, ok := weapon.DefaultRegistry().Def(weaponsys.DefaultWeaponType)
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Reset())
		weapons := s.Weapons()
		require.Len(t, weapons, 1, "reset %d", i)
		assert.Equal(t, weaponsys.DefaultWeaponType, weapons[0].Type())
		assert.Equal(t, defaultDef.Magazine, weapons[0].Rounds())
		assert.Same(t, weapons[0], s.CurrentWeapon())
	}
}

func TestChangeWeapon_SwitchesToCarried(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})
	require.NoError(t, s.AddWeapon(weapon.TypeShotgun))

	require.NoError(t, s.ChangeWeapon(weapon.TypeShotgun))
	assert.Equal(t, weapon.TypeShotgun, s.CurrentWeapon().Type())
}

func TestChangeWeapon_NotCarried(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	err := s.ChangeWeapon(weapon.TypeShotgun)
	require.Error(t, err)
	assert.True(t, errors.Is(err, weaponsys.ErrNotCarried))
	assert.Equal(t, weaponsys.DefaultWeaponType, s.CurrentWeapon().Type())
}

func TestChangeWeapon_UnknownType(t *testing.T) {
	s := newSystem(t, &fakeCarrier{}, &fakeTracker{}, weaponsys.Params{})

	err := s.ChangeWeapon(weapon.Type("bfg9000"))
	require.Error(t, err)
	assert.ErrorIs(t, err, weapon.ErrUnknownType)
}
