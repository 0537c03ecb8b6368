package fuse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/vmath"
)

func testProps() *Props {
	return &Props{
		ExplosiveRadius:           5,
		ExpandPerStackCount:       0.5,
		DamageKind:                DamageBomb,
		WickTicks:                 IntRange{Min: 60, Max: 120},
		StartWickHitPointsPercent: 0.5,
	}
}

type rig struct {
	host    *fakeHost
	effects *fakeEffects
	audio   *fakeAudio
	obs     *recordingObserver
	m       *Machine
}

func newRig(t *testing.T, props *Props, r Rand) *rig {
	t.Helper()
	host := newFakeHost()
	effects := &fakeEffects{host: host}
	audio := &fakeAudio{}
	obs := &recordingObserver{}
	m := NewMachine(props, host, Deps{Effects: effects, Audio: audio, Rand: r, Observer: obs})
	return &rig{host: host, effects: effects, audio: audio, obs: obs, m: m}
}

func TestStartFuse_FromIdle(t *testing.T) {
	for _, silent := range []bool{false, true} {
		for seed := uint64(1); seed <= 50; seed++ {
			rg := newRig(t, testProps(), vmath.NewFastRand(seed))
			rg.m.StartFuse(silent)

			require.True(t, rg.m.Started())
			assert.Equal(t, rg.m.TicksTotal(), rg.m.TicksRemaining())
			assert.GreaterOrEqual(t, rg.m.TicksTotal(), 60)
			assert.LessOrEqual(t, rg.m.TicksTotal(), 120)
			if silent {
				assert.Equal(t, StateArmedSilent, rg.m.State())
			} else {
				assert.Equal(t, StateArmedAudible, rg.m.State())
			}
		}
	}
}

func TestStartFuse_SilentUpgradeKeepsTimer(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(80))
	rg.m.StartFuse(true)
	rg.m.Advance()
	rg.m.Advance()

	remaining, total := rg.m.TicksRemaining(), rg.m.TicksTotal()
	rg.m.StartFuse(false)

	assert.Equal(t, StateArmedAudible, rg.m.State())
	assert.Equal(t, remaining, rg.m.TicksRemaining())
	assert.Equal(t, total, rg.m.TicksTotal())
	assert.Equal(t, 1, rg.obs.started, "upgrade is not a new start")
}

func TestStartFuse_AudibleNeverSilenced(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(80))
	rg.m.StartFuse(false)
	rg.m.Advance()
	before := rg.m.Snapshot()

	rg.m.StartFuse(true)

	assert.Equal(t, StateArmedAudible, rg.m.State())
	assert.Equal(t, before, rg.m.Snapshot())
}

func TestStopFuse_RearmRollsFullDuration(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(70))
	rg.m.StartFuse(false)
	for range 10 {
		rg.m.Advance()
	}
	require.Equal(t, 60, rg.m.TicksRemaining())

	rg.m.StopFuse()
	assert.Equal(t, StateIdle, rg.m.State())
	assert.Equal(t, 1, rg.obs.stopped)

	rg.m.StartFuse(false)
	assert.Equal(t, 70, rg.m.TicksRemaining())
	assert.Equal(t, 70, rg.m.TicksTotal())
}

func TestAdvance_DetonatesExactlyOnce(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(90))
	rg.m.StartFuse(false)
	total := rg.m.TicksTotal()

	for i := 0; i < total-1; i++ {
		rg.m.Advance()
		require.False(t, rg.m.Detonated(), "early detonation at step %d", i)
	}
	rg.m.Advance()

	require.True(t, rg.m.Detonated())
	require.Len(t, rg.effects.explosions, 1)
	assert.Equal(t, []core.DestroyMode{core.DestroyKill}, rg.effects.destroyed)
	assert.Equal(t, core.Point{X: 5, Y: 5}, rg.effects.explosions[0].at)
	assert.Equal(t, DamageBomb, rg.effects.explosions[0].kind)
	assert.Equal(t, core.Entity(7), rg.effects.explosions[0].source)

	for range 5 {
		rg.m.Advance()
	}
	rg.m.Detonate()
	assert.Len(t, rg.effects.explosions, 1)
	assert.Equal(t, 1, rg.obs.detonated)
	assert.Equal(t, StateDetonated, rg.m.State())
}

func TestAdvance_IdleIsNoop(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(90))
	for range 200 {
		rg.m.Advance()
	}
	assert.False(t, rg.m.Detonated())
	assert.Empty(t, rg.audio.oneShots)
}

func TestAdvance_ZeroDurationDetonatesOnFirstStep(t *testing.T) {
	p := testProps()
	p.WickTicks = IntRange{Min: 0, Max: 0}
	rg := newRig(t, p, fixedRand(0))
	rg.m.StartFuse(false)
	rg.m.Advance()

	assert.True(t, rg.m.Detonated())
	assert.Equal(t, 0, rg.m.TicksRemaining())
}

func TestAdvance_AudioCues(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(false)

	rg.m.Advance()
	require.Equal(t, []Cue{CueWickStart}, rg.audio.oneShots)
	require.Len(t, rg.audio.loops, 1)
	assert.Equal(t, 0, rg.audio.loops[0].maintained)

	rg.m.Advance()
	rg.m.Advance()
	assert.Equal(t, 2, rg.audio.loops[0].maintained)
	assert.Len(t, rg.audio.oneShots, 1)

	rg.m.StopFuse()
	assert.True(t, rg.audio.loops[0].ended)
}

func TestAdvance_ReplacesLoopEndedElsewhere(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(100))
	rg.m.StartFuse(false)
	rg.m.Advance()
	require.Len(t, rg.audio.loops, 1)

	// A missed sweep ends the loop behind the machine's back
	rg.audio.loops[0].ended = true
	rg.m.Advance()
	require.Len(t, rg.audio.loops, 2)
	assert.False(t, rg.audio.loops[1].ended)
	assert.Equal(t, []Cue{CueWickStart}, rg.audio.oneShots, "start cue plays once per arming")

	// Muted: every step asks again and gets nothing
	rg.audio.mute()
	for range 5 {
		rg.m.Advance()
	}
	assert.Len(t, rg.audio.loops, 2)
	assert.Equal(t, 7, rg.audio.loopRequests)

	rg.audio.muted = false
	rg.m.Advance()
	require.Len(t, rg.audio.loops, 3)
	rg.m.Advance()
	assert.Equal(t, 1, rg.audio.loops[2].maintained)
	assert.Len(t, rg.audio.oneShots, 1)

	rg.m.StopFuse()
	assert.True(t, rg.audio.loops[2].ended)
}

func TestAdvance_SilentFuseMakesNoSound(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(true)
	for range 10 {
		rg.m.Advance()
	}
	assert.Empty(t, rg.audio.oneShots)
	assert.Empty(t, rg.audio.loops)
	assert.False(t, rg.m.ShowsWickOverlay())

	rg.m.StartFuse(false)
	rg.m.Advance()
	assert.Equal(t, []Cue{CueWickStart}, rg.audio.oneShots)
	assert.True(t, rg.m.ShowsWickOverlay())
}

func TestDetonate_EndsLoop(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(false)
	rg.m.Advance()
	rg.m.Detonate()
	assert.True(t, rg.audio.loops[0].ended)
}

func TestDetonate_AlreadyDestroyedHostIsNotDestroyedAgain(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(false)
	rg.m.Advance()
	rg.host.destroyed = true
	rg.host.onGrid = false

	rg.m.Detonate()

	assert.Empty(t, rg.effects.destroyed)
	require.Len(t, rg.effects.explosions, 1)
	assert.Equal(t, core.Point{X: 5, Y: 5}, rg.effects.explosions[0].at, "last known position")
}

func TestDetonate_StackScalesRadius(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.host.stack = 5
	rg.m.Detonate()
	require.Len(t, rg.effects.explosions, 1)
	assert.InDelta(t, 6.41421356, rg.effects.explosions[0].radius, 1e-6)
}

func TestOnDamage_LethalViolenceDetonatesFromAnyState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(m *Machine)
	}{
		{"idle", func(m *Machine) {}},
		{"audible", func(m *Machine) { m.StartFuse(false) }},
		{"silent", func(m *Machine) { m.StartFuse(true) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rg := newRig(t, testProps(), fixedRand(60))
			tt.setup(rg.m)
			rg.m.OnDamage(NewDamage(DamageBullet, 30), 0)
			assert.True(t, rg.m.Detonated())
			assert.Len(t, rg.effects.explosions, 1)
		})
	}
}

func TestOnDamage_LethalNonViolenceDoesNothing(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(true)
	rg.m.OnDamage(NewDamage(DamageDeterioration, 5), 0)
	assert.False(t, rg.m.Detonated())
	assert.Equal(t, StateArmedSilent, rg.m.State(), "lethal branch swallows the stop check")
}

func TestOnDamage_LethalEMPDetonatesSilentFuse(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(true)
	rg.m.OnDamage(NewDamage(DamageEMP, 100), 0)
	assert.True(t, rg.m.Detonated())
}

func TestOnDamage_EMP(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(false)
	rg.m.OnDamage(NewDamage(DamageEMP, 1), 90)
	assert.Equal(t, StateArmedAudible, rg.m.State(), "audible fuse ignores EMP")

	rg = newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(true)
	rg.m.OnDamage(NewDamage(DamageEMP, 1), 90)
	assert.Equal(t, StateIdle, rg.m.State())
}

func TestOnDamage_StunStopsBothVariants(t *testing.T) {
	for _, silent := range []bool{false, true} {
		rg := newRig(t, testProps(), fixedRand(60))
		rg.m.StartFuse(silent)
		rg.m.OnDamage(NewDamage(DamageStun, 0), 100)
		assert.Equal(t, StateIdle, rg.m.State())
	}
}

func TestOnDamage_ThresholdArmsAudibly(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))

	rg.m.OnDamage(NewDamage(DamageBullet, 10), 51)
	assert.Equal(t, StateIdle, rg.m.State())

	rg.m.OnDamage(NewDamage(DamageDeterioration, 10), 40)
	assert.Equal(t, StateIdle, rg.m.State(), "non-violent damage never arms")

	rg.m.OnDamage(NewDamage(DamageBullet, 10), 50)
	assert.Equal(t, StateArmedAudible, rg.m.State())
}

func TestOnDamage_ZeroThresholdNeverArms(t *testing.T) {
	p := testProps()
	p.StartWickHitPointsPercent = 0
	rg := newRig(t, p, fixedRand(60))
	for hp := 100; hp >= 1; hp-- {
		rg.m.OnDamage(NewDamage(DamageBomb, 1), hp)
		require.Equal(t, StateIdle, rg.m.State(), "armed at hp %d", hp)
	}
}

func TestOnDamage_ThresholdRoundingToZero(t *testing.T) {
	p := testProps()
	p.StartWickHitPointsPercent = 0.004
	rg := newRig(t, p, fixedRand(60))
	assert.Equal(t, 0, rg.m.StartThreshold())
	rg.m.OnDamage(NewDamage(DamageBomb, 99), 1)
	assert.Equal(t, StateIdle, rg.m.State())
}

func TestOnDamage_AfterDetonationIgnored(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.Detonate()
	rg.m.OnDamage(NewDamage(DamageStun, 0), 100)
	rg.m.OnDamage(NewDamage(DamageBomb, 0), 0)
	rg.m.StartFuse(false)
	assert.Equal(t, StateDetonated, rg.m.State())
	assert.Len(t, rg.effects.explosions, 1)
}

func TestStartFuse_NotifiesAtArmTime(t *testing.T) {
	sp := newFakeSpatial(20, 20)
	agent := &fakeAgent{id: 50, intel: IntelligenceHumanlike}
	sp.put(core.Point{X: 6, Y: 5}, agent)

	host := newFakeHost()
	effects := &fakeEffects{host: host}
	m := NewMachine(testProps(), host, Deps{
		Effects:  effects,
		Notifier: NewNotifier(sp, 4.5),
		Rand:     fixedRand(60),
	})

	m.StartFuse(true)
	assert.Equal(t, []core.Entity{7}, agent.alerted)

	m.StartFuse(false)
	for range 60 {
		m.Advance()
	}
	assert.True(t, m.Detonated())
	assert.Len(t, agent.alerted, 1, "no second alert on upgrade or detonation")
}

func TestProgress(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(100))
	assert.Zero(t, rg.m.Progress())
	rg.m.StartFuse(false)
	for range 25 {
		rg.m.Advance()
	}
	assert.InDelta(t, 0.25, rg.m.Progress(), 1e-9)
}

func TestRelease_EndsLoopWithoutStopping(t *testing.T) {
	rg := newRig(t, testProps(), fixedRand(60))
	rg.m.StartFuse(false)
	rg.m.Advance()

	rg.m.Release()
	assert.True(t, rg.audio.loops[0].ended)
	assert.Equal(t, 0, rg.obs.stopped)
	assert.Equal(t, StateArmedAudible, rg.m.State())
}
