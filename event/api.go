package event

import (
	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

// EmitAttack queues a pooled attack request
// The consumer (CombatSystem) releases the payload after handling
func EmitAttack(q *EventQueue, target, source core.Entity, d fuse.Damage, frame int64) {
	q.Push(GameEvent{
		Type:    EventAttackRequest,
		Payload: AcquireAttackRequest(target, source, d),
		Frame:   frame,
	})
}

// EmitFuseCommand queues an explicit fuse order
func EmitFuseCommand(q *EventQueue, target core.Entity, cmd FuseCommand, frame int64) {
	q.Push(GameEvent{
		Type:    EventFuseCommand,
		Payload: &FuseCommandPayload{Target: target, Command: cmd},
		Frame:   frame,
	})
}

// Pattern 1: Blast damage (ExplosionSystem, one request per target)
// event.EmitAttack(w.Events(), target, source, fuse.NewDamage(kind, amount), w.FrameNumber())
//
// Pattern 2: Sandbox order
// event.EmitFuseCommand(w.Events(), entity, event.FuseArmSilent, w.FrameNumber())
