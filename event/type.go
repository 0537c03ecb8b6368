package event

// EventType represents the type of game event
type EventType int

const (
	// EventWorldReset clears every entity and system state
	// Trigger: Sandbox reset, save load | Consumer: all systems | Payload: nil
	EventWorldReset EventType = iota + 1

	// EventAttackRequest applies damage to one entity
	// Trigger: ExplosionSystem, sandbox input
	// Consumer: CombatSystem | Payload: *AttackRequestPayload
	EventAttackRequest

	// EventExplosionRequest spawns an area effect
	// Trigger: fuse detonation (engine.worldEffects.Explode)
	// Consumer: ExplosionSystem | Payload: *ExplosionRequestPayload
	EventExplosionRequest

	// EventDeathRequest removes an entity from the world
	// Trigger: fuse detonation, CombatSystem at 0 hp
	// Consumer: DeathSystem | Payload: *DeathRequestPayload
	EventDeathRequest

	// EventFuseCommand arms or disarms a fuse by explicit order
	// Trigger: sandbox input | Consumer: FuseSystem | Payload: *FuseCommandPayload
	EventFuseCommand

	// EventFuseAlert warns an agent that a dangerous fuse was lit nearby
	// Trigger: fuse.Notifier via engine agent view
	// Consumer: AlertSystem | Payload: *FuseAlertPayload
	EventFuseAlert

	// EventMetaSystemCommandRequest enables or disables a system by name
	// Trigger: sandbox input | Consumer: all systems | Payload: *MetaSystemCommandPayload
	EventMetaSystemCommandRequest
)

// GameEvent is a single queued event, stamped with the producing frame
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
