package event

import "fmt"

var typeNames = map[EventType]string{
	EventWorldReset:       "WorldReset",
	EventAttackRequest:    "AttackRequest",
	EventExplosionRequest: "ExplosionRequest",
	EventDeathRequest:     "DeathRequest",
	EventFuseCommand:      "FuseCommand",
	EventFuseAlert:        "FuseAlert",

	EventMetaSystemCommandRequest: "MetaSystemCommandRequest",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// ParseEventType resolves a name as printed by String
func ParseEventType(name string) (EventType, bool) {
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
