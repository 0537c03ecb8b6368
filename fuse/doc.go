// Package fuse implements the timed-detonation behavior of a fused explosive.
//
// A Machine is owned by exactly one host entity. The host calls Advance once
// per simulation step and OnDamage once per damage application; everything
// else (destruction, area effect, audio, spatial queries) is reached through
// the small collaborator interfaces in this package, so the behavior has no
// knowledge of any particular world representation.
//
// State diagram:
//
//	Idle --StartFuse(false)--> ArmedAudible
//	Idle --StartFuse(true)---> ArmedSilent --StartFuse(false)--> ArmedAudible
//	Armed* --StopFuse / Stun / EMP(silent only)--> Idle
//	Armed* --ticks exhausted--> Detonated
//	any --lethal external violence--> Detonated
//
// Detonated is absorbing. Machines are not safe for concurrent use; the host
// drives them from its single simulation thread.
package fuse
