package event

import (
	"sync"

	"github.com/lixenwraith/wick/core"
	"github.com/lixenwraith/wick/fuse"
)

var attackRequestPool = sync.Pool{
	New: func() any {
		return &AttackRequestPayload{}
	},
}

// AcquireAttackRequest returns a pooled payload
func AcquireAttackRequest(target, source core.Entity, d fuse.Damage) *AttackRequestPayload {
	p := attackRequestPool.Get().(*AttackRequestPayload)
	p.Target = target
	p.Source = source
	p.Damage = d
	return p
}

// ReleaseAttackRequest returns payload to pool
func ReleaseAttackRequest(p *AttackRequestPayload) {
	if p == nil {
		return
	}
	*p = AttackRequestPayload{}
	attackRequestPool.Put(p)
}
