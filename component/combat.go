package component

// Role identifies which side a combatant fights for.
type Role int

const (
	RoleHero Role = iota + 1
	RoleEnemy
)

func (r Role) String() string {
	switch r {
	case RoleHero:
		return "hero"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventParrySuccess     CombatEventType = "parry_success"
	EventHit              CombatEventType = "hit"
	EventBlocked          CombatEventType = "blocked"
	EventEvaded           CombatEventType = "evaded"
	EventStaggered        CombatEventType = "staggered"
	EventStaggerRecovered CombatEventType = "stagger_recovered"
	EventDeath            CombatEventType = "died"
	EventAttackStarted    CombatEventType = "attack_started"
	EventParryStarted     CombatEventType = "parry_started"
)

// CombatEvent is emitted during combat resolution. TargetID doubles as the
// subject for single-entity events (staggered, died, attack_started).
type CombatEvent struct {
	Type          CombatEventType
	AttackerID    int
	TargetID      int
	Damage        float64
	PostureDamage float64
	Pattern       string
	AtMs          int64
	PosX          float64
	PosY          float64
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter buffers events for the tick drain and forwards them to
// any synchronous handlers.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler

	pending []CombatEvent
}

// Emit records a combat event and sends it to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil {
		return
	}
	e.pending = append(e.pending, evt)
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Drain returns every buffered event and clears the buffer.
func (e *CombatEventEmitter) Drain() []CombatEvent {
	if e == nil || len(e.pending) == 0 {
		return nil
	}
	out := e.pending
	e.pending = nil
	return out
}

// Since returns a copy of the events buffered after the first n.
func (e *CombatEventEmitter) Since(n int) []CombatEvent {
	if e == nil || n >= len(e.pending) {
		return nil
	}
	if n < 0 {
		n = 0
	}
	return append([]CombatEvent(nil), e.pending[n:]...)
}

// Pending reports how many events are waiting to be drained.
func (e *CombatEventEmitter) Pending() int {
	if e == nil {
		return 0
	}
	return len(e.pending)
}
