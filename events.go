package invaders

// EventType identifies an observable simulation event.
type EventType uint8

const (
	EventFire        EventType = iota // a bullet was created
	EventEnemyKilled                  // an enemy and a bullet collided and were removed
	EventShift                        // the grid reversed direction and stepped down
	EventWin                          // the last enemy was destroyed
	EventLose                         // an enemy crossed the bottom of the screen
	EventQuit                         // a close request was processed
	eventTypeCount
)

// String returns the event name used in logs.
func (t EventType) String() string {
	switch t {
	case EventFire:
		return "fire"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventShift:
		return "shift"
	case EventWin:
		return "win"
	case EventLose:
		return "lose"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Event carries the data of one simulation event. EnemyID and BulletID are
// zero when not applicable. X and Y hold the position of interest: the new
// bullet for EventFire, the destroyed enemy's center for EventEnemyKilled.
type Event struct {
	Type     EventType
	Tick     uint64
	EnemyID  uint32
	BulletID uint32
	X, Y     float64
}

// EventSink is the interface for an optional event bridge. When set on a
// World, every event is forwarded after the registered handlers ran.
type EventSink interface {
	EmitEvent(event Event)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type handlerRegistry struct {
	byType [eventTypeCount][]eventHandler
	nextID uint32

	// While dispatching, Remove only clears fn; compact drops the cleared
	// entries once the outermost dispatch returns.
	dispatching int
	removed     bool
}

func (r *handlerRegistry) compact() {
	for t, s := range r.byType {
		kept := s[:0]
		for _, h := range s {
			if h.fn != nil {
				kept = append(kept, h)
			}
		}
		clear(s[len(kept):])
		r.byType[t] = kept
	}
	r.removed = false
}

// CallbackHandle allows removing a registered event handler.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters the handler so it no longer fires. Calling Remove more
// than once is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.event >= eventTypeCount {
		return
	}
	s := h.reg.byType[h.event]
	for i := range s {
		if s[i].id == h.id {
			if h.reg.dispatching > 0 {
				s[i].fn = nil
				h.reg.removed = true
				return
			}
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			h.reg.byType[h.event] = s[:len(s)-1]
			return
		}
	}
}

// On registers fn to run whenever an event of type t is emitted. Handlers
// run synchronously inside Advance, in registration order.
func (w *World) On(t EventType, fn func(Event)) CallbackHandle {
	if t >= eventTypeCount || fn == nil {
		return CallbackHandle{}
	}
	w.handlers.nextID++
	id := w.handlers.nextID
	w.handlers.byType[t] = append(w.handlers.byType[t], eventHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &w.handlers, event: t}
}

// SetEventSink sets the optional event bridge. Pass nil to detach.
func (w *World) SetEventSink(sink EventSink) {
	w.sink = sink
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	reg := &w.handlers
	reg.dispatching++
	for _, h := range reg.byType[e.Type] {
		if h.fn != nil {
			h.fn(e)
		}
	}
	reg.dispatching--
	if reg.dispatching == 0 && reg.removed {
		reg.compact()
	}
	if w.sink != nil {
		w.sink.EmitEvent(e)
	}
}
