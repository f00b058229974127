package handle

// Handle is an opaque reference to a host value held for the native side.
// The low bits select a slot and the high bits carry the slot's generation,
// so a handle stops resolving once its slot is released and reused.
// Handle 0 is reserved and always invalid.
type Handle uint32

const (
	slotBits = 24
	slotMask = 1<<slotBits - 1
	// MaxSlots is the number of values a store can hold at once.
	MaxSlots = slotMask
)

func makeHandle(slot int, gen uint8) Handle {
	return Handle(uint32(gen)<<slotBits | uint32(slot+1))
}

// slot returns the zero-based slot index, -1 for handle 0.
func (h Handle) slot() int {
	return int(h&slotMask) - 1
}

func (h Handle) generation() uint8 {
	return uint8(h >> slotBits)
}

// Kind tags what a handle refers to.
type Kind uint8

const (
	KindAny Kind = iota
	// KindHostObject is the host companion of a native object.
	KindHostObject
	// KindHandler is a boxed signal handler closure.
	KindHandler
	// KindValue is an owned value moved across the boundary.
	KindValue
)

func (k Kind) String() string {
	switch k {
	case KindHostObject:
		return "host_object"
	case KindHandler:
		return "handler"
	case KindValue:
		return "value"
	default:
		return "any"
	}
}

// EventType is a handle lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (e EventType) String() string {
	switch e {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	default:
		return "unknown"
	}
}

// Event describes one lifecycle change.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// Dropper is optionally implemented by values that need cleanup when their
// handle is released.
type Dropper interface {
	Drop()
}
