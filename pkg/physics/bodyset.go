package physics

// Handle refers to a body stored in a BodySet. The zero Handle never
// resolves. A handle goes stale when its body is removed, even if the slot
// is later reused.
type Handle struct {
	index      uint32
	generation uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

type bodySlot struct {
	body       *RigidBody
	generation uint32
}

// BodySet is the arena that owns every rigid body.
type BodySet struct {
	slots []bodySlot
	free  []uint32
	count int
}

// NewBodySet creates an empty body set.
func NewBodySet() *BodySet {
	return &BodySet{}
}

// Insert stores body and returns its handle.
func (s *BodySet) Insert(body *RigidBody) Handle {
	s.count++
	if n := len(s.free); n > 0 {
		index := s.free[n-1]
		s.free = s.free[:n-1]
		slot := &s.slots[index]
		slot.body = body
		return Handle{index: index, generation: slot.generation}
	}
	s.slots = append(s.slots, bodySlot{body: body, generation: 1})
	return Handle{index: uint32(len(s.slots) - 1), generation: 1}
}

// Get returns the body for h, or false if h is zero or stale.
func (s *BodySet) Get(h Handle) (*RigidBody, bool) {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return nil, false
	}
	slot := s.slots[h.index]
	if slot.body == nil || slot.generation != h.generation {
		return nil, false
	}
	return slot.body, true
}

// Contains reports whether h resolves.
func (s *BodySet) Contains(h Handle) bool {
	_, ok := s.Get(h)
	return ok
}

// Remove deletes the body for h and invalidates every copy of h.
func (s *BodySet) Remove(h Handle) (*RigidBody, bool) {
	body, ok := s.Get(h)
	if !ok {
		return nil, false
	}
	slot := &s.slots[h.index]
	slot.body = nil
	slot.generation++
	s.free = append(s.free, h.index)
	s.count--
	return body, true
}

// Len returns the number of live bodies.
func (s *BodySet) Len() int {
	return s.count
}

// Each calls fn for every live body in slot order.
func (s *BodySet) Each(fn func(Handle, *RigidBody)) {
	for i, slot := range s.slots {
		if slot.body == nil {
			continue
		}
		fn(Handle{index: uint32(i), generation: slot.generation}, slot.body)
	}
}
