package input

import "github.com/elliotchance/orderedmap/v2"

// Direction is one of the four directions a key can be bound to.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionDown
	DirectionLeft
	DirectionRight
)

// String ...
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	}
	return "unknown"
}

// axis returns the intent axis the direction writes to and the value it writes.
func (d Direction) axis() (horizontal bool, value float64) {
	switch d {
	case DirectionUp:
		return false, -1
	case DirectionDown:
		return false, 1
	case DirectionLeft:
		return true, -1
	default:
		return true, 1
	}
}

// DefaultBindings returns the arrow keys followed by WASD. Key names follow the DOM KeyboardEvent
// code convention.
func DefaultBindings() *orderedmap.OrderedMap[string, Direction] {
	b := orderedmap.NewOrderedMap[string, Direction]()
	b.Set("ArrowUp", DirectionUp)
	b.Set("ArrowDown", DirectionDown)
	b.Set("ArrowLeft", DirectionLeft)
	b.Set("ArrowRight", DirectionRight)
	b.Set("KeyW", DirectionUp)
	b.Set("KeyS", DirectionDown)
	b.Set("KeyA", DirectionLeft)
	b.Set("KeyD", DirectionRight)
	return b
}

// Bind binds a key to a direction, replacing any previous binding for that key.
func (m *Mapper) Bind(key string, d Direction) {
	m.bindingMu.Lock()
	m.bindings.Set(key, d)
	m.bindingMu.Unlock()
}

// Keys returns every bound key in binding order.
func (m *Mapper) Keys() []string {
	m.bindingMu.RLock()
	defer m.bindingMu.RUnlock()
	return m.bindings.Keys()
}

// Binding returns the direction bound to key.
func (m *Mapper) Binding(key string) (Direction, bool) {
	m.bindingMu.RLock()
	defer m.bindingMu.RUnlock()
	return m.bindings.Get(key)
}

// KeyDown sets the axis bound to key to its active value. It returns false if the key is unbound.
func (m *Mapper) KeyDown(key string) bool {
	d, ok := m.Binding(key)
	if !ok {
		return false
	}
	horizontal, value := d.axis()
	if horizontal {
		m.x.Store(value)
	} else {
		m.z.Store(value)
	}
	return true
}

// KeyUp resets the axis bound to key, but only while that axis still holds the value the key
// wrote. Releasing a key while the opposite key is held leaves the axis untouched.
func (m *Mapper) KeyUp(key string) bool {
	d, ok := m.Binding(key)
	if !ok {
		return false
	}
	horizontal, value := d.axis()
	if horizontal {
		m.x.CompareAndSwap(value, 0)
	} else {
		m.z.CompareAndSwap(value, 0)
	}
	return true
}
