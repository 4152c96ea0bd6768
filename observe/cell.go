package observe

import "sync"

// A Cell is an [Observable] that carries a current value.
//
// Subscribing delivers the current value immediately, then every later
// update. A Cell never terminates.
//
// To keep a subscriber's view ordered, Set must not be called concurrently
// with itself.
type Cell[T any] struct {
	mu        sync.Mutex
	value     T
	listeners map[int]Observer[T]
	nextID    int
}

// NewCell creates a new [Cell] with its current value set to v.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Get retrieves the current value of c.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set updates the current value of c and delivers it to every subscriber.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	obs := make([]Observer[T], 0, len(c.listeners))
	for _, o := range c.listeners {
		obs = append(obs, o)
	}
	c.mu.Unlock()

	for _, o := range obs {
		o.OnNext(v)
	}
}

// Update sets the value of c to f(c.Get()) and delivers it to every
// subscriber.
func (c *Cell[T]) Update(f func(v T) T) {
	c.mu.Lock()
	c.value = f(c.value)
	v := c.value
	obs := make([]Observer[T], 0, len(c.listeners))
	for _, o := range c.listeners {
		obs = append(obs, o)
	}
	c.mu.Unlock()

	for _, o := range obs {
		o.OnNext(v)
	}
}

// Subscribe implements the [Observable] interface.
// The current value is delivered to o before Subscribe returns.
func (c *Cell[T]) Subscribe(o Observer[T]) (stop func()) {
	c.mu.Lock()
	if c.listeners == nil {
		c.listeners = make(map[int]Observer[T])
	}
	id := c.nextID
	c.nextID++
	c.listeners[id] = o
	v := c.value
	c.mu.Unlock()

	o.OnNext(v)

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}
