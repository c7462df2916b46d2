// Package events implements a small named-event publisher.
//
// Listeners registered for the same name are invoked synchronously, in registration
// order, with the arguments passed to Fire. The zero Emitter is ready to use.
package events

import "sync"

// Listener receives the arguments of a fired event.
type Listener func(args ...any)

// Subscription identifies a single registration and is used to remove it.
type Subscription struct {
	name string
	id   uint64
}

// Name returns the event name the subscription was registered for.
func (s Subscription) Name() string {
	return s.name
}

type entry struct {
	id uint64
	fn Listener
}

// Emitter keeps the listeners of every event name.
type Emitter struct {
	mu        sync.Mutex
	nextID    uint64
	listeners map[string][]entry
}

// On registers fn for the named event.
func (e *Emitter) On(name string, fn Listener) Subscription {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.listeners == nil {
		e.listeners = make(map[string][]entry)
	}

	e.nextID++
	e.listeners[name] = append(e.listeners[name], entry{id: e.nextID, fn: fn})
	return Subscription{name: name, id: e.nextID}
}

// Off removes a registration. It reports false when the subscription was not active.
func (e *Emitter) Off(sub Subscription) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := e.listeners[sub.name]
	for i, l := range list {
		if l.id != sub.id {
			continue
		}

		// copy so that a Fire in progress keeps iterating its own snapshot
		next := make([]entry, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(e.listeners, sub.name)
		} else {
			e.listeners[sub.name] = next
		}
		return true
	}

	return false
}

// Clear removes every listener of the named event.
func (e *Emitter) Clear(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, name)
}

// Listeners returns the number of listeners registered for the named event.
func (e *Emitter) Listeners(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[name])
}

// Fire invokes the listeners of the named event with args.
// Listeners run outside the emitter lock and may register or remove listeners;
// such changes take effect from the next Fire.
func (e *Emitter) Fire(name string, args ...any) {
	e.mu.Lock()
	snapshot := e.listeners[name]
	e.mu.Unlock()

	for _, l := range snapshot {
		l.fn(args...)
	}
}
