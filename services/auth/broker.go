package auth

import (
	"sync"

	"salonbook/models"
)

// SessionBroker fans the current session out to observers. Login publishes a
// session, logout publishes nil. State lives here, not in package globals, so
// every consumer sees the same explicit feed.
type SessionBroker struct {
	mu        sync.Mutex
	current   *models.Session
	observers map[int]func(*models.Session)
	nextID    int
}

func NewSessionBroker() *SessionBroker {
	return &SessionBroker{observers: make(map[int]func(*models.Session))}
}

// Observe registers a callback, invokes it immediately with the current
// session and returns an unsubscribe func. Unsubscribe is idempotent.
func (b *SessionBroker) Observe(onChange func(*models.Session)) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.observers[id] = onChange
	current := b.current
	b.mu.Unlock()

	onChange(current)

	return func() {
		b.mu.Lock()
		delete(b.observers, id)
		b.mu.Unlock()
	}
}

// Publish replaces the current session and notifies every observer.
func (b *SessionBroker) Publish(session *models.Session) {
	b.mu.Lock()
	b.current = session
	observers := make([]func(*models.Session), 0, len(b.observers))
	for _, fn := range b.observers {
		observers = append(observers, fn)
	}
	b.mu.Unlock()

	for _, fn := range observers {
		fn(session)
	}
}

// Current returns the last published session, nil when signed out.
func (b *SessionBroker) Current() *models.Session {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
