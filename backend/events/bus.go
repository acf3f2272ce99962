// Package events is the typed notification bus: goal completion fanout
// for toasts, level-up banners and achievement popups, with an explicit
// subscribe/unsubscribe lifecycle.
package events

import "sync"

type Kind string

const (
	KindXPGained            Kind = "xp_gained"
	KindLevelUp             Kind = "level_up"
	KindAchievementUnlocked Kind = "achievement_unlocked"
	KindStreakExtended      Kind = "streak_extended"
)

// Event is one notification. Fields are filled per kind: Amount for XP,
// Level for level-ups, AchievementID for unlocks, Streak for streaks.
type Event struct {
	Kind          Kind
	UserID        uint
	Amount        int
	Level         int
	AchievementID string
	Streak        int
}

// Bus delivers events synchronously, in publish order, to every
// subscriber registered at publish time.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Event))}
}

// Subscribe registers a handler and returns its cancel function, which
// is safe to call more than once.
func (b *Bus) Subscribe(fn func(Event)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish hands the event to every current subscriber before returning.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]func(Event), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(e)
	}
}
