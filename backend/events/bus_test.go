package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDeliversInOrder(t *testing.T) {
	bus := NewBus()

	var got []Kind
	bus.Subscribe(func(e Event) {
		got = append(got, e.Kind)
	})

	bus.Publish(Event{Kind: KindXPGained, UserID: 1, Amount: 25})
	bus.Publish(Event{Kind: KindLevelUp, UserID: 1, Level: 2})

	assert.Equal(t, []Kind{KindXPGained, KindLevelUp}, got)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsub := bus.Subscribe(func(Event) { calls++ })

	bus.Publish(Event{Kind: KindXPGained})
	unsub()
	bus.Publish(Event{Kind: KindXPGained})

	assert.Equal(t, 1, calls)
}

func TestUnsubscribeIdempotent(t *testing.T) {
	bus := NewBus()

	unsubA := bus.Subscribe(func(Event) {})
	calls := 0
	bus.Subscribe(func(Event) { calls++ })

	unsubA()
	unsubA() // second call must not disturb other subscribers

	bus.Publish(Event{Kind: KindStreakExtended})
	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribersAllReceive(t *testing.T) {
	bus := NewBus()

	a, b := 0, 0
	bus.Subscribe(func(Event) { a++ })
	bus.Subscribe(func(Event) { b++ })

	bus.Publish(Event{Kind: KindAchievementUnlocked, AchievementID: "week-warrior"})

	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}
