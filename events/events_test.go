package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_EmitReachesSubscribers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var mu sync.Mutex
	var received []Event
	var wg sync.WaitGroup

	wg.Add(2)
	for i := 0; i < 2; i++ {
		bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
			mu.Lock()
			received = append(received, event)
			mu.Unlock()
			wg.Done()
		})
	}

	event := LevelUpEvent{Username: "alice", NewLevel: 2, ChannelID: "chan-1"}
	bus.Emit(ctx, event)

	waitTimeout(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 2)
	assert.Equal(t, event, received[0])
}

func TestBus_EmitOnlyMatchingType(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)

	levelUps := 0
	bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		levelUps++
		wg.Done()
	})

	created := 0
	bus.Subscribe(EventTypeUserCreated, func(ctx context.Context, event Event) {
		created++
	})

	bus.Emit(ctx, LevelUpEvent{Username: "alice", NewLevel: 1})
	waitTimeout(t, &wg)

	assert.Equal(t, 1, levelUps)
	assert.Equal(t, 0, created)
}

func TestBus_PanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)

	bus.Subscribe(EventTypeWagerResolved, func(ctx context.Context, event Event) {
		panic("handler blew up")
	})
	bus.Subscribe(EventTypeWagerResolved, func(ctx context.Context, event Event) {
		wg.Done()
	})

	bus.Emit(ctx, WagerResolvedEvent{Username: "alice"})
	waitTimeout(t, &wg)
}

func TestTransactionalBus_FlushDeliversPending(t *testing.T) {
	bus := NewBus()

	var wg sync.WaitGroup
	wg.Add(1)

	var mu sync.Mutex
	var received []Event
	bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		mu.Lock()
		received = append(received, event)
		mu.Unlock()
		wg.Done()
	})

	txBus := NewTransactionalBus(bus)
	event := LevelUpEvent{Username: "alice", NewLevel: 3}
	txBus.Publish(event)

	// Nothing reaches the bus until the work commits.
	mu.Lock()
	assert.Empty(t, received)
	mu.Unlock()

	txBus.Flush()
	waitTimeout(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []Event{event}, received)
}

func TestTransactionalBus_DiscardDropsPending(t *testing.T) {
	bus := NewBus()

	delivered := 0
	bus.Subscribe(EventTypeLevelUp, func(ctx context.Context, event Event) {
		delivered++
	})

	txBus := NewTransactionalBus(bus)
	txBus.Publish(LevelUpEvent{Username: "alice", NewLevel: 1})
	txBus.Discard()
	txBus.Flush()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, delivered)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}
