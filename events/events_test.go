package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionalBus_FlushDeliversToMainBus(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan MatchRecordedEvent, 1)
	mainBus.Subscribe(EventTypeMatchRecorded, func(ctx context.Context, event Event) {
		if e, ok := event.(MatchRecordedEvent); ok {
			received <- e
		}
	})

	testEvent := MatchRecordedEvent{
		HistoryID:       7,
		Challenger:      "dave",
		Defender:        "sam",
		ChallengerScore: 3,
		DefenderScore:   1,
		ChallengerRank:  2,
		DefenderRank:    4,
		IsLadderGame:    true,
		RanksSwapped:    true,
	}

	transactionalBus.Publish(testEvent)
	assert.Equal(t, 1, transactionalBus.Pending())

	require.NoError(t, transactionalBus.Flush(context.Background()))
	assert.Equal(t, 0, transactionalBus.Pending())

	select {
	case got := <-received:
		assert.Equal(t, testEvent, got)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not received within timeout")
	}
}

func TestTransactionalBus_MultipleEvents(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	var wg sync.WaitGroup
	wg.Add(3)
	var mu sync.Mutex
	seen := map[string]bool{}

	mainBus.Subscribe(EventTypePlayerJoined, func(ctx context.Context, event Event) {
		defer wg.Done()
		if e, ok := event.(PlayerJoinedEvent); ok {
			mu.Lock()
			seen[e.Identity] = true
			mu.Unlock()
		}
	})

	for i, id := range []string{"ann", "bob", "cat"} {
		transactionalBus.Publish(PlayerJoinedEvent{Identity: id, Rank: i + 1})
	}
	require.NoError(t, transactionalBus.Flush(context.Background()))

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all events were delivered")
	}

	assert.True(t, seen["ann"])
	assert.True(t, seen["bob"])
	assert.True(t, seen["cat"])
}

func TestTransactionalBus_Discard(t *testing.T) {
	mainBus := NewBus()
	transactionalBus := NewTransactionalBus(mainBus)

	received := make(chan bool, 1)
	mainBus.SubscribeAll(func(ctx context.Context, event Event) {
		received <- true
	})

	transactionalBus.Publish(PlayerJoinedEvent{Identity: "dave", Rank: 1})
	transactionalBus.Discard()
	require.NoError(t, transactionalBus.Flush(context.Background()))

	select {
	case <-received:
		t.Fatal("event was received despite being discarded")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBus_HandlerPanicIsRecovered(t *testing.T) {
	bus := NewBus()
	delivered := make(chan struct{}, 1)

	bus.Subscribe(EventTypePlayerJoined, func(ctx context.Context, event Event) {
		panic("boom")
	})
	bus.Subscribe(EventTypePlayerJoined, func(ctx context.Context, event Event) {
		delivered <- struct{}{}
	})

	bus.Emit(context.Background(), PlayerJoinedEvent{Identity: "dave"})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler did not run")
	}
}
