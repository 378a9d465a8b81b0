package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_DeliversToSubscriber(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(10)

	err := bus.Publish(context.Background(), written(1, "/movies/Heat (1995)/Heat (1995).nfo"))
	require.NoError(t, err)

	select {
	case e := <-ch:
		w, ok := e.(*SidecarWritten)
		require.True(t, ok)
		assert.Equal(t, "/movies/Heat (1995)/Heat (1995).nfo", w.Path)
		assert.Equal(t, "kodi", w.Dialect)
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestBus_PersistsToLog(t *testing.T) {
	db := setupTestDB(t)
	log := NewEventLog(db)
	bus := NewBus(log, nil)
	defer bus.Close()

	err := bus.Publish(context.Background(), written(7, "/movies/a.nfo"))
	require.NoError(t, err)

	events, err := log.Recent(1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, EventSidecarWritten, events[0].EventType)
	assert.Equal(t, int64(7), events[0].EntityID)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(10)
	bus.Unsubscribe(ch)

	// Publishing with no subscribers must not block.
	err := bus.Publish(context.Background(), written(1, "/movies/a.nfo"))
	require.NoError(t, err)

	_, open := <-ch
	assert.False(t, open, "channel should be closed")
}

func TestBus_FullSubscriberDropsNotBlocks(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(1)

	require.NoError(t, bus.Publish(context.Background(), written(1, "/movies/a.nfo")))
	// Buffer is full now; this one is dropped instead of blocking the sync.
	require.NoError(t, bus.Publish(context.Background(), written(2, "/movies/b.nfo")))

	first := <-ch
	assert.Equal(t, int64(1), first.EntityID())
	select {
	case e := <-ch:
		t.Fatalf("expected second event dropped, got %v", e.EntityID())
	default:
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus(nil, nil)
	defer bus.Close()

	ch := bus.Subscribe(100)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = bus.Publish(context.Background(), written(int64(n), "/movies/x.nfo"))
		}(i)
	}
	wg.Wait()

	count := 0
	timeout := time.After(time.Second)
loop:
	for {
		select {
		case <-ch:
			count++
			if count == 10 {
				break loop
			}
		case <-timeout:
			break loop
		}
	}
	assert.Equal(t, 10, count)
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, nil)
	ch := bus.Subscribe(10)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), written(1, "/movies/a.nfo"))
	require.NoError(t, err)

	_, open := <-ch
	assert.False(t, open, "channel should be closed")
}
