package eventbus

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	// Подписчик получает опубликованное событие
	bus := NewMemoryBus(16)

	received := make(chan *Envelope, 1)
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		received <- ev
	})
	require.NoError(t, err)

	ev := NewEnvelope(EventBlockPlaced, "world", 1, map[string]string{"x": "1"})
	require.NoError(t, bus.Publish(context.Background(), ev))

	select {
	case got := <-received:
		assert.Equal(t, ev.ID, got.ID)
		assert.Equal(t, EventBlockPlaced, got.EventType)
		assert.Equal(t, "1", got.Metadata["x"])
	case <-time.After(time.Second):
		t.Fatal("Событие не доставлено")
	}
}

func TestMemoryBus_FilterByType(t *testing.T) {
	// Фильтр по типу пропускает только указанные события
	bus := NewMemoryBus(16)

	var placed, removed atomic.Int64
	_, err := bus.Subscribe(context.Background(),
		Filter{Types: []string{EventBlockPlaced}},
		func(ctx context.Context, ev *Envelope) {
			if ev.EventType == EventBlockPlaced {
				placed.Add(1)
			} else {
				removed.Add(1)
			}
		})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewEnvelope(EventBlockPlaced, "world", 1, nil)))
	require.NoError(t, bus.Publish(ctx, NewEnvelope(EventBlockRemoved, "world", 1, nil)))

	assert.Eventually(t, func() bool { return placed.Load() == 1 },
		time.Second, 10*time.Millisecond, "Подходящее событие доставлено")
	assert.Equal(t, int64(0), removed.Load(), "Чужой тип отфильтрован")
}

func TestMemoryBus_Unsubscribe(t *testing.T) {
	// После отписки события не доставляются
	bus := NewMemoryBus(16)

	var count atomic.Int64
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		count.Add(1)
	})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, NewEnvelope(EventChunkGenerated, "world", 0, nil)))
	assert.Eventually(t, func() bool { return count.Load() == 1 }, time.Second, 10*time.Millisecond)

	sub.Unsubscribe()
	require.NoError(t, bus.Publish(ctx, NewEnvelope(EventChunkGenerated, "world", 0, nil)))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), count.Load(), "Отписанный обработчик не вызывается")
}

func TestMemoryBus_BackpressureAccounting(t *testing.T) {
	// Каждая публикация либо принята, либо отброшена — третьего нет
	bus := NewMemoryBus(1)

	ctx := context.Background()
	const total = 1000
	for i := 0; i < total; i++ {
		require.NoError(t, bus.Publish(ctx, NewEnvelope(EventChunkGenerated, "world", 0, nil)))
	}

	stats := bus.Metrics()
	assert.Equal(t, uint64(total), stats.Published+stats.Dropped,
		"Учтена каждая публикация")
	assert.Greater(t, stats.Published, uint64(0), "Часть событий принята")
}

func TestGlobalBus_UninitializedIsNoop(t *testing.T) {
	// Без Init глобальная публикация — no-op без ошибки
	Init(nil)
	err := Publish(context.Background(), NewEnvelope(EventBlockPlaced, "world", 1, nil))
	assert.NoError(t, err)
}

func TestNewEnvelope_FillsIdentity(t *testing.T) {
	// NewEnvelope заполняет ID и время
	a := NewEnvelope(EventBlockPlaced, "world", 3, nil)
	b := NewEnvelope(EventBlockPlaced, "world", 3, nil)

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID, "Идентификаторы уникальны")
	assert.False(t, a.Timestamp.IsZero())
	assert.Equal(t, 3, a.Priority)
}
