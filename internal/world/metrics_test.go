package world

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

func TestWorld_NilMetricsSafe(t *testing.T) {
	// Мир без метрик работает: все методы безопасны для nil-получателя
	w, _ := newTestWorld(1)
	w.SetMetrics(nil)

	pos := vec.Vec3{X: 0, Y: 0, Z: 0}
	w.Place(pos, block.StoneBlockID)
	w.Clear(pos)
	w.GenerateChunk(vec.Vec3{X: 0, Y: 0, Z: 0}, true)
	assert.Greater(t, w.BlockCount(), 0)
}

func TestWorld_MetricsCounters(t *testing.T) {
	// Счётчики метрик отражают операции мира.
	// NewMetrics регистрируется в глобальном регистре, поэтому вызывается
	// один раз на тестовый процесс.
	w, _ := newTestWorld(1)
	m := NewMetrics()
	w.SetMetrics(m)

	pos := vec.Vec3{X: 100, Y: 100, Z: 100}
	w.Place(pos, block.BrickBlockID)
	w.Clear(pos)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.blocksPlaced), "Одна установка")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.blocksRemoved), "Одно удаление")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.meshesBuilt), "Одна сборка геометрии")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.meshesReleased), "Одно освобождение")

	w.GenerateChunk(vec.Vec3{X: 50, Y: 0, Z: 50}, true)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chunksGenerated), "Один чанк")
	assert.Equal(t, float64(ChunkSize*ChunkSize), testutil.ToFloat64(m.columnsGenerated),
		"Колонок на чанк — квадрат ребра")
}
