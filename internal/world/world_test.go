package world

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// newTestWorld создаёт мир с headless-рендерером и фиксированным rng,
// чтобы тесты были воспроизводимы.
func newTestWorld(seed int64) (*World, *HeadlessRenderer) {
	renderer := NewHeadlessRenderer()
	gen := NewTerrainGenerator(seed, rand.New(rand.NewSource(seed)))
	return NewWorld(gen, renderer, DefaultParams()), renderer
}

func TestWorld_PlaceAndClear(t *testing.T) {
	// Тест базовых операций установки и удаления блока
	w, _ := newTestWorld(1)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	assert.False(t, w.IsOccupied(pos), "Пустой мир не содержит блоков")

	w.Place(pos, block.BrickBlockID)
	assert.True(t, w.IsOccupied(pos), "Позиция должна быть занята после установки")
	id, ok := w.BlockAt(pos)
	require.True(t, ok)
	assert.Equal(t, block.BrickBlockID, id, "Тип блока должен сохраниться")

	w.Clear(pos)
	assert.False(t, w.IsOccupied(pos), "Позиция должна освободиться после удаления")
	_, ok = w.BlockAt(pos)
	assert.False(t, ok)
	assert.Equal(t, 0, w.BlockCount(), "Мир снова пуст")
}

func TestWorld_ClearEmptyIsNoop(t *testing.T) {
	// Удаление из пустой позиции — не ошибка
	w, renderer := newTestWorld(1)
	w.Clear(vec.Vec3{X: 5, Y: 5, Z: 5})
	assert.Equal(t, 0, w.BlockCount())
	assert.Equal(t, 0, renderer.Submitted(), "Геометрия не должна создаваться")
}

func TestWorld_PlaceOverwriteReleasesOldMesh(t *testing.T) {
	// Установка в занятую позицию сначала удаляет старый блок
	w, renderer := newTestWorld(1)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	w.Place(pos, block.GrassBlockID)
	assert.Equal(t, 1, renderer.Submitted())

	w.Place(pos, block.StoneBlockID)
	id, _ := w.BlockAt(pos)
	assert.Equal(t, block.StoneBlockID, id, "Новый тип должен заменить старый")
	assert.Equal(t, 1, renderer.Released(), "Старая геометрия освобождена")
	assert.Equal(t, 1, renderer.LiveMeshes(), "Живая геометрия ровно одна")
	assert.Equal(t, 1, w.BlockCount(), "Блок в позиции один")
}

func TestWorld_IsExposed(t *testing.T) {
	// Позиция открыта, пока хотя бы один из шести соседей свободен
	w, _ := newTestWorld(1)
	center := vec.Vec3{X: 0, Y: 10, Z: 0}

	w.Place(center, block.StoneBlockID)
	assert.True(t, w.IsExposed(center), "Одинокий блок открыт")

	neighbors := center.Neighbors()
	for i, n := range neighbors {
		w.Place(n, block.StoneBlockID)
		if i < len(neighbors)-1 {
			assert.True(t, w.IsExposed(center), "Открыт, пока остаётся свободный сосед")
		}
	}
	assert.False(t, w.IsExposed(center), "Полностью окружённый блок закрыт")
}

func TestWorld_BuryUndrawsCenter(t *testing.T) {
	// Блок, потерявший последнего свободного соседа, снимается с отрисовки
	w, renderer := newTestWorld(1)
	center := vec.Vec3{X: 0, Y: 10, Z: 0}

	w.Place(center, block.StoneBlockID)
	assert.Contains(t, w.drawn, center, "Одинокий блок отрисован")

	for _, n := range center.Neighbors() {
		w.Place(n, block.StoneBlockID)
	}
	assert.NotContains(t, w.drawn, center, "Закопанный блок снят с отрисовки")
	assert.NotContains(t, w.meshes, center, "Геометрия центра освобождена")

	// Удаление одного соседа снова открывает центр
	w.Clear(center.Neighbors()[0])
	assert.Contains(t, w.drawn, center, "Открывшийся блок снова отрисован")
	assert.Equal(t, renderer.Submitted()-renderer.Released(), renderer.LiveMeshes(),
		"Счётчики рендерера согласованы")
}

func TestWorld_PlaceThenClearRestoresNeighbors(t *testing.T) {
	// Установка и последующее удаление возвращают состояние отрисовки соседей
	w, _ := newTestWorld(1)
	a := vec.Vec3{X: 0, Y: 0, Z: 0}
	b := vec.Vec3{X: 1, Y: 0, Z: 0}

	w.Place(a, block.GrassBlockID)
	drawnBefore := make(map[vec.Vec3]struct{})
	for pos := range w.drawn {
		drawnBefore[pos] = struct{}{}
	}

	w.Place(b, block.GrassBlockID)
	assert.Contains(t, w.drawn, a, "Сосед остаётся отрисованным")
	assert.Contains(t, w.drawn, b, "Новый блок отрисован")

	w.Clear(b)
	assert.Equal(t, drawnBefore, w.drawn, "Множество отрисованных вернулось к исходному")
}

func TestWorld_UrgentPlaceSubmitsImmediately(t *testing.T) {
	// Срочная установка создаёт геометрию сразу, без очереди
	w, renderer := newTestWorld(1)
	w.Place(vec.Vec3{X: 0, Y: 0, Z: 0}, block.SandBlockID)

	buildLen, genLen := w.PendingWork()
	assert.Equal(t, 0, buildLen, "Очередь сборки пуста")
	assert.Equal(t, 0, genLen, "Очередь генерации пуста")
	assert.Equal(t, 1, renderer.Submitted(), "SubmitMesh вызван ровно один раз")
}

func TestWorld_DeferredPlaceGoesThroughQueue(t *testing.T) {
	// Несрочная установка откладывает сборку геометрии в очередь
	w, renderer := newTestWorld(1)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	w.place(pos, block.SandBlockID, false)
	assert.True(t, w.IsOccupied(pos), "Блок хранится сразу")
	assert.Equal(t, 0, renderer.Submitted(), "Геометрия ещё не создана")

	// Отрисовку несрочных блоков инициирует стриминг
	w.drawBlock(pos, false)
	buildLen, _ := w.PendingWork()
	assert.Equal(t, 1, buildLen, "В очереди сборки один элемент")

	w.Drain(time.Second)
	assert.Equal(t, 1, renderer.Submitted(), "Геометрия создана после разбора очереди")
}

func TestWorld_StaleBuildItemIsSkipped(t *testing.T) {
	// Устаревший элемент сборки (блок уже удалён) пропускается без паники
	w, renderer := newTestWorld(1)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}

	w.place(pos, block.SandBlockID, false)
	w.drawBlock(pos, false)
	w.clear(pos, true) // удаляем до разбора очереди

	w.Drain(time.Second)
	assert.Equal(t, 0, renderer.Submitted(), "Геометрия удалённого блока не создаётся")
	assert.Equal(t, 0, renderer.LiveMeshes())
}

func BenchmarkWorld_Place(b *testing.B) {
	w, _ := newTestWorld(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Place(vec.Vec3{X: i % 512, Y: i / 512, Z: 0}, block.StoneBlockID)
	}
}

func BenchmarkWorld_IsExposed(b *testing.B) {
	w, _ := newTestWorld(1)
	pos := vec.Vec3{X: 0, Y: 0, Z: 0}
	w.Place(pos, block.StoneBlockID)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = w.IsExposed(pos)
	}
}
