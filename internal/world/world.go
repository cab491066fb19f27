package world

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/annel0/voxel-world/internal/eventbus"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
	_ "github.com/annel0/voxel-world/internal/world/block/implementations" // регистрация типов блоков
)

// ChunkSize — длина ребра чанка в блоках.
const ChunkSize = 16

// Params содержит настройки стриминга мира.
type Params struct {
	// VisibilityRadius — радиус видимости в чанках вокруг текущего чанка.
	VisibilityRadius int
	// GenerationMargin — дополнительный радиус, в котором ландшафт
	// генерируется заранее, чтобы скрыть задержку генерации при
	// движении точки обзора.
	GenerationMargin int
}

// DefaultParams возвращает настройки по умолчанию.
func DefaultParams() Params {
	return Params{
		VisibilityRadius: 4,
		GenerationMargin: 3,
	}
}

// World — единственный владелец всего изменяемого состояния мира:
// разреженной карты блоков, индекса чанков, множества отрисованных
// позиций, множества сгенерированных чанков и обеих очередей работ.
// Никаких глобальных синглтонов: все компоненты получают *World явно.
//
// Доступ строго однопоточный: мир принадлежит потоку симуляции,
// блокировки не нужны, потому что конкурентного доступа нет.
//
// Известный потолок масштабируемости: blocks и generated только растут,
// далёкие чанки не выгружаются. Выгрузка/сериализация — сознательно
// за рамками ядра.
type World struct {
	// blocks — авторитетная разреженная карта: позиция -> тип блока.
	// Присутствие ключа означает «твёрдый», отсутствие — «воздух».
	blocks map[vec.Vec3]block.BlockID

	// chunks группирует занятые позиции по координатам чанка.
	// Инвариант: позиция лежит ровно в одной корзине тогда и только
	// тогда, когда она есть в blocks.
	chunks map[vec.Vec3]map[vec.Vec3]struct{}

	// drawn — подмножество blocks, представленное геометрией рендерера.
	drawn map[vec.Vec3]struct{}

	// meshes — дескрипторы геометрии, выданные рендерером.
	meshes map[vec.Vec3]MeshHandle

	// generated — чанки, для которых ландшафт уже создан.
	generated map[vec.Vec3]struct{}

	// currentChunk — чанк точки обзора. Начальное значение — страж
	// далеко за пределами любого реального чанка, чтобы первый вызов
	// LoadAround гарантированно вызвал переход.
	currentChunk vec.Vec3

	// Очереди отложенных работ: сборка/разборка геометрии и генерация.
	buildQueue []workItem
	genQueue   []workItem

	gen      *TerrainGenerator
	renderer Renderer
	params   Params
	metrics  *Metrics
}

// NewWorld создаёт мир с указанным генератором ландшафта и рендерером.
func NewWorld(gen *TerrainGenerator, renderer Renderer, params Params) *World {
	if params.VisibilityRadius <= 0 {
		params.VisibilityRadius = DefaultParams().VisibilityRadius
	}
	if params.GenerationMargin < 0 {
		params.GenerationMargin = DefaultParams().GenerationMargin
	}

	return &World{
		blocks:       make(map[vec.Vec3]block.BlockID),
		chunks:       make(map[vec.Vec3]map[vec.Vec3]struct{}),
		drawn:        make(map[vec.Vec3]struct{}),
		meshes:       make(map[vec.Vec3]MeshHandle),
		generated:    make(map[vec.Vec3]struct{}),
		currentChunk: vec.Vec3{X: math.MaxInt32, Y: math.MaxInt32, Z: math.MaxInt32},
		gen:          gen,
		renderer:     renderer,
		params:       params,
	}
}

// SetMetrics подключает экспорт метрик. nil отключает его.
func (w *World) SetMetrics(m *Metrics) {
	w.metrics = m
}

// IsOccupied возвращает, занята ли позиция блоком.
func (w *World) IsOccupied(pos vec.Vec3) bool {
	_, ok := w.blocks[pos]
	return ok
}

// BlockAt возвращает тип блока в позиции, если она занята.
func (w *World) BlockAt(pos vec.Vec3) (block.BlockID, bool) {
	id, ok := w.blocks[pos]
	return id, ok
}

// IsExposed возвращает, открыта ли позиция: есть ли среди шести соседей
// хотя бы один незанятый. Вызывается только для занятых позиций, но от
// занятости самой позиции не зависит.
func (w *World) IsExposed(pos vec.Vec3) bool {
	for _, neighbor := range pos.Neighbors() {
		if !w.IsOccupied(neighbor) {
			return true
		}
	}
	return false
}

// Place добавляет блок в мир с немедленным обновлением видимости.
// Точка входа для явной установки блока (например, игроком).
func (w *World) Place(pos vec.Vec3, id block.BlockID) {
	w.place(pos, id, true)
	publishBlockEvent(eventbus.EventBlockPlaced, pos, id)
}

// Clear удаляет блок из мира с немедленным обновлением видимости.
// Если позиция пуста — ничего не делает.
func (w *World) Clear(pos vec.Vec3) {
	id, occupied := w.BlockAt(pos)
	w.clear(pos, true)
	if occupied {
		publishBlockEvent(eventbus.EventBlockRemoved, pos, id)
	}
}

// publishBlockEvent публикует событие явного изменения блока. Массовые
// изменения генерации ландшафта событий не порождают.
func publishBlockEvent(eventType string, pos vec.Vec3, id block.BlockID) {
	_ = eventbus.Publish(context.Background(), eventbus.NewEnvelope(eventType, "world", 1,
		map[string]string{
			"x":     strconv.Itoa(pos.X),
			"y":     strconv.Itoa(pos.Y),
			"z":     strconv.Itoa(pos.Z),
			"block": strconv.Itoa(int(id)),
		}))
}

// place добавляет блок. Если позиция занята, старый блок сначала
// удаляется тем же путём, что и при явном удалении — никакой тихой
// перезаписи. При urgent видимость позиции и соседей обновляется сразу,
// иначе отрисовку позже выполнит стриминг чанков.
func (w *World) place(pos vec.Vec3, id block.BlockID, urgent bool) {
	if w.IsOccupied(pos) {
		// Занятая позиция сначала освобождается тем же путём, что и при
		// явном удалении.
		w.clear(pos, true)
	}

	w.blocks[pos] = id
	chunk := pos.ToChunkCoords()
	bucket, ok := w.chunks[chunk]
	if !ok {
		bucket = make(map[vec.Vec3]struct{})
		w.chunks[chunk] = bucket
	}
	bucket[pos] = struct{}{}
	w.metrics.blockPlaced()

	if urgent {
		if w.IsExposed(pos) {
			w.drawBlock(pos, true)
		}
		w.redrawNeighbors(pos)
	}
}

// clear удаляет блок, если он есть. Рассинхронизация карты блоков и
// индекса чанков — порча состояния, дальше работать нельзя.
func (w *World) clear(pos vec.Vec3, urgent bool) {
	if !w.IsOccupied(pos) {
		return
	}

	delete(w.blocks, pos)
	chunk := pos.ToChunkCoords()
	bucket, ok := w.chunks[chunk]
	if !ok {
		panic(fmt.Sprintf("world: индекс чанков потерял позицию %v (чанк %v)", pos, chunk))
	}
	if _, ok := bucket[pos]; !ok {
		panic(fmt.Sprintf("world: позиция %v отсутствует в корзине чанка %v", pos, chunk))
	}
	delete(bucket, pos)
	if len(bucket) == 0 {
		delete(w.chunks, chunk)
	}
	w.metrics.blockRemoved()

	if urgent {
		w.undrawBlock(pos, true)
		w.redrawNeighbors(pos)
	}
}

// redrawNeighbors пересматривает видимость шести соседей после
// установки или удаления блока: занятый сосед, переставший быть
// открытым, снимается с отрисовки; ставший открытым — отрисовывается.
func (w *World) redrawNeighbors(pos vec.Vec3) {
	for _, neighbor := range pos.Neighbors() {
		if !w.IsOccupied(neighbor) {
			continue
		}
		if _, isDrawn := w.drawn[neighbor]; isDrawn {
			if !w.IsExposed(neighbor) {
				w.undrawBlock(neighbor, true)
			}
		} else {
			if w.IsExposed(neighbor) {
				w.drawBlock(neighbor, true)
			}
		}
	}
}

// drawBlock помечает позицию отрисованной. Сама геометрия строится
// либо немедленно, либо через очередь сборки.
func (w *World) drawBlock(pos vec.Vec3, urgent bool) {
	w.drawn[pos] = struct{}{}
	if urgent {
		w.buildMesh(pos)
	} else {
		w.buildQueue = append(w.buildQueue, workItem{op: opBuild, pos: pos})
	}
}

// undrawBlock снимает позицию с отрисовки. Для не отрисованной
// позиции — не ошибка, просто ничего не делаем.
func (w *World) undrawBlock(pos vec.Vec3, urgent bool) {
	if _, ok := w.drawn[pos]; !ok {
		return
	}
	delete(w.drawn, pos)
	if urgent {
		w.teardownMesh(pos)
	} else {
		w.buildQueue = append(w.buildQueue, workItem{op: opTeardown, pos: pos})
	}
}

// buildMesh передаёт геометрию позиции рендереру. Отложенный элемент
// очереди мог устареть: блок уже удалён, снят с отрисовки или
// геометрия уже создана — тогда ничего не делаем.
func (w *World) buildMesh(pos vec.Vec3) {
	id, ok := w.blocks[pos]
	if !ok {
		return
	}
	if _, ok := w.drawn[pos]; !ok {
		return
	}
	if _, ok := w.meshes[pos]; ok {
		return
	}
	desc, ok := block.Get(id)
	if !ok {
		return
	}

	handle := w.renderer.SubmitMesh(pos, CubeVertices(pos), desc.TextureData())
	w.meshes[pos] = handle
	w.metrics.meshBuilt()
}

// teardownMesh освобождает геометрию позиции, если позиция всё ещё
// не отрисована: блок могли успеть отрисовать заново, пока элемент
// ждал в очереди.
func (w *World) teardownMesh(pos vec.Vec3) {
	if _, ok := w.drawn[pos]; ok {
		return
	}
	handle, ok := w.meshes[pos]
	if !ok {
		return
	}
	delete(w.meshes, pos)
	w.renderer.ReleaseMesh(handle)
	w.metrics.meshReleased()
}

// BlockCount возвращает число блоков в мире.
func (w *World) BlockCount() int {
	return len(w.blocks)
}

// DrawnCount возвращает число отрисованных позиций.
func (w *World) DrawnCount() int {
	return len(w.drawn)
}
