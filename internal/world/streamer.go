package world

import (
	"context"
	"sort"
	"strconv"

	"github.com/annel0/voxel-world/internal/eventbus"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/vec"
)

// LoadAround сверяет чанк точки обзора с текущим и при несовпадении
// выполняет переход. Вызывается раз в кадр до Drain.
func (w *World) LoadAround(viewpoint vec.Vec3Float) {
	newChunk := viewpoint.Discretize().ToChunkCoords()
	if !newChunk.Equals(w.currentChunk) {
		w.changeChunk(newChunk)
	}
}

// changeChunk выполняет переход точки обзора в новый чанк: чанки,
// выпавшие из радиуса видимости, снимаются с отрисовки; вошедшие в
// радиус — генерируются и отрисовываются изнутри наружу, чтобы ближняя
// геометрия появлялась первой. Дополнительно более широкое кольцо
// вокруг нового чанка ставится в очередь только на генерацию — это
// прячет задержку генерации на будущих кадрах.
func (w *World) changeChunk(newChunk vec.Vec3) {
	radius := w.params.VisibilityRadius
	current := visibleSet(w.currentChunk, radius)
	next := visibleSet(newChunk, radius)

	toUndraw := 0
	for chunk := range current {
		if _, ok := next[chunk]; !ok {
			w.undrawChunk(chunk)
			toUndraw++
		}
	}

	toDraw := make([]vec.Vec3, 0, len(next))
	for chunk := range next {
		if _, ok := current[chunk]; !ok {
			toDraw = append(toDraw, chunk)
		}
	}
	// Изнутри наружу: по возрастанию квадрата расстояния до нового чанка.
	sort.Slice(toDraw, func(i, j int) bool {
		return toDraw[i].DistanceSq(newChunk) < toDraw[j].DistanceSq(newChunk)
	})
	for _, chunk := range toDraw {
		w.drawChunk(chunk)
	}

	// Упреждающая генерация: кольцо радиуса radius+margin вокруг нового
	// чанка. GenerateChunk идемпотентна, повторная постановка дёшева.
	margin := radius + w.params.GenerationMargin
	for dx := -margin; dx <= margin; dx++ {
		for dz := -margin; dz <= margin; dz++ {
			chunk := vec.Vec3{X: newChunk.X + dx, Y: 0, Z: newChunk.Z + dz}
			w.genQueue = append(w.genQueue, workItem{op: opGenerateChunk, chunk: chunk})
		}
	}

	logging.LogChunkTransition(w.currentChunk.X, w.currentChunk.Z, newChunk.X, newChunk.Z, len(toDraw), toUndraw)
	_ = eventbus.Publish(context.Background(), eventbus.NewEnvelope(
		eventbus.EventChunkTransition, "world", 1, map[string]string{
			"x": strconv.Itoa(newChunk.X),
			"z": strconv.Itoa(newChunk.Z),
		}))
	w.currentChunk = newChunk
	w.metrics.chunkTransition()
	w.metrics.setQueueDepths(len(w.buildQueue), len(w.genQueue))
}

// visibleSet возвращает множество чанков в квадрате радиуса radius
// вокруг center. Вертикальная ось зафиксирована нулём: мир — один
// слой чанков бесконечной высоты.
func visibleSet(center vec.Vec3, radius int) map[vec.Vec3]struct{} {
	visible := make(map[vec.Vec3]struct{}, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			visible[vec.Vec3{X: center.X + dx, Y: 0, Z: center.Z + dz}] = struct{}{}
		}
	}
	return visible
}

// drawChunk генерирует чанк (если нужно) и ставит в очередь отрисовку
// всех его открытых, ещё не отрисованных блоков.
func (w *World) drawChunk(chunk vec.Vec3) {
	w.GenerateChunk(chunk, true)
	for pos := range w.chunks[chunk] {
		if _, isDrawn := w.drawn[pos]; !isDrawn && w.IsExposed(pos) {
			w.drawBlock(pos, false)
		}
	}
}

// undrawChunk ставит в очередь снятие с отрисовки всех отрисованных
// блоков чанка.
func (w *World) undrawChunk(chunk vec.Vec3) {
	for pos := range w.chunks[chunk] {
		if _, isDrawn := w.drawn[pos]; isDrawn {
			w.undrawBlock(pos, false)
		}
	}
}

// CurrentChunk возвращает чанк, в котором находится точка обзора.
func (w *World) CurrentChunk() vec.Vec3 {
	return w.currentChunk
}
