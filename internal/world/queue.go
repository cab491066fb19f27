package world

import (
	"time"

	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// workOp — тег отложенной операции.
type workOp uint8

const (
	// opBuild — построить геометрию блока.
	opBuild workOp = iota
	// opTeardown — освободить геометрию блока.
	opTeardown
	// opGenerateChunk — сгенерировать ландшафт чанка (разворачивается
	// в поколоночные элементы в той же очереди).
	opGenerateChunk
	// opGenerateColumn — заполнить одну колонку (x, z) ландшафтом.
	opGenerateColumn
)

// columnParams — аргументы генерации одной колонки. Сглаженность и
// поверхностный блок фиксируются в момент постановки в очередь, чтобы
// результат не зависел от того, когда очередь будет разобрана.
type columnParams struct {
	X, Z       int
	Smoothness float64
	MaxHeight  int
	Surface    block.BlockID
}

// workItem — отложенная единица работы: тег операции плюс аргумент.
// Поставленная работа не отменяется и рано или поздно выполняется;
// API удаления из очереди нет.
type workItem struct {
	op     workOp
	pos    vec.Vec3     // opBuild, opTeardown
	chunk  vec.Vec3     // opGenerateChunk
	column columnParams // opGenerateColumn
}

// Drain разбирает обе очереди не дольше budget: на каждом круге
// берётся по одному элементу из каждой непустой очереди (сначала
// очередь сборки), пока не истечёт бюджет или обе очереди не опустеют.
// Это ограничивает задержку кадра: свежие чанки могут материализоваться
// за несколько кадров, но рендеринг не встаёт.
func (w *World) Drain(budget time.Duration) {
	start := time.Now()
	for time.Since(start) < budget {
		if len(w.buildQueue) == 0 && len(w.genQueue) == 0 {
			break
		}
		if len(w.buildQueue) > 0 {
			item := w.buildQueue[0]
			w.buildQueue = w.buildQueue[1:]
			w.execute(item)
		}
		if len(w.genQueue) > 0 {
			item := w.genQueue[0]
			w.genQueue = w.genQueue[1:]
			w.execute(item)
		}
	}
	w.metrics.setQueueDepths(len(w.buildQueue), len(w.genQueue))
	w.metrics.setWorldSize(len(w.blocks), len(w.drawn))
}

// execute выполняет один элемент работы.
func (w *World) execute(item workItem) {
	switch item.op {
	case opBuild:
		w.buildMesh(item.pos)
	case opTeardown:
		w.teardownMesh(item.pos)
	case opGenerateChunk:
		w.GenerateChunk(item.chunk, false)
	case opGenerateColumn:
		w.generateColumn(item.column)
	default:
		panic("world: неизвестный тег элемента очереди")
	}
}

// PendingWork возвращает текущие длины очередей сборки и генерации.
func (w *World) PendingWork() (build, generation int) {
	return len(w.buildQueue), len(w.genQueue)
}
