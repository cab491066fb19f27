package world

import (
	"github.com/google/uuid"

	"github.com/annel0/voxel-world/internal/vec"
)

// MeshHandle — непрозрачный идентификатор геометрии, выданный рендерером.
type MeshHandle uuid.UUID

// Renderer представляет границу с рендерером. Ядро мира никогда не
// обращается к GPU напрямую: оно лишь сообщает, какую геометрию добавить
// или убрать. SubmitMesh вызывается ровно один раз на каждую отрисованную
// позицию, ReleaseMesh — ровно один раз при снятии позиции с отрисовки.
type Renderer interface {
	// SubmitMesh передаёт рендереру вершины и текстурные координаты
	// куба в указанной позиции и возвращает дескриптор геометрии.
	SubmitMesh(pos vec.Vec3, vertices, texCoords []float32) MeshHandle

	// ReleaseMesh освобождает ранее выданную геометрию.
	ReleaseMesh(handle MeshHandle)
}

// CubeSize — половина ребра куба: вершины строятся вокруг центра ячейки.
const CubeSize = 0.5

// CubeVertices возвращает 24 вершины куба с центром в pos.
// Порядок граней: верх, низ, лево, право, перед, зад.
func CubeVertices(pos vec.Vec3) []float32 {
	x := float32(pos.X)
	y := float32(pos.Y)
	z := float32(pos.Z)
	s := float32(CubeSize)

	return []float32{
		// верх
		x - s, y + s, z - s, x - s, y + s, z + s, x + s, y + s, z + s, x + s, y + s, z - s,
		// низ
		x - s, y - s, z - s, x + s, y - s, z - s, x + s, y - s, z + s, x - s, y - s, z + s,
		// лево
		x - s, y - s, z - s, x - s, y - s, z + s, x - s, y + s, z + s, x - s, y + s, z - s,
		// право
		x + s, y - s, z + s, x + s, y - s, z - s, x + s, y + s, z - s, x + s, y + s, z + s,
		// перед
		x - s, y - s, z + s, x + s, y - s, z + s, x + s, y + s, z + s, x - s, y + s, z + s,
		// зад
		x + s, y - s, z - s, x - s, y - s, z - s, x - s, y + s, z - s, x + s, y + s, z - s,
	}
}

// HeadlessRenderer — рендерер без GPU для тестов и инструментов.
// Выдаёт уникальные дескрипторы и считает живую геометрию.
type HeadlessRenderer struct {
	live      map[MeshHandle]vec.Vec3
	submitted int
	released  int
}

// NewHeadlessRenderer создаёт пустой headless-рендерер.
func NewHeadlessRenderer() *HeadlessRenderer {
	return &HeadlessRenderer{
		live: make(map[MeshHandle]vec.Vec3),
	}
}

// SubmitMesh регистрирует геометрию и возвращает новый дескриптор.
func (r *HeadlessRenderer) SubmitMesh(pos vec.Vec3, vertices, texCoords []float32) MeshHandle {
	handle := MeshHandle(uuid.New())
	r.live[handle] = pos
	r.submitted++
	return handle
}

// ReleaseMesh освобождает дескриптор. Повторное освобождение —
// ошибка программирования на стороне ядра.
func (r *HeadlessRenderer) ReleaseMesh(handle MeshHandle) {
	if _, ok := r.live[handle]; !ok {
		panic("world: ReleaseMesh для неизвестного дескриптора")
	}
	delete(r.live, handle)
	r.released++
}

// LiveMeshes возвращает количество не освобождённой геометрии.
func (r *HeadlessRenderer) LiveMeshes() int {
	return len(r.live)
}

// Submitted возвращает общее число вызовов SubmitMesh.
func (r *HeadlessRenderer) Submitted() int {
	return r.submitted
}

// Released возвращает общее число вызовов ReleaseMesh.
func (r *HeadlessRenderer) Released() int {
	return r.released
}
