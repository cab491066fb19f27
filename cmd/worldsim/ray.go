package main

import (
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world"
)

// hitTestStep — шаг трассировки луча в блоках. Мелкий шаг, чтобы не
// проскочить ребро блока.
const hitTestStep = 0.1

// hitTest шагает из origin вдоль direction не дальше maxDistance и
// возвращает первую занятую ячейку вместе с предыдущей (пустой) — той,
// в которую ставился бы новый блок. Действовать можно только когда
// найдены ОБЕ ячейки: и предыдущая, и текущая; до первого шага
// предыдущей ячейки ещё нет, и такой результат не считается попаданием.
func hitTest(w *world.World, origin, direction vec.Vec3Float, maxDistance float64) (previous, hit vec.Vec3, ok bool) {
	var hasPrevious bool
	pos := origin

	steps := int(maxDistance / hitTestStep)
	for i := 0; i < steps; i++ {
		cell := pos.Discretize()
		if w.IsOccupied(cell) {
			if !hasPrevious {
				return vec.Vec3{}, vec.Vec3{}, false
			}
			return previous, cell, true
		}
		if !hasPrevious || !cell.Equals(previous) {
			previous = cell
			hasPrevious = true
		}
		pos = pos.Add(vec.Vec3Float{
			X: direction.X * hitTestStep,
			Y: direction.Y * hitTestStep,
			Z: direction.Z * hitTestStep,
		})
	}

	return vec.Vec3{}, vec.Vec3{}, false
}
