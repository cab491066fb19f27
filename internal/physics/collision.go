package physics

import (
	"github.com/annel0/voxel-world/internal/vec"
)

// MaxOverlap — допустимое перекрытие границы ячейки по каждой оси.
// Меньшие перекрытия не корректируются, чтобы актор не «дребезжал»
// на стыках блоков.
const MaxOverlap = 0.1

// BlockChecker сообщает, занята ли ячейка сетки твёрдым блоком.
// Функция вместо жёсткой зависимости от мира: резолверу всё равно,
// откуда берётся занятость.
type BlockChecker func(vec.Vec3) bool

// Resolve возвращает скорректированную позицию актора, не допуская
// перекрытия с твёрдыми блоками. Актор — колонна 1 x height x 1,
// заякоренная за дискретизированную позицию.
//
// Для каждой оси и каждого направления: если непрерывная координата
// выступает за границу ячейки больше, чем на MaxOverlap, и хотя бы одна
// из height ячеек колонны со смещением на единицу в этом направлении
// занята, позиция отодвигается назад на величину излишка. Это развёртка
// «первая блокирующая ячейка на ось-направление», а не полноценный
// swept-AABB: при большой относительной скорости возможно туннелирование,
// которое вызывающий код гасит дроблением шага (см. cmd/worldsim).
func Resolve(pos vec.Vec3Float, height int, solid BlockChecker) vec.Vec3Float {
	p := [3]float64{pos.X, pos.Y, pos.Z}
	disc := pos.Discretize()
	cell := [3]int{disc.X, disc.Y, disc.Z}

	for axis := 0; axis < 3; axis++ {
		for _, direction := range [2]int{-1, 1} {
			overlap := (p[axis] - float64(cell[axis])) * float64(direction)
			if overlap < MaxOverlap {
				continue
			}
			for dy := 0; dy < height; dy++ {
				probe := cell
				probe[axis] += direction
				probe[1] -= dy
				if solid(vec.Vec3{X: probe[0], Y: probe[1], Z: probe[2]}) {
					p[axis] -= (overlap - MaxOverlap) * float64(direction)
					break
				}
			}
		}
	}

	return vec.Vec3Float{X: p[0], Y: p[1], Z: p[2]}
}
