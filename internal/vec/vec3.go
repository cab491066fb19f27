package vec

import "math"

// Vec3 представляет позицию ячейки воксельной сетки с целочисленными координатами.
// Значение хэшируемо и используется как ключ в картах мира.
type Vec3 struct {
	X int
	Y int
	Z int
}

// Vec3Float представляет непрерывную позицию (например, актора или камеры).
type Vec3Float struct {
	X float64
	Y float64
	Z float64
}

// ToChunkCoords преобразует глобальную позицию блока в координаты чанка.
// Чанки бесконечны по вертикали, поэтому Y всегда схлопывается в 0.
func (v Vec3) ToChunkCoords() Vec3 {
	return Vec3{X: v.X >> 4, Y: 0, Z: v.Z >> 4} // Деление на 16 с округлением вниз
}

// Neighbors возвращает шесть соседей по осям (без диагоналей).
func (v Vec3) Neighbors() [6]Vec3 {
	return [6]Vec3{
		{X: v.X - 1, Y: v.Y, Z: v.Z},
		{X: v.X + 1, Y: v.Y, Z: v.Z},
		{X: v.X, Y: v.Y - 1, Z: v.Z},
		{X: v.X, Y: v.Y + 1, Z: v.Z},
		{X: v.X, Y: v.Y, Z: v.Z - 1},
		{X: v.X, Y: v.Y, Z: v.Z + 1},
	}
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Equals проверяет равенство векторов
func (v Vec3) Equals(other Vec3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}

// DistanceSq возвращает квадрат евклидова расстояния до другого вектора.
// Для сортировки по удалённости корень не нужен.
func (v Vec3) DistanceSq(other Vec3) int {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}

// ToFloat преобразует позицию ячейки в непрерывную позицию её центра.
func (v Vec3) ToFloat() Vec3Float {
	return Vec3Float{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// Discretize возвращает ячейку сетки, содержащую непрерывную позицию.
// Округление до ближайшего целого, половины — от нуля.
func (v Vec3Float) Discretize() Vec3 {
	return Vec3{
		X: int(math.Round(v.X)),
		Y: int(math.Round(v.Y)),
		Z: int(math.Round(v.Z)),
	}
}

// Add складывает два вектора
func (v Vec3Float) Add(other Vec3Float) Vec3Float {
	return Vec3Float{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}
