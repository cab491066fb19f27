package util

import (
	"math"
	"math/rand"
)

// referencePerm — эталонная таблица перестановок из 256 элементов.
// При seed == 0 используется как есть, иначе перемешивается.
var referencePerm = [256]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148, 247,
	120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32, 57,
	177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229,
	122, 60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102,
	143, 54, 65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208,
	89, 18, 169, 200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198,
	173, 186, 3, 64, 52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118,
	126, 255, 82, 85, 212, 207, 206, 59, 227, 47, 16, 58, 17, 182, 189,
	28, 42, 223, 183, 170, 213, 119, 248, 152, 2, 44, 154, 163, 70, 221,
	153, 101, 155, 167, 43, 172, 9, 129, 22, 39, 253, 19, 98, 108, 110,
	79, 113, 224, 232, 178, 185, 112, 104, 218, 246, 97, 228, 251, 34, 242,
	193, 238, 210, 144, 12, 191, 179, 162, 241, 81, 51, 145, 235, 249, 14,
	239, 107, 49, 192, 214, 31, 181, 199, 106, 157, 184, 84, 204, 176,
	115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93, 222, 114, 67,
	29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// NoiseField — детерминированный решётчатый градиентный шум в 3D.
// Чистая функция координат: одинаковая тройка всегда даёт одинаковый
// результат в диапазоне примерно [-1, 1]. Внутреннее состояние после
// создания не изменяется.
type NoiseField struct {
	// Таблица удвоена до 512 элементов, чтобы не проверять границы
	// при обращениях вида p[A+1].
	p [512]int
}

// NewNoiseField создаёт поле шума для указанного сида.
// seed == 0 сохраняет эталонную таблицу перестановок.
func NewNoiseField(seed int64) *NoiseField {
	var perm [256]int
	copy(perm[:], referencePerm[:])

	if seed != 0 {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
	}

	nf := &NoiseField{}
	for i := 0; i < 256; i++ {
		nf.p[i] = perm[i]
		nf.p[256+i] = perm[i]
	}
	return nf
}

// Noise возвращает значение шума в точке (x, y, z).
// Трилинейная интерполяция градиентов восьми углов ячейки решётки.
func (n *NoiseField) Noise(x, y, z float64) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	fz := math.Floor(z)

	X := int(fx) & 255
	Y := int(fy) & 255
	Z := int(fz) & 255

	x -= fx
	y -= fy
	z -= fz

	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := n.p[X] + Y
	aa := n.p[a] + Z
	ab := n.p[a+1] + Z
	b := n.p[X+1] + Y
	ba := n.p[b] + Z
	bb := n.p[b+1] + Z

	return lerp(w,
		lerp(v,
			lerp(u, grad(n.p[aa], x, y, z), grad(n.p[ba], x-1, y, z)),
			lerp(u, grad(n.p[ab], x, y-1, z), grad(n.p[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad(n.p[aa+1], x, y, z-1), grad(n.p[ba+1], x-1, y, z-1)),
			lerp(u, grad(n.p[ab+1], x, y-1, z-1), grad(n.p[bb+1], x-1, y-1, z-1))))
}

// Fbm возвращает фрактальную сумму шума: octaves октав, амплитуда
// умножается на gain, частота — на lacunarity после каждой октавы.
// При octaves == 1 результат равен одному вызову Noise с амплитудой 1.0.
func (n *NoiseField) Fbm(x, y, z float64, octaves int, lacunarity, gain float64) float64 {
	amplitude := 1.0
	frequency := 1.0
	accum := 0.0
	for i := 0; i < octaves; i++ {
		accum += amplitude * n.Noise(x*frequency, y*frequency, z*frequency)
		amplitude *= gain
		frequency *= lacunarity
	}
	return accum
}

// fade — кубическая кривая сглаживания 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad выбирает один из 12 градиентов куба по младшим битам хэша
// и возвращает его скалярное произведение с (x, y, z).
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := y
	if h < 8 {
		u = x
	}
	v := z
	if h < 4 {
		v = y
	} else if h == 12 || h == 14 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Clamp01 ограничивает значение отрезком [0, 1].
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
