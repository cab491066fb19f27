package world

import (
	"context"
	"math/rand"
	"strconv"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/voxel-world/internal/eventbus"
	"github.com/annel0/voxel-world/internal/logging"
	"github.com/annel0/voxel-world/internal/util"
	"github.com/annel0/voxel-world/internal/vec"
	"github.com/annel0/voxel-world/internal/world/block"
)

// Константы биомов: пороги значения биомного шума.
const (
	biomeScale      = 0.02  // Масштаб биомного шума
	desertThreshold = -0.15 // Ниже — песок
	rockyThreshold  = 0.15  // Выше — камень
)

// TerrainGenerator превращает координату чанка в детерминированный
// набор блоков. Высота колонки берётся из фрактального шума, тип
// поверхностного блока — из отдельного биомного канала.
type TerrainGenerator struct {
	noise *util.NoiseField
	biome *perlin.Perlin
	rng   *rand.Rand

	// Octaves, Lacunarity, Gain — параметры фрактальной суммы.
	Octaves    int
	Lacunarity float64
	Gain       float64

	// MaxHeight — верхняя граница высоты ландшафта в блоках.
	MaxHeight int

	// SmoothnessMin/Max — диапазон, из которого на каждый чанк
	// выбирается делитель сглаженности.
	SmoothnessMin int
	SmoothnessMax int
}

// NewTerrainGenerator создаёт генератор для указанного сида.
// rng — источник случайности для поколоночной сглаженности; явная
// инъекция делает воспроизводимость выбором вызывающего кода. При nil
// используется источник, посеянный тем же сидом (мир воспроизводим).
func NewTerrainGenerator(seed int64, rng *rand.Rand) *TerrainGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(seed))
	}

	return &TerrainGenerator{
		noise: util.NewNoiseField(seed),
		// Отдельный канал шума для биомов, смещённый сид — чтобы
		// рельеф и биомы не коррелировали.
		biome:         perlin.NewPerlin(2.0, 2.0, 3, seed+42),
		rng:           rng,
		Octaves:       8,
		Lacunarity:    2.0,
		Gain:          0.5,
		MaxHeight:     10,
		SmoothnessMin: 20,
		SmoothnessMax: 30,
	}
}

// DrawSmoothness выбирает делитель сглаженности для очередного чанка.
// Разброс по чанкам меняет шероховатость рельефа без внешней настройки.
func (g *TerrainGenerator) DrawSmoothness() float64 {
	return float64(g.SmoothnessMin + g.rng.Intn(g.SmoothnessMax-g.SmoothnessMin+1))
}

// HeightAt возвращает высоту колонки (x, z) при данных сглаженности и
// потолке: maxHeight * clamp01(fbm(x/s, z/s, 0)).
func (g *TerrainGenerator) HeightAt(x, z int, smoothness float64, maxHeight int) int {
	h := g.noise.Fbm(float64(x)/smoothness, float64(z)/smoothness, 0, g.Octaves, g.Lacunarity, g.Gain)
	return int(float64(maxHeight) * util.Clamp01(h))
}

// SurfaceAt возвращает тип поверхностного блока колонки (x, z) по
// биомному каналу: песок в «сухих» областях, камень в «скалистых»,
// иначе трава.
func (g *TerrainGenerator) SurfaceAt(x, z int) block.BlockID {
	v := g.biome.Noise2D(float64(x)*biomeScale, float64(z)*biomeScale)
	switch {
	case v < desertThreshold:
		return block.SandBlockID
	case v > rockyThreshold:
		return block.StoneBlockID
	default:
		return block.GrassBlockID
	}
}

// GenerateChunk генерирует ландшафт чанка. Идемпотентна: уже
// сгенерированный чанк — no-op. При urgent колонки заполняются сразу,
// иначе на каждую колонку ставится элемент в очередь генерации.
func (w *World) GenerateChunk(chunk vec.Vec3, urgent bool) {
	if _, ok := w.generated[chunk]; ok {
		return
	}
	w.generated[chunk] = struct{}{}

	baseX := chunk.X * ChunkSize
	baseZ := chunk.Z * ChunkSize
	smoothness := w.gen.DrawSmoothness()

	for x := baseX; x < baseX+ChunkSize; x++ {
		for z := baseZ; z < baseZ+ChunkSize; z++ {
			col := columnParams{
				X:          x,
				Z:          z,
				Smoothness: smoothness,
				MaxHeight:  w.gen.MaxHeight,
				Surface:    w.gen.SurfaceAt(x, z),
			}
			if urgent {
				w.generateColumn(col)
			} else {
				w.genQueue = append(w.genQueue, workItem{op: opGenerateColumn, column: col})
			}
		}
	}

	w.metrics.chunkGenerated()
	logging.LogChunkGenerated(chunk.X, chunk.Z, smoothness, urgent)
	_ = eventbus.Publish(context.Background(), eventbus.NewEnvelope(
		eventbus.EventChunkGenerated, "world", 0, map[string]string{
			"x": strconv.Itoa(chunk.X),
			"z": strconv.Itoa(chunk.Z),
		}))
}

// generateColumn заполняет колонку (x, z) блоками от y=0 до высоты
// из шума включительно. Блоки ставятся без немедленной отрисовки:
// видимые позже отрисует стриминг чанков.
func (w *World) generateColumn(col columnParams) {
	height := w.gen.HeightAt(col.X, col.Z, col.Smoothness, col.MaxHeight)
	for y := 0; y <= height; y++ {
		w.place(vec.Vec3{X: col.X, Y: y, Z: col.Z}, col.Surface, false)
	}
	w.metrics.columnGenerated()
}

// GeneratedChunkCount возвращает число сгенерированных чанков.
func (w *World) GeneratedChunkCount() int {
	return len(w.generated)
}
