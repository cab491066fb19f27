package block_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/voxel-world/internal/world/block"
	_ "github.com/annel0/voxel-world/internal/world/block/implementations"
)

func TestRegistry_BaseBlocksRegistered(t *testing.T) {
	// Все базовые типы блоков зарегистрированы через init
	names := map[block.BlockID]string{
		block.GrassBlockID: "Grass",
		block.SandBlockID:  "Sand",
		block.StoneBlockID: "Stone",
		block.BrickBlockID: "Brick",
	}
	for id, name := range names {
		desc, ok := block.Get(id)
		require.True(t, ok, "Блок %s должен быть зарегистрирован", name)
		assert.Equal(t, id, desc.ID())
		assert.Equal(t, name, desc.Name())
		assert.True(t, block.IsValidBlockID(id))
	}
}

func TestRegistry_AirIsNotRegistered(t *testing.T) {
	// Воздух не хранится и описания не имеет
	_, ok := block.Get(block.AirBlockID)
	assert.False(t, ok, "У воздуха нет описания")
	assert.False(t, block.IsValidBlockID(block.AirBlockID))
}

func TestDescriptor_TextureDataShape(t *testing.T) {
	// Текстурные данные покрывают шесть граней по четыре угла
	for _, id := range []block.BlockID{
		block.GrassBlockID, block.SandBlockID, block.StoneBlockID, block.BrickBlockID,
	} {
		desc, ok := block.Get(id)
		require.True(t, ok)
		data := desc.TextureData()
		assert.Len(t, data, 48, "6 граней x 4 угла x 2 координаты")
		for _, v := range data {
			assert.GreaterOrEqual(t, v, float32(0.0), "Координаты в пределах атласа")
			assert.LessOrEqual(t, v, float32(1.0))
		}
	}
}

func TestAtlasCell_Coords(t *testing.T) {
	// Углы ячейки атласа идут против часовой с левого нижнего
	coords := block.AtlasCell{Row: 1, Column: 2}.Coords()
	expected := []float32{
		0.25, 0.5,
		0.5, 0.5,
		0.5, 0.75,
		0.25, 0.75,
	}
	assert.Equal(t, expected, coords)
}

func TestBuildTextureData_SideRepeatsFourTimes(t *testing.T) {
	// Боковая ячейка повторяется на четырёх боковых гранях
	top := block.AtlasCell{Row: 0, Column: 0}
	bottom := block.AtlasCell{Row: 1, Column: 1}
	side := block.AtlasCell{Row: 2, Column: 2}

	data := block.BuildTextureData(top, bottom, side)
	require.Len(t, data, 48)

	sideCoords := side.Coords()
	for face := 0; face < 4; face++ {
		offset := 16 + face*8
		assert.Equal(t, sideCoords, data[offset:offset+8], "Грань %d", face)
	}
}
