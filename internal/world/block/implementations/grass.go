package implementations

import (
	"github.com/annel0/voxel-world/internal/world/block"
)

// GrassDescriptor описывает блок травы
type GrassDescriptor struct {
	textureData []float32
}

// ID возвращает идентификатор блока
func (d *GrassDescriptor) ID() block.BlockID {
	return block.GrassBlockID
}

// Name возвращает имя блока
func (d *GrassDescriptor) Name() string {
	return "Grass"
}

// TextureData возвращает текстурные координаты граней
func (d *GrassDescriptor) TextureData() []float32 {
	return d.textureData
}

func init() {
	block.Register(block.GrassBlockID, &GrassDescriptor{
		textureData: block.BuildTextureData(
			block.AtlasCell{Row: 1, Column: 0}, // верх — трава
			block.AtlasCell{Row: 0, Column: 1}, // низ — земля
			block.AtlasCell{Row: 0, Column: 0}, // бока — земля с травой
		),
	})
}
