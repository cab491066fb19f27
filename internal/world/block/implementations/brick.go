package implementations

import (
	"github.com/annel0/voxel-world/internal/world/block"
)

// BrickDescriptor описывает блок кирпича
type BrickDescriptor struct {
	textureData []float32
}

// ID возвращает идентификатор блока
func (d *BrickDescriptor) ID() block.BlockID {
	return block.BrickBlockID
}

// Name возвращает имя блока
func (d *BrickDescriptor) Name() string {
	return "Brick"
}

// TextureData возвращает текстурные координаты граней
func (d *BrickDescriptor) TextureData() []float32 {
	return d.textureData
}

func init() {
	cell := block.AtlasCell{Row: 2, Column: 0}
	block.Register(block.BrickBlockID, &BrickDescriptor{
		textureData: block.BuildTextureData(cell, cell, cell),
	})
}
