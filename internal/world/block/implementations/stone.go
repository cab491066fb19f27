package implementations

import (
	"github.com/annel0/voxel-world/internal/world/block"
)

// StoneDescriptor описывает блок камня
type StoneDescriptor struct {
	textureData []float32
}

// ID возвращает идентификатор блока
func (d *StoneDescriptor) ID() block.BlockID {
	return block.StoneBlockID
}

// Name возвращает имя блока
func (d *StoneDescriptor) Name() string {
	return "Stone"
}

// TextureData возвращает текстурные координаты граней
func (d *StoneDescriptor) TextureData() []float32 {
	return d.textureData
}

func init() {
	cell := block.AtlasCell{Row: 2, Column: 1}
	block.Register(block.StoneBlockID, &StoneDescriptor{
		textureData: block.BuildTextureData(cell, cell, cell),
	})
}
