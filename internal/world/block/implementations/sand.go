package implementations

import (
	"github.com/annel0/voxel-world/internal/world/block"
)

// SandDescriptor описывает блок песка
type SandDescriptor struct {
	textureData []float32
}

// ID возвращает идентификатор блока
func (d *SandDescriptor) ID() block.BlockID {
	return block.SandBlockID
}

// Name возвращает имя блока
func (d *SandDescriptor) Name() string {
	return "Sand"
}

// TextureData возвращает текстурные координаты граней
func (d *SandDescriptor) TextureData() []float32 {
	return d.textureData
}

func init() {
	cell := block.AtlasCell{Row: 1, Column: 1}
	block.Register(block.SandBlockID, &SandDescriptor{
		textureData: block.BuildTextureData(cell, cell, cell),
	})
}
