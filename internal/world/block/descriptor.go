package block

// Descriptor описывает тип блока для отрисовки. Блоки — неизменяемые
// значения: описание содержит только имя и координаты текстур в атласе,
// никакого изменяемого состояния у типа блока нет.
type Descriptor interface {
	// ID возвращает идентификатор типа блока.
	ID() BlockID

	// Name возвращает имя типа блока.
	Name() string

	// TextureData возвращает текстурные координаты всех шести граней
	// куба в порядке верх, низ, четыре боковые грани (48 значений).
	TextureData() []float32
}

// AtlasStep — доля атласа, приходящаяся на одну ячейку (атлас 4x4).
const AtlasStep = 0.25

// AtlasCell — адрес ячейки (ряд, колонка) в текстурном атласе.
type AtlasCell struct {
	Row    int
	Column int
}

// Coords возвращает координаты четырёх углов ячейки атласа:
// левый нижний, правый нижний, правый верхний, левый верхний.
func (c AtlasCell) Coords() []float32 {
	x := float32(c.Row) * AtlasStep
	y := float32(c.Column) * AtlasStep
	s := float32(AtlasStep)
	return []float32{
		x, y, // левый нижний
		x + s, y, // правый нижний
		x + s, y + s, // правый верхний
		x, y + s, // левый верхний
	}
}

// BuildTextureData собирает текстурные координаты куба из ячеек для
// верхней, нижней и боковых граней. Боковая ячейка повторяется четыре раза.
func BuildTextureData(top, bottom, side AtlasCell) []float32 {
	data := make([]float32, 0, 48)
	data = append(data, top.Coords()...)
	data = append(data, bottom.Coords()...)
	sideCoords := side.Coords()
	for i := 0; i < 4; i++ {
		data = append(data, sideCoords...)
	}
	return data
}
