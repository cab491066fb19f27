package block

// BlockID представляет идентификатор типа блока
type BlockID uint16

// Константы ID блоков
const (
	// AirBlockID зарезервирован за пустотой: воздух никогда не хранится
	// в мире, отсутствие записи и есть воздух.
	AirBlockID BlockID = iota // 0

	// Базовые типы блоков
	GrassBlockID // 1
	SandBlockID  // 2
	StoneBlockID // 3
	BrickBlockID // 4
)

var registry = make(map[BlockID]Descriptor)

// Register добавляет описание блока в регистр
func Register(id BlockID, desc Descriptor) {
	registry[id] = desc
}

// Get возвращает описание для указанного ID
func Get(id BlockID) (Descriptor, bool) {
	desc, exists := registry[id]
	return desc, exists
}

// IsValidBlockID проверяет, является ли ID допустимым идентификатором блока
func IsValidBlockID(id BlockID) bool {
	_, exists := registry[id]
	return exists
}
