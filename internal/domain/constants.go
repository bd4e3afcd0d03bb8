package domain

// Виды противников
const (
	KindPursuer  = "PURSUER"
	KindWanderer = "WANDERER"
)

// Параметры удара (slash)
const (
	SlashCooldown = 6 // Ходов до следующего удара
	SlashRadius   = 1 // Чебышёвский радиус: квадрат 3x3 вокруг игрока
)

// Параметры противников
const (
	// Перегрев преследователя: бросок в [0, difficulty*OverheatSpread+OverheatBase)
	OverheatBase   = 5
	OverheatSpread = 2
	// Длительность спячки: DormantBase - difficulty (не меньше 0)
	DormantBase = 4
	// Размножение бродяги: бросок в [0, WandererBreedRange)
	WandererBreedRange = 50
)

// Параметры генерации
const (
	HallAreaDivisor = 54 // Бюджет залов: width*height / HallAreaDivisor
	HallCooldown    = 4  // Шагов DFS до первого зала
	HallMargin      = 4  // Минимальный отступ центра зала от края
	SpawnChanceBase = 5  // spawnChance = max(1, SpawnChanceBase - difficulty*2)
)
