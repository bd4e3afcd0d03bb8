package domain

// Effects - то, что интерактивный объект может сделать с миром.
// engine.World реализует этот интерфейс.
type Effects interface {
	RevealPath()
}

// Interactable - объект на клетке, с которым игрок взаимодействует,
// стоя рядом и глядя на него. Клетка с объектом непроходима.
type Interactable interface {
	Kind() string
	Interact(fx Effects)
}

// Treasure - сундук: открывает путь до выхода.
type Treasure struct {
	Text string
}

func (t Treasure) Kind() string { return "TREASURE" }

func (t Treasure) Interact(fx Effects) {
	fx.RevealPath()
}
