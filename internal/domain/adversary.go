package domain

// AdversaryKind - тег варианта противника.
type AdversaryKind uint8

const (
	Pursuer  AdversaryKind = iota + 1 // Идет к игроку по полю путей
	Wanderer                          // Случайное блуждание с размножением
)

func (k AdversaryKind) String() string {
	switch k {
	case Pursuer:
		return KindPursuer
	case Wanderer:
		return KindWanderer
	}
	return "UNKNOWN"
}

// AdversarySpec - неизменяемое описание противника в Level.
// Живые экземпляры создаются из спеков при загрузке и сбросе уровня.
type AdversarySpec struct {
	Kind  AdversaryKind
	Start Coordinate
}

// Adversary - живой противник в мире.
// Один тип для обоих вариантов: поведение выбирается по Kind
// (см. systems.UpdateAdversary). Cooldown имеет смысл только для Pursuer.
type Adversary struct {
	Kind      AdversaryKind
	Pos       Coordinate
	Start     Coordinate
	Facing    Direction
	Activated bool
	Dead      bool
	Cooldown  int
}

// NewAdversary создает активного живого противника на стартовой клетке.
func NewAdversary(spec AdversarySpec) *Adversary {
	a := &Adversary{Kind: spec.Kind, Start: spec.Start}
	a.Reset()
	return a
}

// Alive - противник не убит.
func (a *Adversary) Alive() bool {
	return !a.Dead
}

// Dormant - живой, но неактивный (перегревшийся преследователь).
// Через такого противника игрок пройти не может.
func (a *Adversary) Dormant() bool {
	return !a.Dead && !a.Activated
}

// Kill безусловно переводит противника в состояние Dead.
func (a *Adversary) Kill() {
	a.Dead = true
}

// Reset возвращает противника в исходное состояние.
func (a *Adversary) Reset() {
	a.Pos = a.Start
	a.Facing = DirNone
	a.Activated = true
	a.Dead = false
	a.Cooldown = 0
}
