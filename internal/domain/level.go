package domain

import "sort"

// Level - неизменяемый снимок уровня. Создается один раз на генерацию,
// перечитывается при сбросе и загрузке. Геттеры отдают копии изменяемых
// контейнеров, чтобы мир не мог испортить исходные данные.
type Level struct {
	name          string
	width, height int
	difficulty    int
	walls         WallSet
	start, exit   Coordinate
	adversaries   []AdversarySpec
	interactables map[Coordinate]Interactable
}

// NewLevel собирает уровень. Стены не проверяются на корректность.
func NewLevel(
	name string,
	width, height, difficulty int,
	walls WallSet,
	start, exit Coordinate,
	adversaries []AdversarySpec,
	interactables map[Coordinate]Interactable,
) *Level {
	specs := make([]AdversarySpec, len(adversaries))
	copy(specs, adversaries)

	items := make(map[Coordinate]Interactable, len(interactables))
	for c, it := range interactables {
		items[c] = it
	}

	return &Level{
		name:          name,
		width:         width,
		height:        height,
		difficulty:    difficulty,
		walls:         walls,
		start:         start,
		exit:          exit,
		adversaries:   specs,
		interactables: items,
	}
}

func (l *Level) Name() string { return l.name }
func (l *Level) Width() int { return l.width }
func (l *Level) Height() int { return l.height }
func (l *Level) Difficulty() int { return l.difficulty }
func (l *Level) Start() Coordinate { return l.start }
func (l *Level) Exit() Coordinate { return l.exit }
func (l *Level) Walls() WallSet { return l.walls }
func (l *Level) AdversaryCount() int { return len(l.adversaries) }

// AdversarySpecs возвращает копию списка противников.
func (l *Level) AdversarySpecs() []AdversarySpec {
	out := make([]AdversarySpec, len(l.adversaries))
	copy(out, l.adversaries)
	return out
}

// SpawnAdversaries создает свежий список живых противников из спеков.
func (l *Level) SpawnAdversaries() []*Adversary {
	out := make([]*Adversary, 0, len(l.adversaries))
	for _, spec := range l.adversaries {
		out = append(out, NewAdversary(spec))
	}
	return out
}

// Interactables возвращает копию карты интерактивных объектов.
func (l *Level) Interactables() map[Coordinate]Interactable {
	out := make(map[Coordinate]Interactable, len(l.interactables))
	for c, it := range l.interactables {
		out[c] = it
	}
	return out
}

// InteractableCoords - координаты объектов в построчном порядке.
func (l *Level) InteractableCoords() []Coordinate {
	out := make([]Coordinate, 0, len(l.interactables))
	for c := range l.interactables {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
