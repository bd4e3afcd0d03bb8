package domain

import "strings"

// EventType - что произошло в мире за тик (для журнала снапшота)
type EventType uint8

const (
	EventUnknown EventType = iota
	EventNewLevel
	EventLevelReset
	EventCaught
	EventSlash
	EventSpawn
	EventOverheat
	EventInteract
	EventExitReached
	EventInfo  // сообщения команд
	EventError // отказ команды
)

var eventStringToCmd = map[string]EventType{
	"NEW_LEVEL":    EventNewLevel,
	"LEVEL_RESET":  EventLevelReset,
	"CAUGHT":       EventCaught,
	"SLASH":        EventSlash,
	"SPAWN":        EventSpawn,
	"OVERHEAT":     EventOverheat,
	"INTERACT":     EventInteract,
	"EXIT_REACHED": EventExitReached,
	"INFO":         EventInfo,
	"ERROR":        EventError,
}

var eventCmdToString = map[EventType]string{
	EventNewLevel:    "NEW_LEVEL",
	EventLevelReset:  "LEVEL_RESET",
	EventCaught:      "CAUGHT",
	EventSlash:       "SLASH",
	EventSpawn:       "SPAWN",
	EventOverheat:    "OVERHEAT",
	EventInteract:    "INTERACT",
	EventExitReached: "EXIT_REACHED",
	EventInfo:        "INFO",
	EventError:       "ERROR",
}

// ParseEvent конвертирует строку в EventType
func ParseEvent(s string) EventType {
	upper := strings.ToUpper(s)
	if val, ok := eventStringToCmd[upper]; ok {
		return val
	}
	return EventUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a EventType) String() string {
	if val, ok := eventCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
