package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionMove
	ActionSlash
	ActionInteract
	ActionRegenerate
	ActionAutoSolve
	ActionStop
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":       ActionInit,
	"MOVE":       ActionMove,
	"SLASH":      ActionSlash,
	"INTERACT":   ActionInteract,
	"REGENERATE": ActionRegenerate,
	"AUTOSOLVE":  ActionAutoSolve,
	"STOP":       ActionStop,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:       "INIT",
	ActionMove:       "MOVE",
	ActionSlash:      "SLASH",
	ActionInteract:   "INTERACT",
	ActionRegenerate: "REGENERATE",
	ActionAutoSolve:  "AUTOSOLVE",
	ActionStop:       "STOP",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(strings.TrimSpace(s))
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
