package api

import (
	"encoding/json"
)

// Типы сообщений сервера
const (
	TypeNewLevel = "NEW_LEVEL"
	TypeUpdate   = "UPDATE"
	TypeError    = "ERROR" // команда отклонена, текст в Logs
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Полный снимок мира сессии после очередного тика.
type ServerResponse struct {
	// Type: NEW_LEVEL, когда уровень заменен (клиент должен пересоздать сетку),
	// или UPDATE после обычного тика.
	Type string `json:"type"`

	// SessionID идентификатор сессии (uuid).
	SessionID string `json:"sessionId"`

	// Tick номер тика внутри сессии.
	Tick int `json:"tick"`

	// Level название уровня ("LEVEL 3").
	Level string `json:"level"`

	// Grid метаданные о размере всей карты.
	Grid GridMeta `json:"grid"`

	// Walls все стены уровня. Отправляются только в NEW_LEVEL.
	Walls []Point `json:"walls,omitempty"`

	Player PlayerView `json:"player"`
	Exit   Point      `json:"exit"`

	Adversaries   []AdversaryView    `json:"adversaries"`
	Interactables []InteractableView `json:"interactables,omitempty"`

	// Slash клетка последнего удара, пока не остыл.
	Slash *SlashView `json:"slash,omitempty"`

	// Route маршрут до выхода (если открыт сундуком).
	Route []RouteStepView `json:"route,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого снимка.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Point - координата клетки.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerView - игрок.
type PlayerView struct {
	Pos    Point  `json:"pos"`
	Facing string `json:"facing"`
}

// AdversaryView это DTO для противника.
type AdversaryView struct {
	Kind      string `json:"kind"` // PURSUER, WANDERER
	Pos       Point  `json:"pos"`
	Facing    string `json:"facing"`
	Dead      bool   `json:"dead"`
	Activated bool   `json:"activated"`
	Cooldown  int    `json:"cooldown,omitempty"`
}

// InteractableView - объект на карте.
type InteractableView struct {
	Kind string `json:"kind"`
	Pos  Point  `json:"pos"`
}

// SlashView - след удара.
type SlashView struct {
	Pos      Point `json:"pos"`
	Cooldown int   `json:"cooldown"`
}

// RouteStepView - шаг маршрута.
type RouteStepView struct {
	Pos Point  `json:"pos"`
	Dir string `json:"dir"`
}

// LogEntry представляет одну запись в журнале.
type LogEntry struct {
	Tick int    `json:"tick"`
	Type string `json:"type"` // NEW_LEVEL, CAUGHT, SLASH, ...
	Text string `json:"text"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: INIT, MOVE, SLASH, INTERACT, REGENERATE, AUTOSOLVE, STOP.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
// Либо direction ("UP"), либо смещение dx/dy на одну клетку по одной оси.
type DirectionPayload struct {
	Direction string `json:"direction,omitempty"`
	Dx        int    `json:"dx,omitempty"`
	Dy        int    `json:"dy,omitempty"`
}
