package domain

import "encoding/json"

// InternalCommand - команда для сессии.
// Использует ActionType вместо string.
type InternalCommand struct {
	Action  ActionType
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}
