package domain

// LogEntry - запись в журнале мира. Журнал копится за тик
// и уходит наблюдателям вместе со снапшотом.
type LogEntry struct {
	Tick int       `json:"tick"`
	Type EventType `json:"-"`
	Kind string    `json:"type"`
	Text string    `json:"text"`
}

// NewLogEntry заполняет строковое имя события для DTO.
func NewLogEntry(tick int, ev EventType, text string) LogEntry {
	return LogEntry{Tick: tick, Type: ev, Kind: ev.String(), Text: text}
}
