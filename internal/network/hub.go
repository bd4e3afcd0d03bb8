package network

import (
	"github.com/sasha-s/go-deadlock"

	"labyrinth-server/pkg/api"
	"labyrinth-server/pkg/logger"
)

// Размер личного канала подписчика
const inboxSize = 64

// Broadcaster занимается только рассылкой снимков подписчикам.
// Рассылка не блокируется: медленный клиент теряет сообщения, а не тормозит тик.
type Broadcaster struct {
	mu deadlock.RWMutex
	// Мапа: SessionID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии
func (b *Broadcaster) Register(id string) <-chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем
	if old, ok := b.subscribers[id]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, inboxSize)
	b.subscribers[id] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал
func (b *Broadcaster) Unregister(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[id]; ok {
		close(ch)
		delete(b.subscribers, id)
	}
}

// SendTo отправляет сообщение конкретной сессии. false - подписчика нет или канал полон.
func (b *Broadcaster) SendTo(id string, msg api.ServerResponse) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ch, ok := b.subscribers[id]
	if !ok {
		return false
	}

	select {
	case ch <- msg:
		return true
	default:
		logger.Log.WithField("session", id).WithField("type", msg.Type).Warn("Hub: channel full, message dropped")
		return false
	}
}

// HasSubscriber проверяет, подключен ли кто-то к сессии
func (b *Broadcaster) HasSubscriber(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[id]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
