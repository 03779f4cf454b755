// Package ws реализует WebSocket-рассылку изменений сущностей.
// Каждый клиент подписывается на одну сущность, подключившись к её
// endpoint; рассылка идёт лучшим усилием, неудачные записи пропускаются.
package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Conn — минимальный контракт соединения. Его реализует *websocket.Conn.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// subscriber держит соединение и мьютекс его писателя:
// *websocket.Conn допускает не больше одного конкурентного WriteMessage.
type subscriber struct {
	mu   sync.Mutex
	conn Conn
}

func (s *subscriber) write(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

// Hub хранит подписчиков по имени сущности.
type Hub struct {
	mu       sync.Mutex
	subs     map[string]map[Conn]*subscriber
	onChange func(entity string, count int)
	upgrader websocket.Upgrader
	logger   *log.Entry
}

// NewHub создаёт пустой hub.
func NewHub() *Hub {
	return &Hub{
		subs: make(map[string]map[Conn]*subscriber),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: log.WithField("component", "ws-hub"),
	}
}

// OnSubscribersChanged регистрирует callback, получающий число
// подписчиков сущности после каждой подписки и отписки.
func (h *Hub) OnSubscribersChanged(fn func(entity string, count int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = fn
}

// Subscribe добавляет соединение в набор подписчиков сущности.
func (h *Hub) Subscribe(entity string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[entity]
	if !ok {
		set = make(map[Conn]*subscriber)
		h.subs[entity] = set
	}
	set[c] = &subscriber{conn: c}
	if h.onChange != nil {
		h.onChange(entity, len(set))
	}
}

// Unsubscribe убирает соединение. Повторный вызов безопасен.
func (h *Hub) Unsubscribe(entity string, c Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[entity]; ok {
		delete(set, c)
		if h.onChange != nil {
			h.onChange(entity, len(set))
		}
	}
}

// Subscribers возвращает число подписчиков сущности.
func (h *Hub) Subscribers(entity string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[entity])
}

// Broadcast отправляет сообщение всем подписчикам сущности.
// Записи в одно соединение сериализуются мьютексом подписчика,
// ошибка записи одному клиенту не прерывает рассылку остальным.
func (h *Hub) Broadcast(entity string, payload []byte) {
	h.mu.Lock()
	subs := make([]*subscriber, 0, len(h.subs[entity]))
	for _, s := range h.subs[entity] {
		subs = append(subs, s)
	}
	h.mu.Unlock()

	for _, s := range subs {
		if err := s.write(websocket.TextMessage, payload); err != nil {
			h.logger.WithError(err).WithField("entity", entity).
				Warn("failed to send ws message, skipping subscriber")
		}
	}
}

// Handle апгрейдит HTTP-запрос до WebSocket и держит соединение до
// закрытия клиентом. Входящие сообщения игнорируются.
func (h *Hub) Handle(entity string) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.WithError(err).Warn("websocket upgrade failed")
			return
		}

		h.Subscribe(entity, conn)
		defer func() {
			h.Unsubscribe(entity, conn)
			_ = conn.Close()
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}
}
