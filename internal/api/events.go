package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"questledger/internal/model"
	"questledger/pkg/logger"
)

const (
	// sendBufferSize is the per-subscriber backlog of undelivered events.
	// A subscriber that falls further behind is dropped.
	sendBufferSize = 32

	writeTimeout = 10 * time.Second
)

// EventHub broadcasts ledger events (quest created/completed, daily claimed)
// to websocket subscribers. It implements service.EventPublisher.
//
// Publish never blocks: each subscriber has a buffered send channel drained
// by its own writer goroutine, and a subscriber whose buffer is full is
// disconnected rather than stalling the ledger.
type EventHub struct {
	mu       sync.Mutex
	subs     map[*websocket.Conn]chan []byte
	upgrader websocket.Upgrader
}

func NewEventHub() *EventHub {
	return &EventHub{
		subs: make(map[*websocket.Conn]chan []byte),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func NewEventRoutes(handler *gin.RouterGroup, hub *EventHub) {
	h := handler.Group("/events")
	{
		h.GET("/ws", hub.Subscribe)
	}
}

func (h *EventHub) Subscribe(c *gin.Context) {
	log := logger.Logger()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade websocket connection", zap.Error(err))
		return
	}

	send := make(chan []byte, sendBufferSize)

	h.mu.Lock()
	h.subs[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)

	// Drain reads to detect the peer closing; subscribers only receive.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Publish fans the event out to all subscribers without blocking on any of
// them. A subscriber whose send buffer is full is dropped.
func (h *EventHub) Publish(event model.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Logger().Error("failed to marshal event", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, send := range h.subs {
		select {
		case send <- payload:
		default:
			logger.Logger().Info("dropping slow event subscriber")
			close(send)
			delete(h.subs, conn)
			conn.Close()
		}
	}
}

// writeLoop delivers buffered events to a single subscriber. It exits when
// the send channel is closed by Publish or drop, or on the first write error.
func (h *EventHub) writeLoop(conn *websocket.Conn, send <-chan []byte) {
	for payload := range send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *EventHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if send, ok := h.subs[conn]; ok {
		close(send)
		delete(h.subs, conn)
		conn.Close()
	}
}

// subscriberCount reports the number of live subscribers.
func (h *EventHub) subscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
