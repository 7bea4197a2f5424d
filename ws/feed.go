package ws

import (
	"log"
	"net/http"
	"sync"

	"civiceye/entity"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// FeedHub pushes lifecycle events to connected admin dashboards so they see
// new reports and transitions without polling.
type FeedHub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan FeedEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

type FeedEvent struct {
	Event string        `json:"event"`
	Issue *entity.Issue `json:"issue"`
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan FeedEvent, 16),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

func (h *FeedHub) Run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteJSON(ev); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish satisfies services.Notifier. Non-blocking: if the hub is saturated
// the event is dropped rather than stalling a request.
func (h *FeedHub) Publish(event string, issue *entity.Issue) {
	select {
	case h.broadcast <- FeedEvent{Event: event, Issue: issue}:
	default:
		log.Printf("ws feed full, dropping %s for issue %d", event, issue.ID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/feed (admin roles only, gated in routes)
func (h *FeedHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	h.register <- conn

	// Reader loop only to detect disconnects; the feed is one-way.
	go func() {
		defer func() { h.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
