// Package stream broadcasts per-tick counts to websocket clients.
package stream

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/Ashboy64/disease-spread/internal/sims/epidemic"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Message is the JSON document sent for every tick.
type Message struct {
	Tick   int             `json:"tick"`
	Counts epidemic.Counts `json:"counts"`
}

// Hub fans tick messages out to every connected client. New clients receive
// the latest message on connect.
type Hub struct {
	log        *log.Logger
	mu         sync.RWMutex
	clients    map[*websocket.Conn]bool
	last       []byte
	upgrader   websocket.Upgrader
	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// NewHub starts the broadcaster. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := &Hub{
		log:        logger,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Record queues a message for every client. It never blocks the caller: when
// the queue is full the message is dropped.
func (h *Hub) Record(tick int, c epidemic.Counts) error {
	data, err := json.Marshal(Message{Tick: tick, Counts: c})
	if err != nil {
		return err
	}
	select {
	case <-h.done:
		return nil
	default:
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("stream queue full, dropping tick", "tick", tick)
	}
	return nil
}

// ServeHTTP upgrades the request and registers the connection until the
// client goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	select {
	case h.register <- conn:
	case <-h.done:
		conn.Close()
		return
	}
	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Clients reports the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.done:
			return

		case conn := <-h.register:
			h.mu.Lock()
			h.clients[conn] = true
			last := h.last
			h.mu.Unlock()
			h.log.Debug("client connected", "remote", conn.RemoteAddr())
			if last != nil && !h.write(conn, last) {
				h.drop(conn)
			}

		case conn := <-h.unregister:
			h.drop(conn)

		case data := <-h.broadcast:
			h.mu.Lock()
			h.last = data
			conns := make([]*websocket.Conn, 0, len(h.clients))
			for conn := range h.clients {
				conns = append(conns, conn)
			}
			h.mu.Unlock()

			for _, conn := range conns {
				if !h.write(conn, data) {
					h.drop(conn)
				}
			}
		}
	}
}

func (h *Hub) write(conn *websocket.Conn, data []byte) bool {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, data) == nil
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		h.log.Debug("client disconnected", "remote", conn.RemoteAddr())
	}
}

// Close disconnects every client and stops the broadcaster.
func (h *Hub) Close() error {
	h.closeOnce.Do(func() {
		close(h.done)
		h.wg.Wait()
		h.mu.Lock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
		h.mu.Unlock()
	})
	return nil
}
