package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a connected notification listener.
type Client struct {
	ID   string
	Conn *websocket.Conn
}

// Manager fans notification payloads out to every connected client. The UI
// renders them as toasts; delivery is fire-and-forget.
type Manager struct {
	clients    map[*Client]struct{}
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
}

func NewManager() *Manager {
	m := &Manager{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	go m.run()
	return m
}

func (m *Manager) run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = struct{}{}
			m.mu.Unlock()
		case client := <-m.unregister:
			m.mu.Lock()
			delete(m.clients, client)
			m.mu.Unlock()
		}
	}
}

// RegisterClient registers a new client connection.
func (m *Manager) RegisterClient(client *Client) {
	m.register <- client
}

// UnregisterClient removes a client connection.
func (m *Manager) UnregisterClient(client *Client) {
	m.unregister <- client
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Broadcast sends the payload to every connected client. Write failures on
// individual connections are skipped; the next read loop tears them down.
func (m *Manager) Broadcast(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for client := range m.clients {
		if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			continue
		}
	}
	return nil
}
