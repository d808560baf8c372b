package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// MealEvent notifies a user's other connected clients that a meal changed.
type MealEvent struct {
	Type     string  `json:"type"` // "meal.saved" | "meal.updated"
	MealID   string  `json:"meal_id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
}

type WSClient struct {
	UserID uint
	Conn   *websocket.Conn

	writeMu sync.Mutex // gorilla allows one concurrent writer per conn
}

func (c *WSClient) send(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// Ping keeps the connection alive; serialized against broadcasts.
func (c *WSClient) Ping() error {
	return c.send(websocket.PingMessage, nil)
}

type MealHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewMealHub() *MealHub {
	return &MealHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *MealHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *MealHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

func (h *MealHub) Broadcast(userID uint, event MealEvent) {
	msg, _ := json.Marshal(event)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.send(websocket.TextMessage, msg)
	}
}
