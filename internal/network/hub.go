package network

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/marissaabao/tamagotchi/internal/platform/logger"
	"github.com/marissaabao/tamagotchi/internal/platform/metrics"
)

// CommandDispatcher routes a named player command into the simulation.
// Satisfied by the engine. Returns false for unknown commands; commands
// invalid for the current stage are no-ops inside the engine.
type CommandDispatcher interface {
	Dispatch(command string) bool
}

// Hub maintains the set of active clients and broadcasts state to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.Mutex
	logger     *logger.Logger
	dispatcher CommandDispatcher

	// snapshot produces the current state payload for newly connected
	// clients so they render immediately instead of waiting for the
	// next tick.
	snapshot func() any
}

// NewHub initializes a new WebSocket Hub.
func NewHub(log *logger.Logger, dispatcher CommandDispatcher, snapshot func() any) *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     log,
		dispatcher: dispatcher,
		snapshot:   snapshot,
	}
}

// Run starts the Hub's main loop to handle client connections and
// broadcasts.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.logger.Info("WebSocket Hub shutting down.")
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			metrics.Get().WSConnected()
			h.logger.Info("New WebSocket client connected")
			h.sendSnapshot(client)
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.Get().WSDisconnected()
				h.logger.Info("WebSocket client disconnected")
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
					metrics.Get().RecordWSMessageOut()
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast serializes v and queues it for all connected clients. The send
// is non-blocking; if the hub is saturated the update is dropped, since the
// next state change supersedes it anyway.
func (h *Hub) Broadcast(v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to serialize state for WebSocket broadcast: " + err.Error())
		return
	}
	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("WebSocket broadcast queue full, dropping state update")
	}
}

func (h *Hub) sendSnapshot(client *Client) {
	if h.snapshot == nil {
		return
	}
	payload, err := json.Marshal(h.snapshot())
	if err != nil {
		h.logger.Error("Failed to serialize snapshot for new client: " + err.Error())
		return
	}
	select {
	case client.send <- payload:
		metrics.Get().RecordWSMessageOut()
	default:
	}
}
