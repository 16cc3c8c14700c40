// Package live pushes tournament events to browsers over websockets.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/notify"
)

const sendBufferSize = 64

// Hub fans events out to connected viewers. It implements notify.Publisher.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool

	connected prometheus.Gauge
	dropped   prometheus.Counter
	logger    *zap.SugaredLogger
}

// NewHub creates a hub and registers its collectors on reg.
func NewHub(reg prometheus.Registerer, logger *zap.SugaredLogger) *Hub {
	h := &Hub{
		clients: make(map[*client]struct{}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard",
			Subsystem: "live",
			Name:      "viewers",
			Help:      "Connected websocket viewers.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard",
			Subsystem: "live",
			Name:      "dropped_viewers_total",
			Help:      "Viewers disconnected for falling behind.",
		}),
		logger: logger,
	}
	reg.MustRegister(h.connected, h.dropped)
	return h
}

// Publish implements notify.Publisher. Viewers whose buffer is full are
// disconnected.
func (h *Hub) Publish(_ context.Context, e notify.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		if !c.wants(e) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.logger.Warnw("viewer too slow, disconnecting", "viewer", c.id)
			h.dropped.Inc()
			h.removeLocked(c)
		}
	}
	return nil
}

// Len returns the number of connected viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.connected.Set(float64(len(h.clients)))
	h.logger.Debugw("viewer connected", "viewer", c.id, "total", len(h.clients))
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.connected.Set(float64(len(h.clients)))
	h.logger.Debugw("viewer disconnected", "viewer", c.id, "total", len(h.clients))
}
