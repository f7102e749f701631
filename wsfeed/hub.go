// Package wsfeed fans market-data messages out to websocket clients. It
// subscribes to the market-data bus, batches messages per client on a short
// tick, and drops clients that cannot keep up rather than applying
// back-pressure to the feed.
package wsfeed

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	clientBuffer  = 1024
	batchInterval = time.Millisecond
	writeTimeout  = 5 * time.Second
)

// Hub tracks connected clients and broadcasts feed messages to all of them.
type Hub struct {
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]struct{}

	clientsGauge     prometheus.Gauge
	broadcastCounter prometheus.Counter
	droppedCounter   prometheus.Counter
}

type client struct {
	conn *websocket.Conn
	send chan string
}

// NewHub creates a hub and registers its metrics.
func NewHub(log *zap.Logger, reg prometheus.Registerer) *Hub {
	h := &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
		clientsGauge: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wsfeed_clients_connected",
			Help: "Number of websocket clients currently connected.",
		}),
		broadcastCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wsfeed_messages_broadcast_total",
			Help: "Messages delivered to client send queues.",
		}),
		droppedCounter: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wsfeed_clients_dropped_total",
			Help: "Clients disconnected for falling behind.",
		}),
	}
	reg.MustRegister(h.clientsGauge, h.broadcastCounter, h.droppedCounter)
	return h
}

// Broadcast queues a message for every connected client. A client with a
// full queue is dropped.
func (h *Hub) Broadcast(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- message:
			h.broadcastCounter.Inc()
		default:
			h.droppedCounter.Inc()
			go h.remove(c)
		}
	}
}

// ServeHTTP upgrades the request and runs the client's write loop.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{conn: conn, send: make(chan string, clientBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.clientsGauge.Set(float64(len(h.clients)))
	h.mu.Unlock()

	h.log.Info("websocket client connected", zap.String("peer", conn.RemoteAddr().String()))

	go h.readLoop(c)
	h.writeLoop(c)
}

// readLoop discards inbound frames; the feed is one-way. It exists to notice
// client disconnects promptly.
func (h *Hub) readLoop(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

// writeLoop batches queued messages into newline-delimited text frames on a
// short tick, trading a bounded delay for fewer syscalls per client.
func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(batchInterval)
	defer ticker.Stop()

	var batch []string
	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return
			}
			batch = append(batch, msg)
		case <-ticker.C:
			if len(batch) == 0 {
				continue
			}
			payload := strings.Join(batch, "\n")
			batch = batch[:0]

			c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				h.remove(c)
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.clientsGauge.Set(float64(len(h.clients)))
	}
	h.mu.Unlock()
	c.conn.Close()
}
