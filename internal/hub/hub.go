// Package hub fans service events out to Server-Sent Events clients.
//
// Every broadcast gets a sequence number written as the SSE id. Events that
// have a Name method are sent as named SSE events, and a client may restrict
// its stream with ?types=post_created,post_deleted.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	keepAliveInterval = 30 * time.Second
	clientBuffer      = 64
	broadcastBuffer   = 256
)

type named interface {
	Name() string
}

type message struct {
	name string
	data []byte
}

type client struct {
	id    string
	types map[string]bool
	out   chan []byte
}

func (c *client) wants(name string) bool {
	return len(c.types) == 0 || c.types[name]
}

// Hub owns the connected SSE clients
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	closed  bool
	seq     uint64
	in      chan any
	log     logrus.FieldLogger
}

// New creates a hub. Call Run before serving clients.
func New(log logrus.FieldLogger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		in:      make(chan any, broadcastBuffer),
		log:     log.WithField("component", "sse"),
	}
}

// Run delivers broadcasts until ctx is done, then disconnects every client
// and refuses new ones.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return
		case event := <-h.in:
			msg, err := encode(event)
			if err != nil {
				h.log.WithError(err).Warn("failed to marshal event")
				continue
			}
			h.deliver(msg)
		}
	}
}

func encode(event any) (message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return message{}, err
	}
	msg := message{data: data}
	if n, ok := event.(named); ok {
		msg.name = n.Name()
	}
	return msg, nil
}

func (h *Hub) deliver(msg message) {
	h.mu.Lock()
	h.seq++
	seq := h.seq
	h.mu.Unlock()

	var frame bytes.Buffer
	fmt.Fprintf(&frame, "id: %d\n", seq)
	if msg.name != "" {
		fmt.Fprintf(&frame, "event: %s\n", msg.name)
	}
	fmt.Fprintf(&frame, "data: %s\n\n", msg.data)

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !c.wants(msg.name) {
			continue
		}
		select {
		case c.out <- frame.Bytes():
		default:
			h.log.WithField("client_id", c.id).Warn("SSE client is slow, skipping message")
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.log.WithFields(logrus.Fields{"client_id": c.id, "total": len(h.clients)}).Debug("SSE client connected")
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.out)
	h.log.WithFields(logrus.Fields{"client_id": c.id, "total": len(h.clients)}).Debug("SSE client disconnected")
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.out)
	}
}

// Relay broadcasts everything received on events until the channel closes or ctx is done
func Relay[E any](ctx context.Context, h *Hub, events <-chan E) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			h.Broadcast(ev)
		}
	}
}

// Broadcast queues an event for every interested client. It never blocks;
// the event is dropped when the queue is full.
func (h *Hub) Broadcast(event any) {
	select {
	case h.in <- event:
	default:
		h.log.Warn("broadcast queue full, dropping event")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP streams events to one client until it disconnects or the hub stops
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	c := &client{
		id:    uuid.NewString(),
		types: parseTypes(r.URL.Query().Get("types")),
		out:   make(chan []byte, clientBuffer),
	}
	if !h.add(c) {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer h.remove(c)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprint(w, ": connected\n\n")
	flusher.Flush()

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case frame, ok := <-c.out:
			if !ok {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		case <-r.Context().Done():
			return
		}
	}
}

func parseTypes(raw string) map[string]bool {
	if raw == "" {
		return nil
	}
	types := make(map[string]bool)
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			types[t] = true
		}
	}
	return types
}
