package hub

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"foodhub/internal/event"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// AllResources is the subscription key of clients that did not filter.
const AllResources = "*"

type clientBucket struct {
	sync.RWMutex
	rooms map[string]map[string]*Client
}

// Hub pushes resource events to websocket subscribers. It implements
// event.Sink so the event bus can feed it directly.
type Hub struct {
	bucket     clientBucket
	register   chan *Client
	unregister chan *Client
	broadcast  chan event.ResourceEvent
	upgrader   websocket.Upgrader
	logger     *zap.Logger

	eventsBroadcast atomic.Uint64
	eventsDropped   atomic.Uint64

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		bucket:     clientBucket{rooms: make(map[string]map[string]*Client)},
		register:   make(chan *Client, 1024),
		unregister: make(chan *Client, 1024),
		broadcast:  make(chan event.ResourceEvent, 1024),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	h.wg.Add(1)
	go h.run()

	return h
}

// Publish queues ev for delivery without blocking the caller.
func (h *Hub) Publish(_ context.Context, ev event.ResourceEvent) error {
	select {
	case h.broadcast <- ev:
		h.eventsBroadcast.Add(1)
	default:
		h.eventsDropped.Add(1)
		h.logger.Warn("broadcast queue full, dropping event",
			zap.String("resource", ev.Resource),
			zap.String("id", ev.ID),
		)
	}
	return nil
}

func (h *Hub) run() {
	defer h.wg.Done()
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		case ev := <-h.broadcast:
			h.deliver(ev)
		}
	}
}

func (h *Hub) deliver(ev event.ResourceEvent) {
	h.bucket.RLock()
	clients := make([]*Client, 0, len(h.bucket.rooms[ev.Resource])+len(h.bucket.rooms[AllResources]))
	for _, key := range []string{ev.Resource, AllResources} {
		for _, c := range h.bucket.rooms[key] {
			clients = append(clients, c)
		}
	}
	h.bucket.RUnlock()

	// deliver to clients without holding lock
	for _, c := range clients {
		select {
		case c.egress <- ev:
		default:
			// egress full -> kick the slow client
			h.eventsDropped.Add(1)
			h.logger.Warn("egress full, disconnecting client", zap.String("client_id", c.ID))
			go h.removeClient(c)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.bucket.Lock()
	defer h.bucket.Unlock()

	// A client whose unregister was handled first is already closed.
	if c.ctx.Err() != nil {
		h.logger.Debug("skipping closed client", zap.String("client_id", c.ID))
		return
	}

	room, ok := h.bucket.rooms[c.resource]
	if !ok {
		room = make(map[string]*Client)
		h.bucket.rooms[c.resource] = room
	}
	room[c.ID] = c
	h.logger.Info("client subscribed", zap.String("client_id", c.ID), zap.String("resource", c.resource))
}

func (h *Hub) removeClient(c *Client) {
	h.bucket.Lock()
	defer h.bucket.Unlock()

	if room, ok := h.bucket.rooms[c.resource]; ok {
		if _, exists := room[c.ID]; exists {
			delete(room, c.ID)
			h.logger.Info("client unsubscribed", zap.String("client_id", c.ID), zap.String("resource", c.resource))
		}
		if len(room) == 0 {
			delete(h.bucket.rooms, c.resource)
		}
	}
	c.Close()
}

// Stop closes every client connection and ends the run loop.
func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()

	h.bucket.Lock()
	defer h.bucket.Unlock()
	for key, room := range h.bucket.rooms {
		for _, client := range room {
			client.Close()
		}
		delete(h.bucket.rooms, key)
	}
}

// ServeWS upgrades the request and subscribes the connection to resource, or
// to every resource when it is empty.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, resource string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	if resource == "" {
		resource = AllResources
	}
	RegisterClient(resource, conn, h)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *Hub) enqueue(ch chan *Client, c *Client, timeout time.Duration) bool {
	select {
	case ch <- c:
		return true
	case <-h.ctx.Done():
		return false
	case <-time.After(timeout):
		return false
	}
}
