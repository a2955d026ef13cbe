package ws

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type envelope struct {
	userID  uuid.UUID
	payload []byte
}

// Hub fans change events out to the open sockets of one user. All client
// bookkeeping happens on the Run goroutine. Once Run returns, Register,
// Unregister and ClientCount stop waiting on it.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan envelope
	register   chan *Client
	unregister chan *Client
	count      chan chan int
	done       chan struct{}
	stopOnce   sync.Once
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan envelope, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stop()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			set, ok := h.clients[client.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.userID] = set
			}
			set[client] = struct{}{}
			h.logger.Debug().Str("user_id", client.userID.String()).Int("user_clients", len(set)).Msg("ws connected")

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			for client := range h.clients[msg.userID] {
				select {
				case client.send <- msg.payload:
				default:
					h.logger.Warn().Str("user_id", msg.userID.String()).Msg("ws client too slow, dropping")
					h.remove(client)
				}
			}

		case reply := <-h.count:
			n := 0
			for _, set := range h.clients {
				n += len(set)
			}
			reply <- n
		}
	}
}

func (h *Hub) stop() {
	h.stopOnce.Do(func() { close(h.done) })
	for _, set := range h.clients {
		for c := range set {
			close(c.send)
		}
	}
	h.clients = map[uuid.UUID]map[*Client]struct{}{}

	// registrations queued before done closed never reach the map
	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		default:
			return
		}
	}
}

func (h *Hub) stopped() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

func (h *Hub) remove(client *Client) {
	if client == nil {
		return
	}
	set, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	h.logger.Debug().Str("user_id", client.userID.String()).Msg("ws disconnected")
}

// Register hands client to Run. On a stopped hub the client's send channel
// is closed right away so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	if h.stopped() {
		close(client.send)
		return
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || h.stopped() {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Send queues payload for every socket of userID. It never blocks.
func (h *Hub) Send(userID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- envelope{userID: userID, payload: payload}:
	default:
		h.logger.Warn().Str("reason", "buffer_full").Msg("ws broadcast dropped")
	}
}

// ClientCount reports 0 once Run has returned.
func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}
