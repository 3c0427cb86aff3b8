package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of connected dashboard clients and broadcasts change
// notifications to them.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Topic subscriptions.
	Subscribe   chan Subscription
	Unsubscribe chan Subscription

	// A map of topic names to the set of clients subscribed to each.
	subscriptions map[string]map[*Client]bool

	// Topic broadcast requests.
	topicBroadcast chan topicMessage
}

// Subscription pairs a client with a topic it wants updates for.
type Subscription struct {
	Client *Client
	Topic  string
}

type topicMessage struct {
	topic   string
	message []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:      make(chan []byte),
		Register:       make(chan *Client),
		Unregister:     make(chan *Client),
		Subscribe:      make(chan Subscription),
		Unsubscribe:    make(chan Subscription),
		clients:        make(map[*Client]bool),
		subscriptions:  make(map[string]map[*Client]bool),
		topicBroadcast: make(chan topicMessage),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.dropClient(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Dashboard client disconnected")
			}
		case sub := <-h.Subscribe:
			if h.subscriptions[sub.Topic] == nil {
				h.subscriptions[sub.Topic] = make(map[*Client]bool)
			}
			h.subscriptions[sub.Topic][sub.Client] = true
		case sub := <-h.Unsubscribe:
			if subs, ok := h.subscriptions[sub.Topic]; ok {
				delete(subs, sub.Client)
				if len(subs) == 0 {
					delete(h.subscriptions, sub.Topic)
				}
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				h.deliver(client, message)
			}
		case tm := <-h.topicBroadcast:
			for client := range h.subscriptions[tm.topic] {
				h.deliver(client, tm.message)
			}
		}
	}
}

// BroadcastTo sends a message to all clients subscribed to a topic.
func (h *Hub) BroadcastTo(topic string, message []byte) {
	h.topicBroadcast <- topicMessage{topic: topic, message: message}
}

// deliver sends to a client, dropping it when its send buffer is full.
func (h *Hub) deliver(client *Client, message []byte) {
	select {
	case client.Send <- message:
	default:
		close(client.Send)
		delete(h.clients, client)
		h.dropClient(client)
	}
}

func (h *Hub) dropClient(client *Client) {
	for topic, subs := range h.subscriptions {
		if _, ok := subs[client]; ok {
			delete(subs, client)
			if len(subs) == 0 {
				delete(h.subscriptions, topic)
			}
		}
	}
}
