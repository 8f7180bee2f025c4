package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	// catalogChannel carries card change notifications from the watcher and
	// the write API to every connected preview client.
	catalogChannel = "catalog"

	CardUpdatedAction   = "card.updated"
	CardRemovedAction   = "card.removed"
	CatalogReloadAction = "catalog.reload"
)

type Message struct {
	Type   string `json:"type"`
	Slug   string `json:"slug,omitempty"`
	Name   string `json:"name,omitempty"`
	Sender string `json:"sender,omitempty"`
}

func (message *Message) encode() []byte {
	data, _ := json.Marshal(message)
	return data
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type Subscriber struct {
	Channel     chan []byte
	Unsubscribe chan bool
}

type Broker interface {
	Subscribe(ctx context.Context, channels ...string) *Subscriber
	Unsubscribe(ctx context.Context, sub *Subscriber, channels ...string)
	Publish(ctx context.Context, topic string, message []byte) error
	Close()
}

type MemoryBroker struct {
	subscribers map[string][]*Subscriber
	mutex       sync.Mutex
}

func NewMemoryBroker() Broker {
	return &MemoryBroker{subscribers: make(map[string][]*Subscriber)}
}

func (b *MemoryBroker) Subscribe(ctx context.Context, channels ...string) *Subscriber {
	sub := &Subscriber{
		Channel:     make(chan []byte, 1),
		Unsubscribe: make(chan bool),
	}
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, t := range channels {
		b.subscribers[t] = append(b.subscribers[t], sub)
	}
	return sub
}

func (b *MemoryBroker) Unsubscribe(ctx context.Context, sub *Subscriber, channels ...string) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	close(sub.Channel)
	for _, t := range channels {
		if subscribers, found := b.subscribers[t]; found {
			var newSubscribers []*Subscriber
			for _, subscriber := range subscribers {
				if subscriber != sub {
					newSubscribers = append(newSubscribers, subscriber)
				}
			}
			b.subscribers[t] = newSubscribers
		}
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, channel string, msg []byte) error {
	b.mutex.Lock()
	if subscribers, found := b.subscribers[channel]; found {
		for _, sub := range subscribers {
			select {
			case sub.Channel <- msg:
			case <-time.After(time.Second):
				log.Printf("Subscriber slow. Unsubscribing from channel: %s", channel)
				defer b.Unsubscribe(ctx, sub, channel)
			}
		}
	}
	defer b.mutex.Unlock()
	return nil
}

func (b *MemoryBroker) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, subscribers := range b.subscribers {
		for _, subscriber := range subscribers {
			close(subscriber.Channel)
		}
	}
}

// Hub fans catalog change messages out to connected websocket clients so
// open previews can refresh themselves.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broker     Broker
	mutex      sync.Mutex
}

func NewHub(broker Broker) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broker:     broker,
	}
}

func (hub *Hub) Run() {
	ch := hub.broker.Subscribe(context.TODO(), catalogChannel)
	go hub.subscribeToCatalog(ch)
	for {
		select {
		case client := <-hub.register:
			hub.registerClient(client)
		case client := <-hub.unregister:
			hub.unregisterClient(client)
		}
	}
}

func (hub *Hub) subscribeToCatalog(ch *Subscriber) {
	for msg := range ch.Channel {
		hub.broadcast(msg)
	}
}

func (hub *Hub) broadcast(message []byte) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	for client := range hub.clients {
		client.send <- message
	}
}

func (hub *Hub) registerClient(client *Client) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[client] = true
}

func (hub *Hub) unregisterClient(client *Client) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, client)
}

// NotifyCardUpdated publishes a card change on the catalog channel.
func (hub *Hub) NotifyCardUpdated(slug, name string) {
	m := Message{Type: CardUpdatedAction, Slug: slug, Name: name}
	hub.publish(m.encode())
}

// NotifyCardRemoved publishes a card removal on the catalog channel.
func (hub *Hub) NotifyCardRemoved(slug string) {
	m := Message{Type: CardRemovedAction, Slug: slug}
	hub.publish(m.encode())
}

func (hub *Hub) publish(message []byte) {
	if err := hub.broker.Publish(context.TODO(), catalogChannel, message); err != nil {
		log.Println(err)
	}
}

type Client struct {
	Name string
	conn *websocket.Conn
	hub  *Hub
	send chan []byte
}

func newClient(conn *websocket.Conn, hub *Hub, name string) *Client {
	return &Client{
		Name: name,
		conn: conn,
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func (client *Client) readPump() {
	defer client.disconnect()
	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error { client.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("unexpected close error: %v", err)
			}
			break
		}
		// Preview clients only listen; inbound frames keep the connection alive.
	}
}

func (client *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()
	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := client.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Attach queued messages to the current websocket message.
			n := len(client.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-client.send)
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (client *Client) disconnect() {
	client.hub.unregister <- client
	close(client.send)
	client.conn.Close()
}

func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	userCtxValue := r.Context().Value(UserContextKey)
	if userCtxValue == nil {
		log.Println("Not authenticated")
		return
	}
	user := userCtxValue.(string)
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	client := newClient(conn, hub, user)

	go client.writePump()
	go client.readPump()

	hub.register <- client
}
