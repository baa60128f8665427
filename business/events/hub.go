// Package events fans broker events out to live dashboard clients over
// websockets, and mirrors them onto Redis when an instance is configured.
package events

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/mindcareapp/goMindcare/business/tracker"
	"github.com/mindcareapp/goMindcare/foundation/pubsub"
	"github.com/mindcareapp/goMindcare/foundation/redis"
)

const subscriberBuffer = 16

type Settings struct {
	Logger *zap.SugaredLogger
	Broker *pubsub.Broker
	Redis  *redis.Redis
}

// Envelope is the JSON frame written to websocket clients and Redis.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Hub struct {
	logger *zap.SugaredLogger
	broker *pubsub.Broker
	redis  *redis.Redis

	wg   sync.WaitGroup
	shut chan struct{}

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	moodSub    *pubsub.Subscriber
	journalSub *pubsub.Subscriber
}

func Run(s Settings) *Hub {
	h := &Hub{
		logger:     s.Logger,
		broker:     s.Broker,
		redis:      s.Redis,
		shut:       make(chan struct{}),
		clients:    make(map[*websocket.Conn]bool),
		moodSub:    pubsub.NewSubscriber(subscriberBuffer),
		journalSub: pubsub.NewSubscriber(subscriberBuffer),
	}

	h.broker.Subscribe(tracker.TopicMoodLogged, h.moodSub)
	h.broker.Subscribe(tracker.TopicJournalSaved, h.journalSub)

	operations := []func(){
		h.moodOperation,
		h.journalOperation,
	}

	g := len(operations)
	h.wg.Add(g)

	hasStarted := make(chan bool)

	for _, op := range operations {
		go func(op func()) {
			defer h.wg.Done()
			hasStarted <- true
			op()
		}(op)
	}

	for i := 0; i < g; i++ {
		<-hasStarted
	}

	return h
}

func (h *Hub) Shutdown() {
	h.logger.Infow("events: shutdown: started")
	defer h.logger.Infow("events: shutdown: completed")

	close(h.shut)

	if err := h.broker.UnSubscribe(tracker.TopicMoodLogged, h.moodSub); err != nil {
		h.logger.Errorw("events: shutdown: unsubscribe mood", "ERROR", err)
	}
	if err := h.broker.UnSubscribe(tracker.TopicJournalSaved, h.journalSub); err != nil {
		h.logger.Errorw("events: shutdown: unsubscribe journal", "ERROR", err)
	}

	h.wg.Wait()

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
}

// =====================================================================================================================

// Attach registers a websocket client for event broadcasts. The client is
// dropped on its first failed write.
func (h *Hub) Attach(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = true
}

func (h *Hub) Detach(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, conn)
}

// ClientCount reports the number of attached websocket clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// =====================================================================================================================

func (h *Hub) moodOperation() {
	h.logger.Infow("events: moodOperation: G started")
	defer h.logger.Infow("events: moodOperation: G completed")

	for {
		select {
		case <-h.shut:
			return

		case data, ok := <-h.moodSub.GetChannel():
			if !ok {
				return
			}
			h.dispatch("mood", data)
		}
	}
}

func (h *Hub) journalOperation() {
	h.logger.Infow("events: journalOperation: G started")
	defer h.logger.Infow("events: journalOperation: G completed")

	for {
		select {
		case <-h.shut:
			return

		case data, ok := <-h.journalSub.GetChannel():
			if !ok {
				return
			}
			h.dispatch("journal", data)
		}
	}
}

func (h *Hub) dispatch(eventType string, data any) {
	envelope := Envelope{
		Type: eventType,
		Data: data,
	}

	frame, err := json.Marshal(envelope)
	if err != nil {
		h.logger.Errorw("events: dispatch: marshal", "ERROR", err)
		return
	}

	h.broadcast(frame)

	if h.redis != nil {
		if err := h.redis.Produce(envelope); err != nil {
			h.logger.Errorw("events: dispatch: redis produce", "ERROR", err)
		}
	}
}

func (h *Hub) broadcast(frame []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Errorw("events: broadcast: write", "ERROR", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
