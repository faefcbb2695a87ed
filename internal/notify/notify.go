package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"go-bookmark-hub-example/internal/logger"
	"go-bookmark-hub-example/internal/websocket"
)

// Event types understood by the UI toast layer.
const (
	TypeSuccess = "success"
	TypeError   = "error"
)

// Event is a single user-facing notification.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notifier is the fire-and-forget side channel the stores emit operation
// outcomes on. It is not a return value: callers of store operations still
// check the returned value for success.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Broadcaster pushes events to connected websocket clients and mirrors
// them to the log.
type Broadcaster struct {
	manager *websocket.Manager
	log     logger.Logger
}

func NewBroadcaster(manager *websocket.Manager, log logger.Logger) *Broadcaster {
	return &Broadcaster{manager: manager, log: log}
}

func (b *Broadcaster) Success(message string) {
	b.log.Info("notification", logger.String("type", TypeSuccess), logger.String("message", message))
	b.emit(TypeSuccess, message)
}

func (b *Broadcaster) Error(message string) {
	b.log.Warn("notification", logger.String("type", TypeError), logger.String("message", message))
	b.emit(TypeError, message)
}

func (b *Broadcaster) emit(eventType, message string) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
	if err := b.manager.Broadcast(event); err != nil {
		b.log.Warn("failed to broadcast notification", logger.Error(err))
	}
}

// Recorder collects events in memory. Used in tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(message string) { r.record(TypeSuccess, message) }
func (r *Recorder) Error(message string)   { r.record(TypeError, message) }

func (r *Recorder) record(eventType, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Messages returns the recorded messages of the given type, in order.
func (r *Recorder) Messages(eventType string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e.Message)
		}
	}
	return out
}
