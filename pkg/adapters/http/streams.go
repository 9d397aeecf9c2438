package http

import (
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
)

// Event is the compact form of a notification pushed to SSE clients.
// Documents are left out; clients fetch /document when they need it.
type Event struct {
	OperationType domain.OperationType `json:"operationType"`
	Timestamp     time.Time            `json:"timestamp"`
	Description   string               `json:"description"`
	Affected      []string             `json:"affectedNodeUuids,omitempty"`
	CurrentNode   string               `json:"currentNodeUuid,omitempty"`
	Revision      string               `json:"revision,omitempty"`
}

// EventFrom builds an Event from a notification.
func EventFrom(info *domain.ChangeInfo) Event {
	ev := Event{
		OperationType: info.OperationType,
		Timestamp:     info.Timestamp,
		Description:   info.Description,
		Affected:      info.AffectedNodeUUIDs,
		Revision:      info.Revision,
	}
	if info.CurrentNode != nil {
		ev.CurrentNode = info.CurrentNode.UUID
	}
	return ev
}

// StreamManager handles active SSE connections
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- Event]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- Event]struct{}),
	}
}

func (sm *StreamManager) Subscribe() (chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 16)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

func (sm *StreamManager) Broadcast(ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	slog.Debug("StreamManager: Broadcasting", "operation", ev.OperationType, "subscribers", len(sm.subscribers))

	for ch := range sm.subscribers {
		select {
		case ch <- ev:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: Client buffer full, dropping event", "operation", ev.OperationType)
		}
	}
}

// Hooks returns editor hooks that broadcast every change, save and use case
// request, then call next.
func (sm *StreamManager) Hooks(next domain.Hooks) domain.Hooks {
	publish := func(fn func(*domain.ChangeInfo)) func(*domain.ChangeInfo) {
		return func(info *domain.ChangeInfo) {
			sm.Broadcast(EventFrom(info))
			if fn != nil {
				fn(info)
			}
		}
	}
	return domain.Hooks{
		OnChange:         publish(next.OnChange),
		OnSave:           publish(next.OnSave),
		OnExecuteUseCase: publish(next.OnExecuteUseCase),
		OnReject:         next.OnReject,
	}
}
