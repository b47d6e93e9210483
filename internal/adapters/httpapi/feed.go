package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"staffdir/internal/core"
	"staffdir/internal/seed"
	"staffdir/pkg/domain"
)

const (
	feedBuffer    = 16
	feedWriteWait = 5 * time.Second
)

// CommitEvent is sent to feed subscribers after each effective commit.
type CommitEvent struct {
	Type     string      `json:"type"`
	Employee seed.Record `json:"employee"`
}

// Feed fans committed employees out to websocket subscribers. Slow
// subscribers miss events rather than block commits.
type Feed struct {
	upgrader websocket.Upgrader
	logger   core.Logger

	mu      sync.Mutex
	clients map[*feedClient]struct{}
}

type feedClient struct {
	send chan []byte
}

// NewFeed returns an empty feed. logger may be nil.
func NewFeed(logger core.Logger) *Feed {
	if logger == nil {
		logger = discardLogger{}
	}
	return &Feed{
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		logger:   logger,
		clients:  make(map[*feedClient]struct{}),
	}
}

// Publish implements core.CommitListener.
func (f *Feed) Publish(_ context.Context, e domain.Employee) {
	msg, err := json.Marshal(CommitEvent{Type: "employee.committed", Employee: seed.RecordOf(e)})
	if err != nil {
		f.logger.Error("encode commit event", "error", err)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		select {
		case c.send <- msg:
		default:
			f.logger.Warn("feed subscriber lagging, event dropped", "employee_id", e.ID())
		}
	}
}

// Subscribers returns the number of connected clients.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("feed upgrade failed", "error", err)
		return
	}
	c := &feedClient{send: make(chan []byte, feedBuffer)}
	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	}()

	defer func() {
		f.mu.Lock()
		delete(f.clients, c)
		f.mu.Unlock()
		_ = ws.Close()
	}()
	for {
		select {
		case msg := <-c.send:
			_ = ws.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				f.logger.Debug("feed subscriber gone", "error", err)
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
