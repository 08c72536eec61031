package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dujiao-next/tableorder/internal/constants"
)

// ErrBrokerClosed broker 已关闭
var ErrBrokerClosed = errors.New("realtime broker closed")

// Event 表级变更事件
type Event struct {
	Table     string    `json:"table"`
	Type      string    `json:"type"` // INSERT / UPDATE / DELETE
	RecordID  string    `json:"record_id"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Broker 变更事件的发布与订阅
type Broker interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(table, eventType string) *Subscription
	Close() error
}

// Subscription 订阅句柄
type Subscription struct {
	C      <-chan Event
	ch     chan Event
	table  string
	event  string
	hub    *hub
	closed sync.Once
}

// Unsubscribe 取消订阅
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.closed.Do(func() {
		s.hub.remove(s)
	})
}

func (s *Subscription) matches(event Event) bool {
	if s.table != "" && s.table != event.Table {
		return false
	}
	return s.event == "" || s.event == constants.RealtimeEventAll || strings.EqualFold(s.event, event.Type)
}

// hub 进程内扇出
type hub struct {
	mu     sync.RWMutex
	subs   map[*Subscription]struct{}
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[*Subscription]struct{})}
}

func (h *hub) subscribe(table, eventType string) *Subscription {
	ch := make(chan Event, 16)
	sub := &Subscription{C: ch, ch: ch, table: table, event: eventType, hub: h}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return sub
	}
	h.subs[sub] = struct{}{}
	return sub
}

func (h *hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[sub]; !ok {
		return
	}
	delete(h.subs, sub)
	close(sub.ch)
}

// dispatch 非阻塞投递，订阅方积压时丢弃（消费方收到任意事件都会整体刷新）
func (h *hub) dispatch(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if !sub.matches(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for sub := range h.subs {
		close(sub.ch)
		delete(h.subs, sub)
	}
}

func normalizeEvent(event Event) Event {
	if event.Table == "" {
		event.Table = constants.RealtimeTableOrders
	}
	event.Type = strings.ToUpper(strings.TrimSpace(event.Type))
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return event
}

func encodeEvent(event Event) (string, error) {
	raw, err := json.Marshal(event)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func decodeEvent(payload string) (Event, error) {
	var event Event
	err := json.Unmarshal([]byte(payload), &event)
	return event, err
}

// MemoryBroker 单进程 broker
type MemoryBroker struct {
	hub *hub
}

// NewMemoryBroker 创建单进程 broker
func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{hub: newHub()}
}

// Publish 发布事件
func (b *MemoryBroker) Publish(_ context.Context, event Event) error {
	b.hub.dispatch(normalizeEvent(event))
	return nil
}

// Subscribe 订阅事件
func (b *MemoryBroker) Subscribe(table, eventType string) *Subscription {
	return b.hub.subscribe(table, eventType)
}

// Close 关闭
func (b *MemoryBroker) Close() error {
	b.hub.close()
	return nil
}
