package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/Coshio12/gestionar-carrera/internal/inscritos"
)

const (
	eventUpdated = "inscrito_updated"
	eventRemoved = "inscrito_removed"
	eventDeleted = "inscrito_deleted"
)

// ChangeEvent tells open admin screens of a category how their list changed.
// inscrito_updated carries the full record; inscrito_removed (moved to another
// category) and inscrito_deleted only carry the id.
type ChangeEvent struct {
	Type     string        `json:"type"`
	ID       inscritos.ID  `json:"id"`
	Inscrito *InscritoItem `json:"inscrito,omitempty"`
}

// message is one encoded event as delivered to subscribers.
type message struct {
	Seq   uint64
	Event string
	Data  []byte
}

// Broker is an in-process pub/sub for change events, keyed by category ID.
type Broker struct {
	mu   sync.RWMutex
	seq  atomic.Uint64
	subs map[inscritos.ID]map[chan message]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[inscritos.ID]map[chan message]struct{}),
	}
}

// Subscribe returns a channel that receives the category's events.
func (b *Broker) Subscribe(categoryID inscritos.ID) chan message {
	ch := make(chan message, 16)
	b.mu.Lock()
	if b.subs[categoryID] == nil {
		b.subs[categoryID] = make(map[chan message]struct{})
	}
	b.subs[categoryID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(categoryID inscritos.ID, ch chan message) {
	b.mu.Lock()
	delete(b.subs[categoryID], ch)
	if len(b.subs[categoryID]) == 0 {
		delete(b.subs, categoryID)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the category. Slow
// subscribers miss events rather than block the publisher.
func (b *Broker) Publish(categoryID inscritos.ID, event ChangeEvent) {
	data, _ := json.Marshal(event)
	msg := message{Seq: b.seq.Add(1), Event: event.Type, Data: data}

	b.mu.RLock()
	for ch := range b.subs[categoryID] {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.RUnlock()
}
