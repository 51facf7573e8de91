package registry

import (
	"sync"

	"gotalk/internal/dbmysql"
)

// Outcome reports what happened to a delivery attempt. NoChannel is a normal
// outcome meaning the recipient is offline, not an error.
type Outcome int

const (
	Delivered Outcome = iota
	NoChannel
)

func (o Outcome) String() string {
	if o == Delivered {
		return "delivered"
	}
	return "no_channel"
}

// ChannelCapacity bounds the number of undrained messages a live channel can
// hold before the oldest one is dropped.
const ChannelCapacity = 100

// ConnectionRegistry maps each online user to a single live delivery channel.
// It is the only writer of that mapping; callers never see the raw map.
type ConnectionRegistry struct {
	mu       sync.Mutex
	channels map[uint64]chan *dbmysql.Message
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{
		channels: make(map[uint64]chan *dbmysql.Message),
	}
}

// Register creates a live delivery channel for userID. Last registration
// wins: any previous channel for the same user is closed and replaced.
func (r *ConnectionRegistry) Register(userID uint64) <-chan *dbmysql.Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.channels[userID]; ok {
		close(old)
	}

	ch := make(chan *dbmysql.Message, ChannelCapacity)
	r.channels[userID] = ch
	return ch
}

// Unregister removes the user's mapping and closes the channel so streaming
// readers terminate. Unregistering an absent user is a no-op.
func (r *ConnectionRegistry) Unregister(userID uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ch, ok := r.channels[userID]; ok {
		close(ch)
		delete(r.channels, userID)
	}
}

// Deliver enqueues msg on the recipient's live channel if one exists. The
// enqueue never blocks: when the channel is full the oldest buffered message
// is dropped to make room. Delivery is best-effort, durability is the store's
// job.
func (r *ConnectionRegistry) Deliver(msg *dbmysql.Message) Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch, ok := r.channels[msg.ToUserID]
	if !ok {
		return NoChannel
	}

	for {
		select {
		case ch <- msg:
			return Delivered
		default:
			// Channel full, drop the oldest buffered message. The inner
			// default covers a reader draining the channel between the two
			// selects.
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Online reports how many users currently hold a live channel.
func (r *ConnectionRegistry) Online() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.channels)
}
