package actor

import "sync"

// Message is anything an actor can receive. Type names the message for
// logging and for transport-level dispatch.
type Message interface {
	Type() string
}

// Mailbox is a bounded buffer of pending messages. Send never blocks: a full
// mailbox is an error the sender must handle.
type Mailbox struct {
	messages chan Message
	mu       sync.RWMutex
	closed   bool
}

func NewMailbox(size int) *Mailbox {
	return &Mailbox{messages: make(chan Message, size)}
}

func (m *Mailbox) Send(msg Message) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrMailboxClosed
	}

	select {
	case m.messages <- msg:
		return nil
	default:
		return ErrMailboxFull
	}
}

func (m *Mailbox) Receive() <-chan Message {
	return m.messages
}

func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.messages)
	}
}
