package batch

import (
	"fmt"
	"sync"

	gait "github.com/lucasjlepore/gait-analyzer"
)

// Kind tags a Message.
type Kind int

const (
	Nothing Kind = iota
	Running
	Abort
	Done
)

func (k Kind) String() string {
	switch k {
	case Nothing:
		return "nothing"
	case Running:
		return "running"
	case Abort:
		return "abort"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// DataInfo is one analysed recording.
type DataInfo struct {
	Path      string
	Name      string
	Recording *gait.RecordingName
	Data      *gait.RawData
}

// Message is a progress report from the worker. Only the fields of its
// Kind are set.
type Message struct {
	Kind     Kind
	Progress float64
	Label    string
	Reason   string
	Results  []DataInfo
}

// Terminal reports whether no message follows this one.
func (m Message) Terminal() bool { return m.Kind == Abort || m.Kind == Done }

// Mailbox keeps the latest message for a single observer.
type Mailbox struct {
	mu     sync.Mutex
	msg    Message
	notify func()
}

// NewMailbox returns an empty mailbox. notify, when set, is called after
// every delivery, outside the lock, on the delivering goroutine. It must not
// block: a Runner stays Running until notify returns for its last message.
func NewMailbox(notify func()) *Mailbox {
	return &Mailbox{notify: notify}
}

// Put replaces the held message.
func (m *Mailbox) Put(msg Message) {
	m.mu.Lock()
	m.msg = msg
	m.mu.Unlock()
	if m.notify != nil {
		m.notify()
	}
}

// Latest returns the held message and leaves it in place.
func (m *Mailbox) Latest() Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.msg
}

// Take returns the held message and resets the slot to Nothing.
func (m *Mailbox) Take() Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg := m.msg
	m.msg = Message{}
	return msg
}
