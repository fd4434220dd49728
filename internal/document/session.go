package document

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/types"
)

// Snapshot is one immutable version of the document
type Snapshot struct {
	Version  uint64           `json:"version"`
	Document types.ResumeData `json:"document"`
}

// Result describes the outcome of a dispatched command
type Result struct {
	Snapshot
	Applied bool `json:"applied"`
}

// Session owns the current snapshot of one editing session. Commands are applied one
// at a time; every applied command produces a new version that is published to subscribers.
type Session struct {
	mu      sync.Mutex
	current Snapshot
	alloc   ids.Allocator
	log     logrus.FieldLogger

	subs    map[int]chan Snapshot
	nextSub int
}

// NewSession starts a session from a seed document that already satisfies the
// document invariants (see Validate and the seed package).
func NewSession(seed types.ResumeData, alloc ids.Allocator, log logrus.FieldLogger) *Session {
	if alloc == nil {
		alloc = ids.NewUUIDAllocator()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		current: Snapshot{Version: 1, Document: seed},
		alloc:   alloc,
		log:     log.WithField("component", "session"),
		subs:    make(map[int]chan Snapshot),
	}
}

// Snapshot returns the current version of the document
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Allocator returns the identifier allocator of this session
func (s *Session) Allocator() ids.Allocator {
	return s.alloc
}

// Dispatch applies cmd to the current snapshot. A command whose target no longer exists
// is not an error; Result.Applied is false and the version is unchanged.
func (s *Session) Dispatch(cmd Command) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, applied, err := Apply(s.current.Document, cmd)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"command": commandName(cmd),
			"error":   err.Error(),
		}).Warn("Command rejected")
		return Result{Snapshot: s.current}, err
	}
	if !applied {
		s.log.WithField("command", commandName(cmd)).Debug("Command target not found, ignoring")
		return Result{Snapshot: s.current}, nil
	}

	s.current = Snapshot{Version: s.current.Version + 1, Document: next}
	s.publish(s.current)
	return Result{Snapshot: s.current, Applied: true}, nil
}

// Subscribe returns a channel that receives every new snapshot. Slow subscribers only
// see the latest one. The returned function unsubscribes and closes the channel.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish must be called with s.mu held
func (s *Session) publish(snap Snapshot) {
	for _, ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
}

func commandName(cmd Command) string {
	if cmd == nil {
		return "<nil>"
	}
	return cmd.Name()
}
