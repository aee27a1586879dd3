package systems

import (
	"github.com/emirpasic/gods/queues/priorityqueue"
)

// scheduled is a deferred mutation.
type scheduled struct {
	at    float64
	seq   uint64
	apply func()
}

// Scheduler runs one-shot effects at a future simulation time.
// Effects fire on the frame that owns the particle state, in (time, insertion) order.
type Scheduler struct {
	queue *priorityqueue.Queue
	seq   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: priorityqueue.NewWith(func(a, b interface{}) int {
			ea := a.(scheduled)
			eb := b.(scheduled)
			switch {
			case ea.at < eb.at:
				return -1
			case ea.at > eb.at:
				return 1
			case ea.seq < eb.seq:
				return -1
			case ea.seq > eb.seq:
				return 1
			}
			return 0
		}),
	}
}

// Schedule queues fn to run once the clock reaches at (ms).
func (s *Scheduler) Schedule(at float64, fn func()) {
	s.queue.Enqueue(scheduled{at: at, seq: s.seq, apply: fn})
	s.seq++
}

// RunDue runs every effect due at or before now and returns how many ran.
// Effects scheduled by a running effect for a time <= now also run.
func (s *Scheduler) RunDue(now float64) int {
	ran := 0
	for {
		v, ok := s.queue.Peek()
		if !ok || v.(scheduled).at > now {
			return ran
		}
		s.queue.Dequeue()
		v.(scheduled).apply()
		ran++
	}
}

// Len returns the number of pending effects.
func (s *Scheduler) Len() int {
	return s.queue.Size()
}

// Clear drops every pending effect.
func (s *Scheduler) Clear() {
	s.queue.Clear()
}
