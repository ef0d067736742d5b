package slideshow

import (
	"container/heap"
	"log"
	"sync"
	"time"
)

// VirtualScheduler is a Scheduler driven by a virtual clock. Time only moves
// when Advance is called, and due ticks run synchronously on the caller's
// goroutine in time order. Ticks due at the same instant run in the order
// they were queued.
type VirtualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewVirtualScheduler creates a scheduler whose clock starts at zero.
func NewVirtualScheduler() *VirtualScheduler {
	s := new(VirtualScheduler)
	s.queue = make(timerQueue, 0)
	heap.Init(&s.queue)
	return s
}

// Every queues fn to run each interval of virtual time.
func (s *VirtualScheduler) Every(interval time.Duration, fn func()) Timer {
	if interval <= 0 {
		log.Panicf("slideshow: cannot schedule a timer every %s", interval)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &virtualTimer{
		owner:    s,
		interval: interval,
		next:     s.now + interval,
		seq:      s.seq,
		fn:       fn,
	}
	heap.Push(&s.queue, t)

	return t
}

// Advance moves the clock forward by d, running every tick that falls due on
// the way. A tick may stop or start timers; new timers are honored if they
// fall due before the advance ends.
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if s.queue.Len() == 0 || s.queue[0].next > target {
			s.now = target
			s.mu.Unlock()
			return
		}

		t := heap.Pop(&s.queue).(*virtualTimer)
		s.now = t.next
		t.next += t.interval
		s.seq++
		t.seq = s.seq
		heap.Push(&s.queue, t)
		fn := t.fn
		s.mu.Unlock()

		fn()
	}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *VirtualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.now
}

// Pending returns the number of live timers.
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.queue.Len()
}

// NextTick returns when the earliest live timer fires next, and false when
// there is none.
func (s *VirtualScheduler) NextTick() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.queue.Len() == 0 {
		return 0, false
	}
	return s.queue[0].next, true
}

type virtualTimer struct {
	owner    *VirtualScheduler
	interval time.Duration
	next     time.Duration
	seq      uint64
	fn       func()
	index    int
	stopped  bool
}

func (t *virtualTimer) Stop() {
	s := t.owner
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.stopped {
		return
	}
	t.stopped = true
	if t.index >= 0 {
		heap.Remove(&s.queue, t.index)
	}
}

type timerQueue []*virtualTimer

func (q timerQueue) Len() int {
	return len(q)
}

func (q timerQueue) Less(i, j int) bool {
	if q[i].next == q[j].next {
		return q[i].seq < q[j].seq
	}
	return q[i].next < q[j].next
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*virtualTimer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
