// Package jobs registra execuções assíncronas do pipeline e distribui seus
// eventos para os assinantes. Cada execução é dona exclusiva do seu estado;
// execuções concorrentes não se enxergam.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/purchasestore/shein-finance-extract/internal/domain"
)

const subscriberBuffer = 64

// Job é uma execução do pipeline: guarda o histórico de eventos para replay
// e repassa eventos novos aos assinantes conectados.
type Job struct {
	ID string

	mu         sync.Mutex
	events     []domain.Event
	subs       map[chan domain.Event]struct{}
	done       bool
	finishedAt time.Time
}

// Publish appends the event to the job history and fans it out. After a
// terminal event the job is closed and subscriber channels are released;
// further events are dropped.
func (j *Job) Publish(ev domain.Event) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.done {
		return
	}
	j.events = append(j.events, ev)

	for ch := range j.subs {
		select {
		case ch <- ev:
		default:
			// assinante lento: descarta o evento, o histórico cobre o replay
		}
	}

	if ev.Terminal() {
		j.done = true
		j.finishedAt = time.Now()
		for ch := range j.subs {
			close(ch)
		}
		j.subs = nil
	}
}

// Subscribe returns the event history so far and a channel with subsequent
// events. The channel is closed after the terminal event (immediately, when
// the job already finished). cancel releases the subscription.
func (j *Job) Subscribe() (history []domain.Event, ch <-chan domain.Event, cancel func()) {
	j.mu.Lock()
	defer j.mu.Unlock()

	history = make([]domain.Event, len(j.events))
	copy(history, j.events)

	c := make(chan domain.Event, subscriberBuffer)
	if j.done {
		close(c)
		return history, c, func() {}
	}

	j.subs[c] = struct{}{}
	return history, c, func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if _, ok := j.subs[c]; ok {
			delete(j.subs, c)
			close(c)
		}
	}
}

// Done reports whether the job already emitted its terminal event.
func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

func (j *Job) expiredSince(now time.Time, maxAge time.Duration) bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done && now.Sub(j.finishedAt) >= maxAge
}

// Manager guarda os jobs por id. Jobs terminados ficam disponíveis para
// replay do histórico até serem varridos por Expire.
type Manager struct {
	mu   sync.RWMutex
	jobs map[string]*Job
}

// NewManager cria um registro de jobs vazio.
func NewManager() *Manager {
	return &Manager{jobs: make(map[string]*Job)}
}

// Create registers a new job with a fresh id.
func (m *Manager) Create() *Job {
	job := &Job{
		ID:   uuid.NewString(),
		subs: make(map[chan domain.Event]struct{}),
	}
	m.mu.Lock()
	m.jobs[job.ID] = job
	m.mu.Unlock()
	return job
}

// Get looks a job up by id.
func (m *Manager) Get(id string) (*Job, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	job, ok := m.jobs[id]
	return job, ok
}

// Expire removes finished jobs whose terminal event is at least maxAge old
// and reports how many were removed. Running jobs are never removed.
func (m *Manager) Expire(maxAge time.Duration) int {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, job := range m.jobs {
		if job.expiredSince(now, maxAge) {
			delete(m.jobs, id)
			removed++
		}
	}
	return removed
}
