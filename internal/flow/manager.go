package flow

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched in-progress flow is kept.
const DefaultIdleTTL = 30 * time.Minute

type activeFlow struct {
	flow    Flow
	handler string
	entryID string
	touched time.Time
}

// Manager keeps the in-progress flows of one kind. Flows that reach a
// terminal result are dropped; flows idle for longer than the TTL are
// evicted on the next Start or Configure.
type Manager struct {
	mu    sync.Mutex
	flows map[string]*activeFlow
	ttl   time.Duration
	now   func() time.Time
}

// ManagerOption tunes a Manager.
type ManagerOption func(*Manager)

// WithIdleTTL overrides DefaultIdleTTL. Non-positive values are ignored.
func WithIdleTTL(d time.Duration) ManagerOption {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{flows: make(map[string]*activeFlow), ttl: DefaultIdleTTL, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// evictLocked drops flows idle since before now-ttl. m.mu must be held.
func (m *Manager) evictLocked(now time.Time) {
	for id, af := range m.flows {
		if now.Sub(af.touched) > m.ttl {
			delete(m.flows, id)
		}
	}
}

// Start runs the first step of f and keeps it if it awaits more input.
// entryID binds the flow to an existing entry and may be empty.
func (m *Manager) Start(handler, entryID string, f Flow, input map[string]any) (Result, error) {
	res, err := f.Step(input)
	if err != nil {
		return Result{}, err
	}
	af := &activeFlow{flow: f, handler: handler, entryID: entryID}
	res = af.stamp(uuid.NewString(), res)

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.evictLocked(now)
	if !res.Terminal() {
		af.touched = now
		m.flows[res.FlowID] = af
	}
	return res, nil
}

// Configure advances the flow with input; a nil input re-shows the form.
func (m *Manager) Configure(flowID string, input map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.evictLocked(now)
	af, ok := m.flows[flowID]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrFlowNotFound, flowID)
	}
	res, err := af.flow.Step(input)
	if err != nil {
		return Result{}, err
	}
	af.touched = now
	if res.Terminal() {
		delete(m.flows, flowID)
	}
	return af.stamp(flowID, res), nil
}

// Progress returns the current form of a flow.
func (m *Manager) Progress(flowID string) (Result, error) {
	return m.Configure(flowID, nil)
}

// Abort discards an in-progress flow.
func (m *Manager) Abort(flowID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flows[flowID]; !ok {
		return fmt.Errorf("%w: %s", ErrFlowNotFound, flowID)
	}
	delete(m.flows, flowID)
	return nil
}

// Len reports the number of in-progress flows.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.flows)
}

func (af *activeFlow) stamp(flowID string, res Result) Result {
	res.FlowID = flowID
	res.Handler = af.handler
	if res.EntryID == "" {
		res.EntryID = af.entryID
	}
	return res
}
