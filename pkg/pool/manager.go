package pool

import (
	"sync"

	"go.uber.org/zap"

	"github.com/repool/repool/pkg/errors"
)

// Disposable is the teardown surface a Manager requires of its pools. Every
// pool variant in this package satisfies it.
type Disposable interface {
	Dispose()
}

// Manager owns the lifetime of a set of named pools. It replaces the global
// singleton pattern: the owning context (a server, a session, a game loop)
// constructs a Manager, registers its pools, passes references explicitly to
// the code that needs them, and calls Close during teardown. There is no
// package-level manager instance.
type Manager struct {
	mu    sync.Mutex
	order []string
	pools map[string]Disposable
	log   *zap.Logger
}

// NewManager creates an empty manager. A nil logger disables lifecycle
// logging.
func NewManager(log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		pools: make(map[string]Disposable),
		log:   log,
	}
}

// Register adds a pool under a unique name. Registering a duplicate name is
// a validation error.
func (m *Manager) Register(name string, p Disposable) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.pools[name]; exists {
		return errors.New(errors.ErrorTypeValidation, "pool already registered").
			WithDetail("name", name)
	}
	m.pools[name] = p
	m.order = append(m.order, name)
	m.log.Debug("pool registered", zap.String("name", name))
	return nil
}

// Get returns the pool registered under name. Callers normally hold their
// own typed references; Get exists for code that only needs the teardown
// surface.
func (m *Manager) Get(name string) (Disposable, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pools[name]
	return p, ok
}

// Len returns the number of registered pools.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pools)
}

// Close disposes every registered pool in reverse registration order, so
// pools layered on other pools tear down before their dependencies. The
// manager is empty afterwards and can be reused.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		m.pools[name].Dispose()
		m.log.Debug("pool disposed", zap.String("name", name))
	}
	m.order = m.order[:0]
	m.pools = make(map[string]Disposable)
}
