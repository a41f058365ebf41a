package connectivity

import "sync"

// Monitor tracks the kiosk shell's online/offline transitions. Offline means
// "trust only the local cache and show a banner", nothing more: there is no
// write queue and no reconciliation.
type Monitor struct {
	mu        sync.RWMutex
	online    bool
	listeners []func(bool)
}

func NewMonitor() *Monitor {
	return &Monitor{online: true}
}

func (m *Monitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// OnChange registers a listener invoked on every transition.
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// SetOnline flips the flag. Listeners fire only on an actual transition.
func (m *Monitor) SetOnline(online bool) {
	m.mu.Lock()
	if m.online == online {
		m.mu.Unlock()
		return
	}
	m.online = online
	listeners := make([]func(bool), len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(online)
	}
}
