// Package health tracks backend reachability for the kiosk.
package health

// Event is the edge produced by a probe observation.
type Event int

const (
	// EventNone means the observation changed nothing.
	EventNone Event = iota
	// EventWentOffline fires on the first failed probe of an outage. The UI
	// degrades to the full-screen unavailable notice.
	EventWentOffline
	// EventRecovered fires on the first successful probe after an outage,
	// exactly once per outage. The owner performs one full reload.
	EventRecovered
)

// Monitor is the connectivity state machine fed by periodic ping results.
// A one-shot guard ensures recovery from an outage triggers a single reload,
// however many successful probes follow.
type Monitor struct {
	online   bool
	failures int
}

// NewMonitor returns a monitor that assumes the backend is reachable until a
// probe says otherwise.
func NewMonitor() *Monitor {
	return &Monitor{online: true}
}

// Online reports current reachability.
func (m *Monitor) Online() bool {
	return m.online
}

// Failures returns the count of consecutive failed probes.
func (m *Monitor) Failures() int {
	return m.failures
}

// Observe feeds one probe result into the monitor and returns the resulting
// edge, if any.
func (m *Monitor) Observe(ok bool) Event {
	if !ok {
		m.failures++
		if m.online {
			m.online = false
			return EventWentOffline
		}
		return EventNone
	}

	m.failures = 0
	if !m.online {
		m.online = true
		return EventRecovered
	}
	return EventNone
}
