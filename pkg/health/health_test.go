package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_OutageAndRecovery(t *testing.T) {
	m := NewMonitor()
	assert.True(t, m.Online())

	// First failure degrades the kiosk.
	assert.Equal(t, EventWentOffline, m.Observe(false))
	assert.False(t, m.Online())

	// Further failures are silent.
	assert.Equal(t, EventNone, m.Observe(false))
	assert.Equal(t, EventNone, m.Observe(false))
	assert.Equal(t, 3, m.Failures())

	// First success after the outage fires recovery exactly once.
	assert.Equal(t, EventRecovered, m.Observe(true))
	assert.True(t, m.Online())
	assert.Zero(t, m.Failures())

	// Staying online never re-fires the reload.
	assert.Equal(t, EventNone, m.Observe(true))
	assert.Equal(t, EventNone, m.Observe(true))
}

func TestMonitor_SecondOutageRecoversAgain(t *testing.T) {
	m := NewMonitor()

	assert.Equal(t, EventWentOffline, m.Observe(false))
	assert.Equal(t, EventRecovered, m.Observe(true))

	assert.Equal(t, EventWentOffline, m.Observe(false))
	assert.Equal(t, EventRecovered, m.Observe(true))
}

func TestMonitor_HealthyProbesAreSilent(t *testing.T) {
	m := NewMonitor()

	for i := 0; i < 5; i++ {
		assert.Equal(t, EventNone, m.Observe(true))
	}
	assert.True(t, m.Online())
}
