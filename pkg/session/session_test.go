package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	sess, err := New("abc123")
	require.NoError(t, err)
	assert.Equal(t, "abc123", sess.Token)
	assert.NotEqual(t, uuid.Nil, sess.KioskID)
	assert.False(t, sess.StartedAt.IsZero())
}

func TestNew_EmptyToken(t *testing.T) {
	sess, err := New("")
	assert.ErrorIs(t, err, ErrNoToken)
	assert.Nil(t, sess)
}

func TestNew_DistinctKioskIDs(t *testing.T) {
	a, err := New("t")
	require.NoError(t, err)
	b, err := New("t")
	require.NoError(t, err)
	assert.NotEqual(t, a.KioskID, b.KioskID)
}
