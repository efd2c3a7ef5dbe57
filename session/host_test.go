package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/airshare-go/api/models"
	"github.com/moyoez/airshare-go/types"
)

func TestStartRequiresSession(t *testing.T) {
	_, err := Start(Config{Code: "x"})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestStartRequiresCode(t *testing.T) {
	session, err := models.NewTextSession("hi")
	require.NoError(t, err)
	_, err = Start(Config{Session: session})
	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestStartStop(t *testing.T) {
	// registers a real mDNS record; unreliable in CI
	if testing.Short() {
		t.Skip("Skipping mDNS test in short mode")
	}

	session, err := models.NewTextSession("hosted text")
	require.NoError(t, err)

	h, err := Start(Config{
		Code:    "airshare-host-test",
		Port:    18742,
		Session: session,
	})
	require.NoError(t, err)

	select {
	case <-h.Done():
		t.Fatalf("server exited prematurely: %v", h.Err())
	case <-time.After(500 * time.Millisecond):
	}

	require.NoError(t, h.Stop())
}
