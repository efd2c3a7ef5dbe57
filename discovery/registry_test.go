package discovery

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyoez/airshare-go/types"
)

// mDNS tests touch the real network stack and can be unreliable in CI.
func skipWithoutNetwork(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping mDNS test in short mode")
	}
}

func TestLookupAbsence(t *testing.T) {
	skipWithoutNetwork(t)

	r := NewRegistry(WithLookupTimeout(1 * time.Second))
	defer r.Shutdown()

	record, err := r.Lookup("airshare-test-never-registered")
	require.NoError(t, err)
	assert.Nil(t, record, "unregistered name must resolve to absence, not an error")
}

func TestRegisterThenLookup(t *testing.T) {
	skipWithoutNetwork(t)

	r := NewRegistry(WithLookupTimeout(3 * time.Second))
	defer r.Shutdown()

	record, err := r.Register("airshare-test-instance", 8912)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "airshare-test-instance", record.Name)
	assert.Equal(t, 8912, record.Port)
	assert.NotNil(t, record.Address.To4())

	time.Sleep(300 * time.Millisecond) // allow the announcement to settle

	resolved, err := r.Lookup("airshare-test-instance")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, 8912, resolved.Port)
}

func TestRegisterCollision(t *testing.T) {
	skipWithoutNetwork(t)

	r := NewRegistry(WithLookupTimeout(3 * time.Second))
	defer r.Shutdown()

	_, err := r.Register("airshare-test-collision", 8913)
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)

	other := NewRegistry(WithLookupTimeout(3 * time.Second))
	defer other.Shutdown()

	_, err = other.Register("airshare-test-collision", 8914)
	assert.True(t, errors.Is(err, types.ErrNameAlreadyRegistered))

	// a different name still registers fine while the first is live
	_, err = other.Register("airshare-test-collision-other", 8915)
	assert.NoError(t, err)
}

func TestWithLookupTimeout(t *testing.T) {
	r := NewRegistry(WithLookupTimeout(7 * time.Second))
	defer r.Shutdown()
	assert.Equal(t, 7*time.Second, r.lookupTimeout)

	// non-positive values keep the default
	r2 := NewRegistry(WithLookupTimeout(0))
	defer r2.Shutdown()
	assert.Equal(t, DefaultLookupTimeout, r2.lookupTimeout)
}

func TestLookupServesCachedRecord(t *testing.T) {
	r := NewRegistry()
	defer r.Shutdown()

	cached := types.ServiceRecord{
		Name:    "airshare-test-cached",
		Address: net.ParseIP("192.0.2.7").To4(),
		Port:    8080,
	}
	r.cache.Set("airshare-test-cached", cached)

	record, err := r.Lookup("airshare-test-cached")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, cached.Port, record.Port)
}

func TestRegisterIgnoresStaleCachedRecord(t *testing.T) {
	skipWithoutNetwork(t)

	r := NewRegistry(WithLookupTimeout(1 * time.Second))
	defer r.Shutdown()

	// a record left behind by an earlier lookup whose server has since
	// gone away: only a live answer may block registration
	r.cache.Set("airshare-test-stale", types.ServiceRecord{
		Name:    "airshare-test-stale",
		Address: net.ParseIP("192.0.2.10").To4(),
		Port:    9999,
	})

	record, err := r.Register("airshare-test-stale", 8916)
	require.NoError(t, err, "a dead cached record must not count as a live registration")
	require.NotNil(t, record)
	assert.Equal(t, 8916, record.Port)
}
