// Package discovery wraps local-network mDNS service discovery: registering
// a uniquely named airshare endpoint and resolving one by name.
package discovery

import (
	"context"
	"fmt"
	"sync"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/grandcat/zeroconf"

	"github.com/moyoez/airshare-go/tool"
	"github.com/moyoez/airshare-go/types"
)

const (
	// ServiceType is shared by every airshare participant so unrelated
	// services never collide in the namespace.
	ServiceType = "_airshare._http._tcp"
	Domain      = "local."

	DefaultLookupTimeout = 3 * time.Second
	lookupCacheTTL       = 30 * time.Second
)

// Registry is an explicit discovery client with an init/shutdown lifecycle.
// Multiple registrations and lookups in one process are composable through
// a single Registry instance.
type Registry struct {
	lookupTimeout time.Duration

	mu      sync.Mutex
	servers map[string]*zeroconf.Server

	// resolved records are cached briefly so repeated resolutions of the
	// same code within one client operation skip the multicast round trip.
	cache *ttlworker.Cache[string, types.ServiceRecord]
}

// Option configures a Registry.
type Option func(*Registry)

// WithLookupTimeout bounds every multicast query.
func WithLookupTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d > 0 {
			r.lookupTimeout = d
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		lookupTimeout: DefaultLookupTimeout,
		servers:       make(map[string]*zeroconf.Server),
		cache:         ttlworker.NewCache[string, types.ServiceRecord](lookupCacheTTL),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register announces name on the local network. It fails with
// ErrNameAlreadyRegistered when a live record with the same name already
// answers; it never overwrites. The announcement is live when Register
// returns, so callers can bind their listener afterwards knowing the name
// is theirs.
func (r *Registry) Register(name string, port int) (*types.ServiceRecord, error) {
	// The collision pre-check must see the live network. A cached record
	// may belong to a server that has since died; only a fresh answer
	// counts against registration.
	r.cache.Delete(name)
	ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
	existing, err := r.lookupNetwork(ctx, name)
	cancel()
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("`%s` already answers at %s:%d: %w",
			name, existing.Address, existing.Port, types.ErrNameAlreadyRegistered)
	}

	ip, err := tool.GetLocalIPv4()
	if err != nil {
		return nil, err
	}

	server, err := zeroconf.RegisterProxy(
		name, ServiceType, Domain, port,
		name, []string{ip.String()},
		[]string{"role=airshare"}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register mDNS service `%s`: %v", name, err)
	}

	r.mu.Lock()
	if old, ok := r.servers[name]; ok {
		old.Shutdown()
	}
	r.servers[name] = server
	r.mu.Unlock()

	tool.DefaultLogger.Infof("mDNS service registered: %s%s at %s:%d", name, ServiceType, ip, port)
	return &types.ServiceRecord{Name: name, Address: ip, Port: port}, nil
}

// Lookup resolves name with a bounded multicast query. Absence is a normal
// outcome: it returns (nil, nil) when nothing answers within the timeout.
func (r *Registry) Lookup(name string) (*types.ServiceRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.lookupTimeout)
	defer cancel()
	return r.LookupContext(ctx, name)
}

// LookupContext is Lookup bounded by the caller's context instead of the
// registry default.
func (r *Registry) LookupContext(ctx context.Context, name string) (*types.ServiceRecord, error) {
	if cached := r.cache.Get(name); cached.Address != nil {
		return &cached, nil
	}
	return r.lookupNetwork(ctx, name)
}

// lookupNetwork always issues a multicast query, never answering from the
// cache. A fresh answer is cached for subsequent lookups.
func (r *Registry) lookupNetwork(ctx context.Context, name string) (*types.ServiceRecord, error) {
	resolver, err := zeroconf.NewResolver(zeroconf.SelectIPTraffic(zeroconf.IPv4))
	if err != nil {
		return nil, fmt.Errorf("failed to create mDNS resolver: %v", err)
	}

	entries := make(chan *zeroconf.ServiceEntry, 4)
	lookupCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := resolver.Lookup(lookupCtx, name, ServiceType, Domain, entries); err != nil {
		return nil, fmt.Errorf("mDNS lookup failed: %v", err)
	}

	for entry := range entries {
		if entry == nil || len(entry.AddrIPv4) == 0 {
			continue
		}
		record := types.ServiceRecord{
			Name:    name,
			Address: entry.AddrIPv4[0],
			Port:    entry.Port,
		}
		r.cache.Set(name, record)
		return &record, nil
	}
	// channel closed by the resolver on context expiry: nobody answered
	return nil, nil
}

// Unregister withdraws a single announcement owned by this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if server, ok := r.servers[name]; ok {
		server.Shutdown()
		delete(r.servers, name)
		r.cache.Delete(name)
	}
}

// Shutdown withdraws every announcement owned by this registry. The record
// is treated as gone by other participants once responses stop.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, server := range r.servers {
		server.Shutdown()
		delete(r.servers, name)
	}
}
