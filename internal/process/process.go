// Package process gates the session probe on the game client being present
// in the process table, so no HTTP request is made while the game is closed.
package process

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	gops "github.com/shirou/gopsutil/v3/process"

	"github.com/glory-app/glory/internal/session"
)

const (
	// DefaultCacheFor is how long a process-table scan result is reused.
	DefaultCacheFor = 5 * time.Second
	// DefaultScanTimeout bounds one process-table scan.
	DefaultScanTimeout = time.Second
)

// Lister returns the names of running processes.
type Lister func(ctx context.Context) ([]string, error)

// Gate wraps a session.Probe. When no process matching name is running the
// match is reported inactive without consulting the wrapped probe.
type Gate struct {
	name        string
	probe       session.Probe
	list        Lister
	cacheFor    time.Duration
	scanTimeout time.Duration
	now         func() time.Time

	running bool
	checked time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithCacheFor sets how long a scan result is reused. Zero scans every call.
func WithCacheFor(d time.Duration) Option {
	return func(g *Gate) {
		if d >= 0 {
			g.cacheFor = d
		}
	}
}

// WithScanTimeout bounds each process-table scan.
func WithScanTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.scanTimeout = d
		}
	}
}

func NewGate(name string, probe session.Probe, opts ...Option) *Gate {
	g := &Gate{
		name:        name,
		probe:       probe,
		list:        Names,
		cacheFor:    DefaultCacheFor,
		scanTimeout: DefaultScanTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Active implements session.Probe.
func (g *Gate) Active(ctx context.Context) (bool, error) {
	if !g.gameRunning(ctx) {
		return false, nil
	}
	return g.probe.Active(ctx)
}

func (g *Gate) gameRunning(ctx context.Context) bool {
	now := g.now()
	if !g.checked.IsZero() && now.Sub(g.checked) < g.cacheFor {
		return g.running
	}
	scanCtx, cancel := context.WithTimeout(ctx, g.scanTimeout)
	defer cancel()
	names, err := g.list(scanCtx)
	if err != nil {
		// Can't tell; let the wrapped probe decide.
		return true
	}
	g.running = Matches(names, g.name)
	g.checked = now
	return g.running
}

// Matches reports whether any of names is the wanted process, ignoring case
// and a trailing ".exe".
func Matches(names []string, want string) bool {
	want = normalize(want)
	for _, n := range names {
		if normalize(n) == want {
			return true
		}
	}
	return false
}

func normalize(name string) string {
	name = strings.ToLower(filepath.Base(strings.TrimSpace(name)))
	return strings.TrimSuffix(name, ".exe")
}

// Names lists running process names. Processes that exit mid-scan or cannot
// be inspected are skipped. A scan cut short by ctx is an error, never a
// partial list.
func Names(ctx context.Context) ([]string, error) {
	procs, err := gops.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		n, err := p.NameWithContext(ctx)
		if err != nil || n == "" {
			continue
		}
		names = append(names, n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
