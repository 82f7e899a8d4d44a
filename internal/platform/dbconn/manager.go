package dbconn

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
)

// State is the lifecycle state of the shared store connection.
type State int

const (
	StateNotInitialized State = iota
	StateInitializing
	StateReady
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	default:
		return "not_initialized"
	}
}

// Conn is the transport surface the manager drives: a bounded read-only
// probe against a known table, and a session refresh used during reconnects.
type Conn interface {
	Probe(ctx context.Context) error
	RefreshSession(ctx context.Context) error
}

const (
	defaultBaseDelay    = time.Second
	defaultProbeTimeout = 5 * time.Second
	defaultMaxAttempts  = 3
)

// Manager owns the shared handle to the backing store. It confirms the store
// is reachable and recovers from transient network failure. It is safe for
// concurrent use; construct one per process and inject it where needed.
type Manager struct {
	conn         Conn
	logger       *slog.Logger
	baseDelay    time.Duration
	probeTimeout time.Duration
	maxAttempts  int

	mu       sync.Mutex
	state    State
	inflight *initAttempt
	lastErr  error
}

type initAttempt struct {
	done chan struct{}
	err  error
}

// Option customizes a Manager.
type Option func(*Manager)

// WithBaseDelay overrides the backoff unit used between retry attempts.
func WithBaseDelay(d time.Duration) Option {
	return func(m *Manager) { m.baseDelay = d }
}

// WithProbeTimeout overrides the per-attempt ceiling on a single probe.
func WithProbeTimeout(d time.Duration) Option {
	return func(m *Manager) { m.probeTimeout = d }
}

// NewManager creates a connection manager over the given transport.
// A missing transport is a configuration fault and is never retried.
func NewManager(conn Conn, logger *slog.Logger, opts ...Option) (*Manager, error) {
	if conn == nil {
		return nil, errors.New("dbconn: missing store transport")
	}
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		conn:         conn,
		logger:       logger,
		baseDelay:    defaultBaseDelay,
		probeTimeout: defaultProbeTimeout,
		maxAttempts:  defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Initialize confirms the store is reachable and marks the manager Ready.
// It is idempotent, and concurrent callers share a single in-flight attempt
// instead of racing duplicate setups. On failure the in-flight handle is
// cleared so a later call can retry; this path never retries by itself.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateReady {
		m.mu.Unlock()
		return nil
	}
	if m.inflight != nil {
		attempt := m.inflight
		m.mu.Unlock()
		select {
		case <-attempt.done:
			return attempt.err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	attempt := &initAttempt{done: make(chan struct{})}
	m.inflight = attempt
	m.state = StateInitializing
	m.mu.Unlock()

	var err error
	if !m.HealthCheck(ctx) {
		err = errors.New("database health check failed")
	}

	m.mu.Lock()
	attempt.err = err
	if err != nil {
		m.state = StateNotInitialized
		m.lastErr = err
	} else {
		m.state = StateReady
		m.lastErr = nil
	}
	m.inflight = nil
	m.mu.Unlock()
	close(attempt.done)

	if err != nil {
		m.logger.Error("failed to initialize database connection", slog.String("error", err.Error()))
	}
	return err
}

// HealthCheck probes a known table with a bounded read. An empty table still
// proves the store is reachable, so pgx.ErrNoRows counts as healthy. Other
// faults are retried with linearly increasing delay before reporting failure.
func (m *Manager) HealthCheck(ctx context.Context) bool {
	var lastErr error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		probeCtx, cancel := context.WithTimeout(ctx, m.probeTimeout)
		err := m.conn.Probe(probeCtx)
		cancel()
		if err == nil || errors.Is(err, pgx.ErrNoRows) {
			return true
		}
		lastErr = err
		if attempt < m.maxAttempts {
			select {
			case <-time.After(time.Duration(attempt) * m.baseDelay):
			case <-ctx.Done():
				m.logger.Error("database health check abandoned", slog.String("error", ctx.Err().Error()))
				return false
			}
		}
	}
	m.logger.Error("database health check failed", slog.String("error", lastErr.Error()))
	return false
}

// Reconnect clears cached initialization state, refreshes the session and
// re-verifies store health. On failure it schedules exactly one deferred
// retry after the base delay and returns the error to the current caller;
// the deferred retry runs in the background and is not cancellable.
func (m *Manager) Reconnect(ctx context.Context) error {
	m.mu.Lock()
	m.state = StateNotInitialized
	m.inflight = nil
	m.mu.Unlock()

	err := m.conn.RefreshSession(ctx)
	if err == nil && !m.HealthCheck(ctx) {
		err = errors.New("failed to verify database connection")
	}
	if err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		m.logger.Error("failed to reconnect to database, retrying", slog.String("error", err.Error()))
		time.AfterFunc(m.baseDelay, func() {
			if rerr := m.Reconnect(context.Background()); rerr != nil {
				m.logger.Error("deferred reconnect failed", slog.String("error", rerr.Error()))
			}
		})
		return err
	}

	m.mu.Lock()
	m.state = StateReady
	m.lastErr = nil
	m.mu.Unlock()
	m.logger.Info("successfully reconnected to database")
	return nil
}

// NotifyNetworkError triggers a background reconnect when an initialized
// manager observes a network-class fault anywhere in the process.
func (m *Manager) NotifyNetworkError(err error) {
	if err == nil || !isNetworkError(err) {
		return
	}
	m.mu.Lock()
	ready := m.state == StateReady
	m.mu.Unlock()
	if !ready {
		return
	}
	m.logger.Warn("network error observed, reconnecting", slog.String("error", err.Error()))
	go func() {
		_ = m.Reconnect(context.Background())
	}()
}

// HandleSignIn re-runs initialization after a session is established.
func (m *Manager) HandleSignIn(ctx context.Context) {
	if err := m.Initialize(ctx); err != nil {
		m.logger.Error("initialization after sign-in failed", slog.String("error", err.Error()))
	}
}

// HandleSignOut resets internal state so the next caller starts clean.
func (m *Manager) HandleSignOut() {
	m.mu.Lock()
	m.state = StateNotInitialized
	m.inflight = nil
	m.lastErr = nil
	m.mu.Unlock()
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// LastError returns the most recent initialization or reconnect failure.
func (m *Manager) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE)
}
