// Package session manages an authenticated identity against the remote
// cookie-based backend. One generic Manager serves both the admin and
// customer contexts; Config decides which one a given instance is.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrUnsupported reports an operation the variant is not wired for,
// e.g. registering against the admin context. This is a wiring defect
// in the caller, not a runtime condition.
var ErrUnsupported = errors.New("operation not supported by this session variant")

// connectivityMessage stands in when the backend gave no displayable
// message, typically on transport failure.
const connectivityMessage = "No se pudo conectar con el servidor. Inténtalo de nuevo."

const defaultTimeout = 10 * time.Second

var _ port.Session = (*Manager)(nil)

type Manager struct {
	cfg    Config
	client *client
	store  port.Store
	logger *zap.Logger

	mu       sync.Mutex
	state    port.SessionState
	identity domain.Identity

	// collapses concurrent whoami probes into one request
	sf singleflight.Group
}

type Option func(*Manager)

func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.client.http.Timeout = d
		}
	}
}

func NewManager(cfg Config, st port.Store, opts ...Option) (*Manager, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}

	cl, err := newClient(cfg.BaseURL, defaultTimeout)
	if err != nil {
		return nil, fmt.Errorf("newClient: %w", err)
	}

	m := &Manager{
		cfg:    cfg,
		client: cl,
		store:  st,
		logger: zap.NewNop(),
		state:  port.StateUnknown,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.logger = m.logger.With(zap.String("session", cfg.Name))
	return m, nil
}

// Start resolves the initial state for the given route. Only routes
// under the variant's protected prefix probe the session; public pages
// resolve to anonymous without a network call and leave the mirror
// alone.
func (m *Manager) Start(ctx context.Context, route string) {
	if !strings.HasPrefix(route, m.cfg.ProtectedPrefix) {
		m.setAnonymous(false)
		return
	}
	m.CheckAuth(ctx)
}

// CheckAuth probes the whoami endpoint. Any failure — bad status,
// transport error, payload missing required fields — resolves to
// anonymous and clears the mirror; nothing is surfaced to the caller
// beyond the boolean.
func (m *Manager) CheckAuth(ctx context.Context) (domain.Identity, bool) {
	v, _, _ := m.sf.Do("whoami", func() (any, error) {
		return m.checkAuth(ctx), nil
	})

	ident, _ := v.(*domain.Identity)
	if ident == nil {
		return domain.Identity{}, false
	}
	return *ident, true
}

func (m *Manager) checkAuth(ctx context.Context) *domain.Identity {
	env, err := m.client.do(ctx, http.MethodGet, m.cfg.WhoamiPath, nil)
	if err != nil || !env.Success || env.User == nil {
		if err != nil {
			m.logger.Debug("session probe failed", zap.Error(err))
		}
		m.setAnonymous(true)
		return nil
	}

	ident := *env.User
	if err := ident.Validate(); err != nil {
		m.logger.Debug("session probe returned invalid identity", zap.Error(err))
		m.setAnonymous(true)
		return nil
	}

	m.setAuthenticated(ident)
	return &ident
}

// Login posts credentials. Failure leaves the current state untouched
// and carries the backend's message, or a generic connectivity one,
// back to the caller.
func (m *Manager) Login(ctx context.Context, creds domain.Credentials) port.AuthResult {
	return m.authenticate(ctx, http.MethodPost, m.cfg.LoginPath, creds)
}

// Register creates a customer account; the admin variant has no
// registration endpoint and fails with ErrUnsupported.
func (m *Manager) Register(ctx context.Context, reg domain.Registration) (port.AuthResult, error) {
	if m.cfg.RegisterPath == "" {
		return port.AuthResult{}, fmt.Errorf("register[%s]: %w", m.cfg.Name, ErrUnsupported)
	}
	return m.authenticate(ctx, http.MethodPost, m.cfg.RegisterPath, reg), nil
}

// UpdateProfile puts the partial update against the whoami endpoint.
// Success replaces the held identity with the returned one; failure
// leaves state unchanged.
func (m *Manager) UpdateProfile(ctx context.Context, upd domain.ProfileUpdate) (port.AuthResult, error) {
	if m.cfg.ProfilePath == "" {
		return port.AuthResult{}, fmt.Errorf("updateProfile[%s]: %w", m.cfg.Name, ErrUnsupported)
	}
	return m.authenticate(ctx, http.MethodPut, m.cfg.ProfilePath, upd), nil
}

// Logout posts to the logout endpoint best-effort, then unconditionally
// clears the in-memory identity and the mirror and runs the redirect
// hook. Irreversible without a fresh login.
func (m *Manager) Logout(ctx context.Context) {
	if _, err := m.client.do(ctx, http.MethodPost, m.cfg.LogoutPath, nil); err != nil {
		m.logger.Warn("logout request failed", zap.Error(err))
	}

	m.setAnonymous(true)

	if m.cfg.OnLogout != nil {
		m.cfg.OnLogout()
	}
}

func (m *Manager) State() port.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Identity returns the current authenticated identity, if any.
func (m *Manager) Identity() (domain.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != port.StateAuthenticated {
		return domain.Identity{}, false
	}
	return m.identity, true
}

// Mirror reads the warm-start copy from the local store. Advisory
// only: the backend remains the source of truth.
func (m *Manager) Mirror() (domain.Identity, bool) {
	var ident domain.Identity
	if !m.store.Load(m.cfg.MirrorKey, &ident) {
		return domain.Identity{}, false
	}
	return ident, true
}

func (m *Manager) authenticate(ctx context.Context, method, path string, body any) port.AuthResult {
	env, err := m.client.do(ctx, method, path, body)
	if err != nil || !env.Success || env.User == nil {
		if err != nil {
			m.logger.Debug("auth request failed", zap.String("path", path), zap.Error(err))
		}
		return port.AuthResult{OK: false, Message: displayable(env.Message)}
	}

	ident := *env.User
	if err := ident.Validate(); err != nil {
		m.logger.Debug("auth response carried invalid identity", zap.Error(err))
		return port.AuthResult{OK: false, Message: connectivityMessage}
	}

	m.setAuthenticated(ident)
	return port.AuthResult{OK: true, Message: env.Message, Identity: ident}
}

func (m *Manager) setAuthenticated(ident domain.Identity) {
	m.mu.Lock()
	m.state = port.StateAuthenticated
	m.identity = ident
	m.mu.Unlock()

	m.store.Save(m.cfg.MirrorKey, ident)
	m.logger.Debug("state transition", zap.Stringer("state", port.StateAuthenticated))
}

func (m *Manager) setAnonymous(clearMirror bool) {
	m.mu.Lock()
	m.state = port.StateAnonymous
	m.identity = domain.Identity{}
	m.mu.Unlock()

	if clearMirror {
		m.store.Delete(m.cfg.MirrorKey)
	}
	m.logger.Debug("state transition", zap.Stringer("state", port.StateAnonymous))
}

func displayable(message string) string {
	if message == "" {
		return connectivityMessage
	}
	return message
}
