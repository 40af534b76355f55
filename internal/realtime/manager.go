package realtime

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/session"
)

type SessionSource interface {
	Current() session.Session
	AccessToken() string
	AccessTokenValid() bool
}

// Manager keeps at most one Client alive, bound to the session's current access
// token. A token change stops the previous client before the next one starts.
type Manager struct {
	cfg   Config
	sess  SessionSource
	store *Store
	log   *zap.Logger

	mu     sync.Mutex
	ctx    context.Context
	token  string
	cancel context.CancelFunc
	done   chan struct{}
}

func NewManager(cfg Config, sess SessionSource, store *Store, log *zap.Logger) *Manager {
	return &Manager{
		cfg:   cfg,
		sess:  sess,
		store: store,
		log:   log,
	}
}

func (m *Manager) Run(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	m.Sync()
	<-ctx.Done()

	m.mu.Lock()
	m.stopLocked()
	m.ctx = nil
	m.token = ""
	m.mu.Unlock()
	return nil
}

// Sync reconciles the running client with the session. It is safe to call from
// session listeners.
func (m *Manager) Sync() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx == nil || m.ctx.Err() != nil {
		return
	}

	s := m.sess.Current()
	if s.AccessToken == m.token {
		return
	}

	m.stopLocked()
	m.token = s.AccessToken
	if s.AccessToken == "" || s.User == nil {
		m.log.Info("Realtime channel stopped: no access token")
		return
	}

	token := s.AccessToken
	valid := func() bool {
		return m.sess.AccessToken() == token && m.sess.AccessTokenValid()
	}
	client := NewClient(m.cfg, token, s.User.ID, m.store, valid, m.log)

	ctx, cancel := context.WithCancel(m.ctx)
	done := make(chan struct{})
	m.cancel, m.done = cancel, done

	go func() {
		defer close(done)
		client.Run(ctx)
	}()
}

func (m *Manager) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.cancel, m.done = nil, nil
}
