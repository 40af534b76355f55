package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/securestore"
)

const (
	KeyRefreshToken = "refreshToken"
	KeyAuthUser     = "authUser"
	KeyDeviceID     = "foodify-driver-device-id"
)

var ErrNoSession = errors.New("no active session")

type Session struct {
	AccessToken  string
	RefreshToken string
	User         *model.DriverUser
}

func (s Session) Active() bool {
	return s.AccessToken != "" || s.RefreshToken != ""
}

// Listener observes every session mutation. It is called outside the manager lock,
// one mutation at a time, in mutation order.
type Listener func(prev, next Session)

// Manager owns the single live session of the process. Tokens are only changed
// through Start, UpdateTokens and Clear.
type Manager struct {
	mu      sync.RWMutex
	current Session

	notifyMu  sync.Mutex
	listeners []Listener

	store   securestore.Store
	log     *zap.Logger
	timeNow func() time.Time

	deviceMu sync.Mutex
	deviceID string
}

func NewManager(store securestore.Store, log *zap.Logger) *Manager {
	return &Manager{
		store:   store,
		log:     log,
		timeNow: time.Now,
	}
}

func (m *Manager) OnChange(l Listener) {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()
	m.listeners = append(m.listeners, l)
}

func (m *Manager) Current() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.current
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.AccessToken
}

func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current.RefreshToken
}

// Start replaces any previous session with the one issued by a login response.
func (m *Manager) Start(ctx context.Context, resp *model.LoginResponse) error {
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return errors.New("login response without tokens")
	}
	user := resp.User
	if err := m.mutate(func(s *Session) error {
		*s = Session{
			AccessToken:  resp.AccessToken,
			RefreshToken: resp.RefreshToken,
			User:         &user,
		}
		return nil
	}); err != nil {
		return err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := m.store.Set(ctx, KeyRefreshToken, resp.RefreshToken); err != nil {
		return fmt.Errorf("failed to persist refresh token: %w", err)
	}
	if err := m.store.Set(ctx, KeyAuthUser, string(userJSON)); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}

	m.log.Info("Session started", zap.Int64("driver_id", user.ID))
	return nil
}

// UpdateTokens stores a refreshed access token. An empty refresh token keeps the previous one.
func (m *Manager) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	var rotated bool
	err := m.mutate(func(s *Session) error {
		if s.RefreshToken == "" {
			return ErrNoSession
		}
		s.AccessToken = accessToken
		if refreshToken != "" && refreshToken != s.RefreshToken {
			s.RefreshToken = refreshToken
			rotated = true
		}
		return nil
	})
	if err != nil {
		return err
	}

	if rotated {
		if err := m.store.Set(ctx, KeyRefreshToken, refreshToken); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}
	return nil
}

// SetAvailable records the driver's online flag on the session user.
func (m *Manager) SetAvailable(available bool) error {
	return m.mutate(func(s *Session) error {
		if s.User == nil {
			return ErrNoSession
		}
		u := *s.User
		u.Available = available
		s.User = &u
		return nil
	})
}

// Clear tears the session down and removes every persisted session key.
func (m *Manager) Clear(ctx context.Context, reason string) {
	err := m.mutate(func(s *Session) error {
		if !s.Active() {
			return ErrNoSession
		}
		*s = Session{}
		return nil
	})
	if err != nil {
		return
	}

	for _, key := range []string{KeyRefreshToken, KeyAuthUser} {
		if err := m.store.Delete(ctx, key); err != nil {
			m.log.Warn("Failed to delete persisted session key", zap.String("key", key), zap.Error(err))
		}
	}
	m.log.Info("Session cleared", zap.String("reason", reason))
}

// Restore loads the persisted refresh token and user. The restored session has no
// access token until the caller refreshes it.
func (m *Manager) Restore(ctx context.Context) (bool, error) {
	refreshToken, err := m.store.Get(ctx, KeyRefreshToken)
	if errors.Is(err, securestore.ErrNotFound) || (err == nil && refreshToken == "") {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read refresh token: %w", err)
	}

	var user *model.DriverUser
	if raw, err := m.store.Get(ctx, KeyAuthUser); err == nil {
		var u model.DriverUser
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			m.log.Warn("Discarding unreadable persisted user", zap.Error(err))
		} else {
			user = &u
		}
	} else if !errors.Is(err, securestore.ErrNotFound) {
		return false, fmt.Errorf("failed to read user: %w", err)
	}

	if err := m.mutate(func(s *Session) error {
		*s = Session{RefreshToken: refreshToken, User: user}
		return nil
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) mutate(fn func(s *Session) error) error {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	prev := m.current
	next := prev
	if err := fn(&next); err != nil {
		m.mu.Unlock()
		return err
	}
	m.current = next
	m.mu.Unlock()

	for _, l := range m.listeners {
		l(prev, next)
	}
	return nil
}
