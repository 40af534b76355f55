package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/securestore"
	mock_securestore "github.com/foodify/driver-agent/internal/securestore/mocks"
)

func loginResponse(access, refresh string) *model.LoginResponse {
	return &model.LoginResponse{
		User:         model.DriverUser{ID: 7, Email: "driver@example.com", Name: "Dana"},
		AccessToken:  access,
		RefreshToken: refresh,
	}
}

func TestManager_UpdateTokensKeepsRefreshToken(t *testing.T) {
	ctx := context.Background()
	store := securestore.NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	require.NoError(t, m.Start(ctx, loginResponse("A", "R")))
	require.NoError(t, m.UpdateTokens(ctx, "B", ""))

	s := m.Current()
	assert.Equal(t, "B", s.AccessToken)
	assert.Equal(t, "R", s.RefreshToken)

	persisted, err := store.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "R", persisted)

	require.NoError(t, m.UpdateTokens(ctx, "C", "R2"))
	assert.Equal(t, "R2", m.RefreshToken())
	persisted, err = store.Get(ctx, KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "R2", persisted)
}

func TestManager_UpdateTokensWithoutSession(t *testing.T) {
	m := NewManager(securestore.NewMemoryStore(), zap.NewNop())
	err := m.UpdateTokens(context.Background(), "B", "R")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Empty(t, m.AccessToken())
}

func TestManager_ClearRemovesPersistedKeys(t *testing.T) {
	ctx := context.Background()
	store := securestore.NewMemoryStore()
	m := NewManager(store, zap.NewNop())
	require.NoError(t, m.Start(ctx, loginResponse("A", "R")))

	var changes []Session
	m.OnChange(func(_, next Session) { changes = append(changes, next) })

	m.Clear(ctx, "logout")
	m.Clear(ctx, "logout")

	assert.False(t, m.Current().Active())
	_, err := store.Get(ctx, KeyRefreshToken)
	assert.ErrorIs(t, err, securestore.ErrNotFound)
	_, err = store.Get(ctx, KeyAuthUser)
	assert.ErrorIs(t, err, securestore.ErrNotFound)
	require.Len(t, changes, 1)
	assert.Empty(t, changes[0].AccessToken)
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()
	store := securestore.NewMemoryStore()
	first := NewManager(store, zap.NewNop())
	require.NoError(t, first.Start(ctx, loginResponse("A", "R")))

	second := NewManager(store, zap.NewNop())
	ok, err := second.Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	s := second.Current()
	assert.Empty(t, s.AccessToken)
	assert.Equal(t, "R", s.RefreshToken)
	require.NotNil(t, s.User)
	assert.Equal(t, int64(7), s.User.ID)

	empty := NewManager(securestore.NewMemoryStore(), zap.NewNop())
	ok, err = empty.Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_StartPersistFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mock_securestore.NewMockStore(ctrl)
	store.EXPECT().Set(gomock.Any(), KeyRefreshToken, "R").Return(errors.New("disk full"))

	m := NewManager(store, zap.NewNop())
	err := m.Start(context.Background(), loginResponse("A", "R"))
	assert.Error(t, err)
	assert.Equal(t, "A", m.AccessToken())
}

func TestManager_ListenersSeeEveryMutationInOrder(t *testing.T) {
	ctx := context.Background()
	m := NewManager(securestore.NewMemoryStore(), zap.NewNop())

	var tokens []string
	m.OnChange(func(_, next Session) { tokens = append(tokens, next.AccessToken) })

	require.NoError(t, m.Start(ctx, loginResponse("A", "R")))
	require.NoError(t, m.UpdateTokens(ctx, "B", ""))
	require.NoError(t, m.SetAvailable(true))
	m.Clear(ctx, "test")

	assert.Equal(t, []string{"A", "B", "B", ""}, tokens)
}

func TestManager_AccessTokenValid(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	sign := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7", "exp": exp.Unix()})
		s, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{name: "no token", token: "", want: false},
		{name: "opaque token", token: "opaque-token", want: true},
		{name: "not expired", token: sign(now.Add(time.Minute)), want: true},
		{name: "expired", token: sign(now.Add(-time.Minute)), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(securestore.NewMemoryStore(), zap.NewNop())
			m.timeNow = func() time.Time { return now }
			if tc.token != "" {
				require.NoError(t, m.Start(context.Background(), loginResponse(tc.token, "R")))
			}
			assert.Equal(t, tc.want, m.AccessTokenValid())
		})
	}
}

func TestManager_DeviceID(t *testing.T) {
	ctx := context.Background()
	store := securestore.NewMemoryStore()
	m := NewManager(store, zap.NewNop())

	id, err := m.DeviceID(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	again, err := m.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	other := NewManager(store, zap.NewNop())
	persisted, err := other.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, persisted)
}
