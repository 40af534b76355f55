package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_httpclient "github.com/foodify/driver-agent/internal/httpclient/mocks"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/securestore"
	"github.com/foodify/driver-agent/internal/session"
)

type backend struct {
	mu         sync.Mutex
	validToken string
	served     []string
	onReject   func()
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	valid := r.Header.Get("Authorization") == "Bearer "+b.validToken
	if valid {
		b.served = append(b.served, r.URL.Path)
	}
	onReject := b.onReject
	b.mu.Unlock()

	if !valid {
		if onReject != nil {
			onReject()
		}
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	body, _ := io.ReadAll(r.Body)
	_, _ = w.Write(body)
}

func (b *backend) servedPaths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.served...)
}

func newSession(t *testing.T, access, refresh string) *session.Manager {
	t.Helper()
	m := session.NewManager(securestore.NewMemoryStore(), zap.NewNop())
	require.NoError(t, m.Start(context.Background(), &model.LoginResponse{
		User:         model.DriverUser{ID: 1},
		AccessToken:  access,
		RefreshToken: refresh,
	}))
	return m
}

func TestAuthTransport_SingleFlightRefreshReplaysInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := &backend{validToken: "new"}
	srv := httptest.NewServer(b)
	defer srv.Close()

	sess := newSession(t, "old", "R")
	refresher := mock_httpclient.NewMockRefresher(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	refresher.EXPECT().
		Refresh(gomock.Any(), "R").
		DoAndReturn(func(_ context.Context, _ string) (*model.RefreshResponse, error) {
			close(started)
			<-release
			return &model.RefreshResponse{AccessToken: "new"}, nil
		}).
		Times(1)

	transport := NewAuthTransport(http.DefaultTransport, sess, refresher, Config{Timeout: 5 * time.Second}, zap.NewNop())
	client := &http.Client{Transport: transport}

	const n = 5
	statuses := make([]int, n)
	var wg sync.WaitGroup
	get := func(i int) {
		defer wg.Done()
		resp, err := client.Get(fmt.Sprintf("%s/api/driver/r/%d", srv.URL, i))
		if assert.NoError(t, err) {
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}
	}

	wg.Add(1)
	go get(0)
	<-started

	for i := 1; i < n; i++ {
		wg.Add(1)
		go get(i)
		require.Eventually(t, func() bool { return transport.pending() == i }, time.Second, time.Millisecond)
	}
	close(release)
	wg.Wait()

	for i, status := range statuses {
		assert.Equal(t, http.StatusOK, status, "request %d", i)
	}
	assert.Equal(t, []string{
		"/api/driver/r/0",
		"/api/driver/r/1",
		"/api/driver/r/2",
		"/api/driver/r/3",
		"/api/driver/r/4",
	}, b.servedPaths())

	assert.Equal(t, "new", sess.AccessToken())
	assert.Equal(t, "R", sess.RefreshToken())
}

func TestAuthTransport_RefreshFailure(t *testing.T) {
	tests := []struct {
		name        string
		refreshErr  error
		wantCleared bool
	}{
		{
			name:        "refresh rejected with 403",
			refreshErr:  &StatusError{StatusCode: http.StatusForbidden},
			wantCleared: true,
		},
		{
			name:        "refresh rejected with 401",
			refreshErr:  &StatusError{StatusCode: http.StatusUnauthorized},
			wantCleared: true,
		},
		{
			name:        "network error",
			refreshErr:  errors.New("dial tcp: connection refused"),
			wantCleared: false,
		},
		{
			name:        "server error",
			refreshErr:  &StatusError{StatusCode: http.StatusBadGateway},
			wantCleared: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			srv := httptest.NewServer(&backend{validToken: "new"})
			defer srv.Close()

			sess := newSession(t, "old", "R")
			refresher := mock_httpclient.NewMockRefresher(ctrl)

			started := make(chan struct{})
			release := make(chan struct{})
			refresher.EXPECT().
				Refresh(gomock.Any(), "R").
				DoAndReturn(func(_ context.Context, _ string) (*model.RefreshResponse, error) {
					close(started)
					<-release
					return nil, tc.refreshErr
				}).
				Times(1)

			transport := NewAuthTransport(http.DefaultTransport, sess, refresher, Config{Timeout: 5 * time.Second}, zap.NewNop())
			client := &http.Client{Transport: transport}

			errs := make([]error, 2)
			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, errs[0] = client.Get(srv.URL + "/api/driver/shift")
			}()
			<-started
			go func() {
				defer wg.Done()
				_, errs[1] = client.Get(srv.URL + "/api/driver/shift/balance")
			}()
			require.Eventually(t, func() bool { return transport.pending() == 1 }, time.Second, time.Millisecond)
			close(release)
			wg.Wait()

			for _, err := range errs {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.refreshErr)
			}

			if tc.wantCleared {
				assert.Empty(t, sess.AccessToken())
				assert.Empty(t, sess.RefreshToken())
			} else {
				assert.Equal(t, "old", sess.AccessToken())
				assert.Equal(t, "R", sess.RefreshToken())
			}
		})
	}
}

func TestAuthTransport_PublicPathsAreNotIntercepted(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var (
		mu          sync.Mutex
		authHeaders []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		authHeaders = append(authHeaders, r.Header.Get("Authorization"))
		mu.Unlock()
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	sess := newSession(t, "old", "R")
	refresher := mock_httpclient.NewMockRefresher(ctrl)
	client := NewClient(http.DefaultTransport, sess, refresher, Config{Timeout: time.Second}, zap.NewNop())

	for _, path := range []string{LoginPath, RefreshPath} {
		resp, err := client.Post(srv.URL+path, "application/json", bytes.NewReader([]byte(`{}`)))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
	mu.Lock()
	assert.Equal(t, []string{"", ""}, authHeaders)
	mu.Unlock()
	assert.Equal(t, "old", sess.AccessToken())
}

func TestAuthTransport_ReplayIsNotRetriedAgain(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(&backend{validToken: "never"})
	defer srv.Close()

	sess := newSession(t, "old", "R")
	refresher := mock_httpclient.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any(), "R").
		Return(&model.RefreshResponse{AccessToken: "new"}, nil).
		Times(1)

	client := NewClient(http.DefaultTransport, sess, refresher, Config{Timeout: time.Second}, zap.NewNop())

	resp, err := client.Get(srv.URL + "/api/driver/ongoing-order")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "new", sess.AccessToken())
}

func TestAuthTransport_ReplaysRequestBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(&backend{validToken: "new"})
	defer srv.Close()

	sess := newSession(t, "old", "R")
	refresher := mock_httpclient.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any(), "R").
		Return(&model.RefreshResponse{AccessToken: "new", RefreshToken: "R2"}, nil)

	client := NewClient(http.DefaultTransport, sess, refresher, Config{Timeout: time.Second}, zap.NewNop())

	payload := `{"orderId":42,"token":"qr"}`
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/driver/pickup", io.NopCloser(bytes.NewBufferString(payload)))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, payload, string(body))
	assert.Equal(t, "R2", sess.RefreshToken())
}

type trackedBody struct {
	io.Reader
	closed atomic.Bool
}

func (b *trackedBody) Close() error {
	b.closed.Store(true)
	return nil
}

func TestAuthTransport_ClosesCallerBodyWithGetBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(&backend{validToken: "A"})
	defer srv.Close()

	sess := newSession(t, "A", "R")
	client := NewClient(http.DefaultTransport, sess, mock_httpclient.NewMockRefresher(ctrl), Config{Timeout: time.Second}, zap.NewNop())

	payload := `{"available":true}`
	original := &trackedBody{Reader: strings.NewReader(payload)}
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/driver/updateStatus", original)
	require.NoError(t, err)
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(payload)), nil
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
	assert.True(t, original.closed.Load())
}

func TestAuthTransport_TokenRotatedInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := newSession(t, "old", "R")
	b := &backend{validToken: "new"}
	b.onReject = func() {
		_ = sess.UpdateTokens(context.Background(), "new", "")
	}
	srv := httptest.NewServer(b)
	defer srv.Close()

	// no refresh expected: another caller already rotated the token
	refresher := mock_httpclient.NewMockRefresher(ctrl)
	client := NewClient(http.DefaultTransport, sess, refresher, Config{Timeout: time.Second}, zap.NewNop())

	resp, err := client.Get(srv.URL + "/api/driver/finance/summary")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthTransport_NoRefreshTokenSurfaces401(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	srv := httptest.NewServer(&backend{validToken: "new"})
	defer srv.Close()

	tokens := mock_httpclient.NewMockTokenStore(ctrl)
	tokens.EXPECT().AccessToken().Return("old").AnyTimes()
	tokens.EXPECT().RefreshToken().Return("")
	refresher := mock_httpclient.NewMockRefresher(ctrl)

	client := NewClient(http.DefaultTransport, tokens, refresher, Config{Timeout: time.Second}, zap.NewNop())

	resp, err := client.Get(srv.URL + "/api/driver/shift")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCheckResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusForbidden)
	_, _ = rec.WriteString("forbidden\n")

	err := CheckResponse(rec.Result())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "forbidden", se.Body)
	assert.True(t, IsAuthError(err))
	assert.False(t, IsAuthError(errors.New("boom")))
}
