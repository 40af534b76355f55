//go:generate mockgen -source ./transport.go -destination=./mocks/transport.go -package=mock_httpclient
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
)

const (
	LoginPath   = "/api/auth/driver/login"
	RefreshPath = "/api/auth/refresh"
)

type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	UpdateTokens(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context, reason string)
}

type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (*model.RefreshResponse, error)
}

type Config struct {
	// Timeout bounds every request made through the client, including the refresh call.
	Timeout time.Duration
}

// AuthTransport adds the bearer token to outgoing requests and recovers from expired
// access tokens. A burst of 401 responses causes exactly one refresh call; requests
// that fail while it is in flight wait in a FIFO queue and are replayed in arrival
// order once it completes. Replays are never refreshed again.
type AuthTransport struct {
	base      http.RoundTripper
	tokens    TokenStore
	refresher Refresher
	timeout   time.Duration
	log       *zap.Logger

	mu         sync.Mutex
	refreshing bool
	queue      []*queuedRequest
}

func NewAuthTransport(base http.RoundTripper, tokens TokenStore, refresher Refresher, cfg Config, log *zap.Logger) *AuthTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AuthTransport{
		base:      base,
		tokens:    tokens,
		refresher: refresher,
		timeout:   timeout,
		log:       log,
	}
}

// NewClient returns an http.Client guarded by an AuthTransport.
func NewClient(base http.RoundTripper, tokens TokenStore, refresher Refresher, cfg Config, log *zap.Logger) *http.Client {
	return &http.Client{
		Transport: NewAuthTransport(base, tokens, refresher, cfg, log),
		Timeout:   cfg.Timeout,
	}
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if isPublic(req) {
		return t.base.RoundTrip(req)
	}

	req, err := replayable(req)
	if err != nil {
		return nil, err
	}

	token := t.tokens.AccessToken()
	resp, err := t.send(req, token)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	return t.handleUnauthorized(req, token, resp)
}

func (t *AuthTransport) handleUnauthorized(req *http.Request, usedToken string, resp *http.Response) (*http.Response, error) {
	t.mu.Lock()

	if t.refreshing {
		q := &queuedRequest{req: req, result: make(chan replayResult, 1)}
		t.queue = append(t.queue, q)
		t.mu.Unlock()
		discard(resp)
		metrics.QueuedRequestsTotal.Inc()
		return q.await()
	}

	// the token rotated while this request was in flight: the burst is already served
	if current := t.tokens.AccessToken(); current != "" && current != usedToken {
		t.mu.Unlock()
		discard(resp)
		return t.send(req, current)
	}

	refreshToken := t.tokens.RefreshToken()
	if refreshToken == "" {
		t.mu.Unlock()
		return resp, nil
	}
	t.refreshing = true
	t.mu.Unlock()
	discard(resp)

	accessToken, refreshErr := t.refresh(req.Context(), refreshToken)

	t.mu.Lock()
	queue := t.queue
	t.queue = nil
	t.refreshing = false
	t.mu.Unlock()

	if refreshErr != nil {
		for _, q := range queue {
			q.deliver(replayResult{err: refreshErr})
		}
		return nil, refreshErr
	}

	resp, err := t.send(req, accessToken)
	if len(queue) > 0 {
		go t.replay(queue, accessToken)
	}
	return resp, err
}

func (t *AuthTransport) refresh(ctx context.Context, refreshToken string) (string, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
	defer cancel()

	t.log.Debug("Refreshing access token")
	res, err := t.refresher.Refresh(ctx, refreshToken)
	if err == nil && res.AccessToken == "" {
		err = errors.New("refresh response without access token")
	}
	if err != nil {
		if IsAuthError(err) {
			metrics.TokenRefreshesTotal.WithLabelValues("rejected").Inc()
			metrics.ForcedLogoutsTotal.Inc()
			t.log.Warn("Refresh token rejected, ending session", zap.Error(err))
			t.tokens.Clear(context.WithoutCancel(ctx), "refresh rejected")
		} else {
			metrics.TokenRefreshesTotal.WithLabelValues("failed").Inc()
			t.log.Warn("Token refresh failed", zap.Error(err))
		}
		return "", fmt.Errorf("token refresh: %w", err)
	}

	if err := t.tokens.UpdateTokens(ctx, res.AccessToken, res.RefreshToken); err != nil {
		if t.tokens.AccessToken() != res.AccessToken {
			metrics.TokenRefreshesTotal.WithLabelValues("failed").Inc()
			return "", fmt.Errorf("token refresh: %w", err)
		}
		t.log.Warn("Refreshed tokens were not persisted", zap.Error(err))
	}

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return res.AccessToken, nil
}

func (t *AuthTransport) replay(queue []*queuedRequest, token string) {
	for _, q := range queue {
		if err := q.req.Context().Err(); err != nil {
			q.deliver(replayResult{err: err})
			continue
		}
		resp, err := t.send(q.req, token)
		q.deliver(replayResult{resp: resp, err: err})
	}
}

func (t *AuthTransport) send(req *http.Request, token string) (*http.Response, error) {
	out := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		out.Body = body
	}
	if token != "" {
		out.Header.Set("Authorization", "Bearer "+token)
	} else {
		out.Header.Del("Authorization")
	}
	return t.base.RoundTrip(out)
}

func (t *AuthTransport) pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

type replayResult struct {
	resp *http.Response
	err  error
}

type queuedRequest struct {
	req    *http.Request
	result chan replayResult

	mu   sync.Mutex
	done bool
}

func (q *queuedRequest) deliver(r replayResult) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.done {
		// the caller gave up waiting
		if r.resp != nil {
			discard(r.resp)
		}
		return
	}
	q.done = true
	q.result <- r
}

func (q *queuedRequest) await() (*http.Response, error) {
	select {
	case r := <-q.result:
		return r.resp, r.err
	case <-q.req.Context().Done():
	}

	q.mu.Lock()
	delivered := q.done
	q.done = true
	q.mu.Unlock()

	if delivered {
		if r := <-q.result; r.resp != nil {
			discard(r.resp)
		}
	}
	return nil, q.req.Context().Err()
}

func isPublic(req *http.Request) bool {
	return strings.HasSuffix(req.URL.Path, LoginPath) || strings.HasSuffix(req.URL.Path, RefreshPath)
}

// replayable returns a clone of req whose body can be read more than once.
func replayable(req *http.Request) (*http.Request, error) {
	out := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return out, nil
	}
	if req.GetBody != nil {
		// every send reads a fresh copy from GetBody, so the caller's body is done with
		req.Body.Close()
		out.Body = http.NoBody
		return out, nil
	}

	data, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to buffer request body: %w", err)
	}
	out.Body = io.NopCloser(bytes.NewReader(data))
	out.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	}
	return out, nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
}
