package driverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/httpclient"
	"github.com/foodify/driver-agent/internal/model"
)

type SessionStore interface {
	Start(ctx context.Context, resp *model.LoginResponse) error
	RefreshToken() string
	Clear(ctx context.Context, reason string)
	DeviceID(ctx context.Context) (string, error)
	SetAvailable(available bool) error
}

type rest struct {
	http    *http.Client
	baseURL string
}

func (r rest) newRequest(ctx context.Context, method, path string, query url.Values, in any) (*http.Request, error) {
	u := r.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (r rest) doRaw(req *http.Request) ([]byte, error) {
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	if err := httpclient.CheckResponse(resp); err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", req.Method, req.URL.Path, err)
	}
	return data, nil
}

func (r rest) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	req, err := r.newRequest(ctx, method, path, query, in)
	if err != nil {
		return err
	}
	data, err := r.doRaw(req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

// Client wraps the driver endpoints of the backend. Its http.Client is expected to
// carry an httpclient.AuthTransport.
type Client struct {
	rest
	session  SessionStore
	validate *validator.Validate
	log      *zap.Logger
}

func New(httpClient *http.Client, baseURL string, session SessionStore, log *zap.Logger) *Client {
	return &Client{
		rest:     rest{http: httpClient, baseURL: strings.TrimRight(baseURL, "/")},
		session:  session,
		validate: validator.New(),
		log:      log,
	}
}

// SessionClient talks to the refresh endpoint without going through the token
// interceptor.
type SessionClient struct {
	rest
}

func NewSessionClient(httpClient *http.Client, baseURL string) *SessionClient {
	return &SessionClient{rest: rest{http: httpClient, baseURL: strings.TrimRight(baseURL, "/")}}
}

func (c *SessionClient) Refresh(ctx context.Context, refreshToken string) (*model.RefreshResponse, error) {
	var resp model.RefreshResponse
	if err := c.doJSON(ctx, http.MethodPost, httpclient.RefreshPath, nil, model.RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ValidationError is returned when input fails client-side checks. Nothing was sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, tag := range e.Fields {
		parts = append(parts, field+" ("+tag+")")
	}
	return "invalid input: " + strings.Join(parts, ", ")
}

func (c *Client) check(v any) error {
	err := c.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		ve.Fields[fe.Field()] = fe.Tag()
	}
	return ve
}

func invalid(field, tag string) error {
	return &ValidationError{Fields: map[string]string{field: tag}}
}
