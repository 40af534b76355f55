package driverapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/httpclient"
	"github.com/foodify/driver-agent/internal/model"
)

// Login authenticates the driver and starts the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.DriverUser, error) {
	in := model.LoginRequest{Email: email, Password: password}
	if err := c.check(in); err != nil {
		return nil, err
	}

	deviceID, err := c.session.DeviceID(ctx)
	if err != nil {
		c.log.Warn("Logging in without device id", zap.Error(err))
	}
	in.DeviceID = deviceID

	var resp model.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, httpclient.LoginPath, nil, in, &resp); err != nil {
		return nil, err
	}
	if err := c.session.Start(ctx, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout revokes the refresh token on the backend. The local session is cleared
// even when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	var err error
	if refreshToken := c.session.RefreshToken(); refreshToken != "" {
		err = c.doJSON(ctx, http.MethodPost, "/api/auth/driver/logout", nil, model.RefreshRequest{RefreshToken: refreshToken}, nil)
		if err != nil {
			c.log.Warn("Logout call failed", zap.Error(err))
		}
	}
	c.session.Clear(ctx, "logout")
	return err
}

func (c *Client) UpdateProfile(ctx context.Context, update model.ProfileUpdate) (*model.DriverUser, error) {
	if update.Name == nil && update.Email == nil && update.NewPassword == nil {
		return nil, invalid("ProfileUpdate", "required")
	}
	if err := c.check(update); err != nil {
		return nil, err
	}

	var resp model.ProfileResponse
	if err := c.doJSON(ctx, http.MethodPut, "/api/auth/driver/profile", nil, update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}
