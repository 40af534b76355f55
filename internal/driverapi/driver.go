package driverapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/model"
)

// Heartbeat reports the driver as alive, with the last known position when there is one.
func (c *Client) Heartbeat(ctx context.Context, position *model.Coordinates) error {
	var body any = struct{}{}
	if position != nil {
		if err := c.check(position); err != nil {
			return err
		}
		body = position
	}
	return c.doJSON(ctx, http.MethodPost, "/api/driver/heartbeat", nil, body, nil)
}

func (c *Client) UpdateLocation(ctx context.Context, update model.LocationUpdate) error {
	if err := c.check(update); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, "/api/driver/location", nil, update, nil)
}

// UpdateStatus toggles whether the driver is available for offers.
func (c *Client) UpdateStatus(ctx context.Context, available bool) error {
	in := struct {
		Available bool `json:"available"`
	}{Available: available}
	if err := c.doJSON(ctx, http.MethodPost, "/api/driver/updateStatus", nil, in, nil); err != nil {
		return err
	}
	if err := c.session.SetAvailable(available); err != nil {
		c.log.Warn("Status updated without an active session", zap.Error(err))
	}
	return nil
}

func (c *Client) CurrentShift(ctx context.Context) (*model.DriverShift, error) {
	var shift model.DriverShift
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/shift", nil, nil, &shift); err != nil {
		return nil, err
	}
	return &shift, nil
}

func (c *Client) ShiftBalance(ctx context.Context) (*model.ShiftBalance, error) {
	var balance model.ShiftBalance
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/shift/balance", nil, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}

func (c *Client) FinanceSummary(ctx context.Context) (*model.FinanceSummary, error) {
	var summary model.FinanceSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/finance/summary", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Earnings(ctx context.Context, q model.EarningsQuery) (*model.Earnings, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	var earnings model.Earnings
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/earnings", earningsParams(q), nil, &earnings); err != nil {
		return nil, err
	}
	return &earnings, nil
}

func (c *Client) ShiftEarnings(ctx context.Context, q model.EarningsQuery) ([]model.ShiftEarnings, error) {
	if err := c.check(q); err != nil {
		return nil, err
	}

	var shifts []model.ShiftEarnings
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/earnings/shifts", earningsParams(q), nil, &shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (c *Client) ShiftEarningsDetails(ctx context.Context, shiftID int64) (*model.ShiftEarningsDetails, error) {
	var details model.ShiftEarningsDetails
	path := "/api/driver/earnings/shifts/" + strconv.FormatInt(shiftID, 10)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func earningsParams(q model.EarningsQuery) url.Values {
	params := url.Values{}
	if q.DateOn != "" {
		params.Set("dateOn", q.DateOn)
	}
	if q.From != "" {
		params.Set("from", q.From)
	}
	if q.To != "" {
		params.Set("to", q.To)
	}
	return params
}

func (c *Client) Deposits(ctx context.Context) ([]model.Deposit, error) {
	var deposits []model.Deposit
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/finance/deposits", nil, nil, &deposits); err != nil {
		return nil, err
	}
	return deposits, nil
}

func (c *Client) Documents(ctx context.Context) (*model.DocumentsSummary, error) {
	var summary model.DocumentsSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/driver/documents", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// UploadDocument sends a verification document as the multipart field "file".
func (c *Client) UploadDocument(ctx context.Context, docType, filename string, content io.Reader) error {
	if err := c.validate.Var(docType, "required,printascii,excludesall=/?#"); err != nil {
		return invalid("docType", "required")
	}
	if filename == "" {
		return invalid("filename", "required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/driver/documents/"+url.PathEscape(docType), &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	_, err = c.doRaw(req)
	return err
}
