package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-stomp/stomp/v3/frame"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
)

const (
	ordersSubscription   = "orders-0"
	warningsSubscription = "warnings-0"
	writeWait            = 10 * time.Second
)

type Config struct {
	URL               string
	ReconnectDelay    time.Duration
	HeartbeatOutgoing time.Duration
	HeartbeatIncoming time.Duration
	HandshakeTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = 5 * time.Second
	}
	if c.HandshakeTimeout <= 0 {
		c.HandshakeTimeout = 10 * time.Second
	}
	return c
}

// Client is one STOMP session bound to a single access token. Run reconnects after
// unexpected disconnects while valid reports true.
type Client struct {
	cfg      Config
	token    string
	driverID int64
	store    *Store
	valid    func() bool
	dialer   *websocket.Dialer
	log      *zap.Logger

	writeMu sync.Mutex
}

func NewClient(cfg Config, token string, driverID int64, store *Store, valid func() bool, log *zap.Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:      cfg,
		token:    token,
		driverID: driverID,
		store:    store,
		valid:    valid,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		log: log.With(zap.Int64("driver_id", driverID)),
	}
}

func (c *Client) Run(ctx context.Context) {
	for {
		err := c.session(ctx)
		c.store.reset()
		if ctx.Err() != nil {
			return
		}
		c.log.Warn("Realtime channel disconnected", zap.Error(err))

		if !c.valid() {
			c.log.Info("No valid access token, realtime channel stays down")
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.cfg.ReconnectDelay):
		}
		metrics.RealtimeReconnectsTotal.Inc()
	}
}

func (c *Client) session(ctx context.Context) error {
	c.store.setState(Connecting)

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.token)
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.URL, header)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			c.disconnect(conn)
		case <-stop:
		}
	}()

	outgoing, incoming, err := c.handshake(conn)
	if err != nil {
		return err
	}

	for _, sub := range []struct{ id, dest string }{
		{ordersSubscription, fmt.Sprintf("/user/%d/queue/orders", c.driverID)},
		{warningsSubscription, fmt.Sprintf("/user/%d/queue/warnings", c.driverID)},
	} {
		f := frame.New(cmdSubscribe, "id", sub.id, hdrDestination, sub.dest, "ack", "auto")
		if err := c.writeFrame(conn, f); err != nil {
			return fmt.Errorf("subscribe %s: %w", sub.dest, err)
		}
	}

	c.store.setState(Connected)
	c.log.Info("Realtime channel connected",
		zap.Duration("heartbeat_out", outgoing),
		zap.Duration("heartbeat_in", incoming))

	if outgoing > 0 {
		go c.sendHeartBeats(conn, outgoing, stop)
	}

	return c.readLoop(conn, incoming)
}

func (c *Client) handshake(conn *websocket.Conn) (time.Duration, time.Duration, error) {
	host := ""
	if u, err := url.Parse(c.cfg.URL); err == nil {
		host = u.Hostname()
	}

	connect := frame.New(cmdConnect,
		"accept-version", "1.2,1.1",
		"host", host,
		hdrHeartBeat, heartBeatHeader(c.cfg.HeartbeatOutgoing, c.cfg.HeartbeatIncoming),
		"Authorization", "Bearer "+c.token,
	)
	if err := c.writeFrame(conn, connect); err != nil {
		return 0, 0, fmt.Errorf("connect: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(c.cfg.HandshakeTimeout))
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return 0, 0, fmt.Errorf("connect: %w", err)
		}
		frames, err := decodeFrames(data)
		if err != nil {
			return 0, 0, fmt.Errorf("connect: %w", err)
		}
		if len(frames) == 0 {
			continue
		}

		f := frames[0]
		switch f.Command {
		case cmdConnected:
			sx, sy, err := parseHeartBeat(f.Header.Get(hdrHeartBeat))
			if err != nil {
				return 0, 0, fmt.Errorf("connect: %w", err)
			}
			return negotiateHeartBeat(c.cfg.HeartbeatOutgoing, sy), negotiateHeartBeat(c.cfg.HeartbeatIncoming, sx), nil
		case cmdError:
			return 0, 0, fmt.Errorf("connect rejected: %s", f.Header.Get("message"))
		default:
			return 0, 0, fmt.Errorf("connect: unexpected %s frame", f.Command)
		}
	}
}

func (c *Client) readLoop(conn *websocket.Conn, incoming time.Duration) error {
	for {
		if incoming > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(2 * incoming))
		} else {
			_ = conn.SetReadDeadline(time.Time{})
		}

		_, data, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}

		frames, err := decodeFrames(data)
		if err != nil {
			metrics.RealtimeMalformedTotal.Inc()
			c.log.Warn("Discarding undecodable frame", zap.Error(err))
		}
		for _, f := range frames {
			c.dispatch(f)
		}
	}
}

func (c *Client) dispatch(f *frame.Frame) {
	switch f.Command {
	case cmdMessage:
		sub := f.Header.Get(hdrSubscription)
		dest := f.Header.Get(hdrDestination)
		switch {
		case sub == warningsSubscription || strings.HasSuffix(dest, "/queue/warnings"):
			c.handleWarning(f.Body)
		case sub == ordersSubscription || strings.HasSuffix(dest, "/queue/orders"):
			c.handleOrder(f.Body)
		default:
			c.log.Debug("Ignoring message for unknown destination", zap.String("destination", dest))
		}
	case cmdError:
		metrics.RealtimeMessagesTotal.WithLabelValues("error").Inc()
		c.log.Error("Broker error", zap.String("message", f.Header.Get("message")), zap.ByteString("body", f.Body))
	case cmdReceipt:
	default:
		c.log.Debug("Ignoring frame", zap.String("command", f.Command))
	}
}

func (c *Client) handleOrder(body []byte) {
	var order model.Order
	if err := json.Unmarshal(body, &order); err != nil {
		metrics.RealtimeMalformedTotal.Inc()
		c.log.Warn("Discarding malformed order message", zap.Error(err), zap.ByteString("body", body))
		return
	}

	kind := "status"
	if order.Upcoming {
		kind = "offer"
	}
	metrics.RealtimeMessagesTotal.WithLabelValues(kind).Inc()
	c.log.Debug("Order message received",
		zap.Int64("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.Bool("upcoming", order.Upcoming))

	c.store.HandleOrder(&order)
}

func (c *Client) handleWarning(body []byte) {
	var warning model.DepositWarning
	if err := json.Unmarshal(body, &warning); err != nil {
		metrics.RealtimeMalformedTotal.Inc()
		c.log.Warn("Discarding malformed warning message", zap.Error(err))
		return
	}
	if warning.Type != model.DepositWarningType {
		c.log.Debug("Ignoring warning", zap.String("type", warning.Type))
		return
	}

	metrics.RealtimeMessagesTotal.WithLabelValues("warning").Inc()
	c.store.SetWarning(&warning)
}

func (c *Client) sendHeartBeats(conn *websocket.Conn, every time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := c.write(conn, []byte("\n")); err != nil {
				c.log.Debug("Heart-beat write failed", zap.Error(err))
				return
			}
		}
	}
}

func (c *Client) disconnect(conn *websocket.Conn) {
	if err := c.writeFrame(conn, frame.New(cmdDisconnect)); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		c.log.Debug("DISCONNECT not sent", zap.Error(err))
	}

	c.writeMu.Lock()
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	_ = conn.Close()
}

func (c *Client) writeFrame(conn *websocket.Conn, f *frame.Frame) error {
	data, err := encodeFrame(f)
	if err != nil {
		return err
	}
	return c.write(conn, data)
}

func (c *Client) write(conn *websocket.Conn, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, data)
}
