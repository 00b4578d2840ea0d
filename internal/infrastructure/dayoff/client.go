// Package dayoff answers whether a calendar date is a non-working day by
// asking an isdayoff.ru compatible HTTP service.
package dayoff

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskman/taskman-api/internal/core/domain"
	"github.com/taskman/taskman-api/internal/pkg/metrics"
)

const (
	DefaultBaseURL = "https://isdayoff.ru"
	DefaultTimeout = 10 * time.Second
)

// Client queries GET {base}/{YYYY-MM-DD}. The timeout bounds connecting, the
// TLS handshake and each write of the request; reading the response is
// unbounded. Requests are not retried.
type Client struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialWithWriteDeadline(&net.Dialer{Timeout: timeout, KeepAlive: 30 * time.Second}, timeout)
	transport.TLSHandshakeTimeout = timeout

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: transport},
		logger:  logger,
	}
}

func dialWithWriteDeadline(d *net.Dialer, timeout time.Duration) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		return &writeDeadlineConn{Conn: conn, timeout: timeout}, nil
	}
}

// writeDeadlineConn bounds every Write by timeout. Reads keep no deadline.
type writeDeadlineConn struct {
	net.Conn
	timeout time.Duration
}

func (c *writeDeadlineConn) Write(p []byte) (int, error) {
	if err := c.Conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Write(p)
}

// IsDayOff reports true only when the service answers "1".
func (c *Client) IsDayOff(ctx context.Context, date domain.Date) (bool, error) {
	url := c.baseURL + "/" + date.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.DayOffRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Warn().Err(err).Str("date", date.String()).Msg("day-off service unreachable")
		return false, fmt.Errorf("%w: day-off service: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("date", date.String()).Msg("day-off service error")
		return false, fmt.Errorf("%w: day-off service returned %d", domain.ErrUpstream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("%w: read day-off response: %v", domain.ErrUpstream, err)
	}
	return strings.TrimSpace(string(body)) == "1", nil
}
