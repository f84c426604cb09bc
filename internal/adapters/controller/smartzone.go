// Package controller implements the wireless controller port against
// the SmartZone public REST API.
package controller

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/airlens/airmon/internal/core/domain"
)

// pageSize is the listSize requested per query page.
const pageSize = 1000

// Options configures the SmartZone client.
type Options struct {
	BaseURL         string
	Username        string
	Password        string
	QueryAPIVersion string // e.g. v9_1
	LoginAPIVersion string // e.g. v10_0; session endpoints moved in v10
	Timeout         time.Duration
	InsecureTLS     bool
}

// SmartZoneClient fetches inventory from a SmartZone controller. It
// holds a session cookie and re-authenticates transparently when the
// controller expires it.
type SmartZoneClient struct {
	http   *resty.Client
	opts   Options
	logger *zap.Logger

	mu       sync.Mutex
	loggedIn bool
}

// listEnvelope is the common paginated response wrapper.
type listEnvelope[T any] struct {
	TotalCount int  `json:"totalCount"`
	HasMore    bool `json:"hasMore"`
	FirstIndex int  `json:"firstIndex"`
	List       []T  `json:"list"`
}

type sessionRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewSmartZoneClient creates a controller client. No network calls are
// made until the first fetch.
func NewSmartZoneClient(opts Options, logger *zap.Logger) *SmartZoneClient {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL+"/wsg/api/public").
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.InsecureTLS {
		// Controllers commonly ship self-signed certificates.
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &SmartZoneClient{
		http:   client,
		opts:   opts,
		logger: logger,
	}
}

// Zones returns all zone descriptors.
func (c *SmartZoneClient) Zones(ctx context.Context) ([]domain.ZoneRecord, error) {
	return queryAll[domain.ZoneRecord](ctx, c, "/query/zone")
}

// AccessPoints returns every AP across all zones.
func (c *SmartZoneClient) AccessPoints(ctx context.Context) ([]domain.AccessPointRecord, error) {
	return queryAll[domain.AccessPointRecord](ctx, c, "/query/ap")
}

// Clients returns every associated client across all zones.
func (c *SmartZoneClient) Clients(ctx context.Context) ([]domain.ClientRecord, error) {
	return queryAll[domain.ClientRecord](ctx, c, "/query/client")
}

// Ping verifies reachability and credentials via the controller list
// endpoint.
func (c *SmartZoneClient) Ping(ctx context.Context) error {
	var envelope listEnvelope[map[string]interface{}]
	if err := c.get(ctx, c.queryPath("/controller"), nil, &envelope); err != nil {
		return err
	}
	if len(envelope.List) == 0 {
		return fmt.Errorf("controller %s returned an empty cluster list", c.opts.BaseURL)
	}
	return nil
}

// queryAll walks a paginated query endpoint until hasMore is false.
func queryAll[T any](ctx context.Context, c *SmartZoneClient, endpoint string) ([]T, error) {
	var all []T
	firstIndex := 0

	for {
		params := map[string]string{
			"listSize":   fmt.Sprintf("%d", pageSize),
			"firstIndex": fmt.Sprintf("%d", firstIndex),
		}
		var envelope listEnvelope[T]
		if err := c.get(ctx, c.queryPath(endpoint), params, &envelope); err != nil {
			return nil, fmt.Errorf("querying %s: %w", endpoint, err)
		}

		all = append(all, envelope.List...)
		if !envelope.HasMore || len(envelope.List) == 0 {
			break
		}
		firstIndex += len(envelope.List)
	}
	return all, nil
}

// get performs an authenticated GET, logging in first if needed and
// retrying once after re-login when the session has expired.
func (c *SmartZoneClient) get(ctx context.Context, path string, params map[string]string, out interface{}) error {
	if err := c.ensureSession(ctx); err != nil {
		return err
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	if resp.StatusCode() == 401 {
		c.logger.Info("controller session expired, re-authenticating")
		c.invalidateSession()
		if err := c.ensureSession(ctx); err != nil {
			return err
		}
		resp, err = c.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetResult(out).
			Get(path)
		if err != nil {
			return fmt.Errorf("GET %s: %w", path, err)
		}
	}

	if resp.IsError() {
		return fmt.Errorf("GET %s: controller returned %d", path, resp.StatusCode())
	}
	return nil
}

// ensureSession logs in once; resty's cookie jar keeps the session
// cookie for subsequent requests.
func (c *SmartZoneClient) ensureSession(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loggedIn {
		return nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sessionRequest{Username: c.opts.Username, Password: c.opts.Password}).
		Post(c.loginPath("/session"))
	if err != nil {
		return fmt.Errorf("controller login: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("controller login: returned %d", resp.StatusCode())
	}

	c.loggedIn = true
	c.logger.Debug("controller session established")
	return nil
}

func (c *SmartZoneClient) invalidateSession() {
	c.mu.Lock()
	c.loggedIn = false
	c.mu.Unlock()
}

func (c *SmartZoneClient) queryPath(endpoint string) string {
	return "/" + c.opts.QueryAPIVersion + endpoint
}

func (c *SmartZoneClient) loginPath(endpoint string) string {
	return "/" + c.opts.LoginAPIVersion + endpoint
}
