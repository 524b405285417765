// Package cloud implements the authenticated HTTPS transport (C4): session
// cookie lifecycle, exponential backoff, per-endpoint response cache, and
// typed endpoint wrappers, grounded on
// original_source/tests/unit/test_client.go, test_client_aioresponses.py and
// test_error_scenarios.py's exact session/backoff attribute names. HTTP
// plumbing follows the teacher's entsoe.APIClient: a stdlib *http.Client
// wrapped in a small typed client, context-aware requests, explicit status
// checks.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/devskill-org/lxpclient/internal/logx"
	"github.com/devskill-org/lxpclient/transport"
	"github.com/google/uuid"
)

const defaultBaseURL = "https://monitor.eg4electronics.com"

// sessionTTL is the assumed server-set cookie lifetime; the client
// pre-emptively re-logs-in before this elapses rather than waiting for a
// 401 (spec.md §4.4).
const sessionTTL = 25 * time.Minute

// backoffBase and backoffCap implement delay = min(cap, base * 2^n).
const (
	backoffBase = 500 * time.Millisecond
	backoffCap  = 30 * time.Second
)

type cacheEntry struct {
	body    []byte
	expires time.Time
}

// endpointTTL gives each named endpoint category its own cache lifetime,
// per spec.md §4.4: seconds-to-tens-of-seconds for telemetry, minutes for
// topology.
var endpointTTL = map[string]time.Duration{
	"plant_list":           5 * time.Minute,
	"plant_detail":         5 * time.Minute,
	"device_list":          2 * time.Minute,
	"parallel_group":       2 * time.Minute,
	"inverter_runtime":     10 * time.Second,
	"inverter_energy":      30 * time.Second,
	"battery_info":         10 * time.Second,
	"midbox_runtime":       10 * time.Second,
	"parameter_read":       15 * time.Second,
	"quick_charge_status":  10 * time.Second,
}

// Client is the session-aware HTTPS client against the cloud API. Methods
// are exposed both directly (Login) and through sub-namespaces (Plants,
// Devices, Control) mirroring pylxpweb's endpoint-module layout.
type Client struct {
	BaseURL  string
	Account  string
	password string

	httpClient *http.Client
	ownsSession bool

	mu               sync.Mutex
	sessionExpires   time.Time
	consecutiveErrors int
	currentBackoff    time.Duration
	cache             map[string]cacheEntry

	Plants  *PlantEndpoints
	Devices *DeviceEndpoints
	Control *ControlEndpoints
}

// Option configures a Client at construction time.
type Option func(*Client)

// WithBaseURL overrides the production base URL (e.g. for a self-hosted or
// test instance).
func WithBaseURL(base string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimRight(base, "/") }
}

// WithHTTPClient injects a pre-built *http.Client, analogous to pylxpweb's
// injected aiohttp.ClientSession: the caller retains ownership and Close
// will not shut it down.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsSession = false
	}
}

// New constructs a Client for the given account. Login is not performed
// until the first request (or an explicit call to Login).
func New(account, password string, opts ...Option) *Client {
	c := &Client{
		BaseURL:     defaultBaseURL,
		Account:     account,
		password:    password,
		ownsSession: true,
		cache:       make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		jar, _ := cookiejar.New(nil)
		c.httpClient = &http.Client{Jar: jar, Timeout: 30 * time.Second}
	}
	c.Plants = &PlantEndpoints{client: c}
	c.Devices = &DeviceEndpoints{client: c}
	c.Control = &ControlEndpoints{client: c}
	return c
}

// Close releases owned resources. A client built with WithHTTPClient never
// closes the injected client.
func (c *Client) Close() error {
	if c.ownsSession {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}

func (c *Client) cacheKey(endpoint string, params map[string]string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	for _, k := range sortedKeys(params) {
		fmt.Fprintf(&b, "|%s=%s", k, params[k])
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

func (c *Client) cacheGet(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expires) {
		return nil, false
	}
	return entry.body, true
}

func (c *Client) cacheSet(key string, endpoint string, body []byte) {
	ttl, ok := endpointTTL[endpoint]
	if !ok {
		return
	}
	c.mu.Lock()
	c.cache[key] = cacheEntry{body: body, expires: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// ensureAuthenticated logs in if no session exists yet, or pre-emptively
// re-logs-in when the tracked expiry clock has elapsed.
func (c *Client) ensureAuthenticated(ctx context.Context) error {
	c.mu.Lock()
	expired := c.sessionExpires.IsZero() || time.Now().After(c.sessionExpires)
	c.mu.Unlock()
	if !expired {
		return nil
	}
	_, err := c.Login(ctx)
	return err
}

// Login performs the form-encoded login and starts tracking the session
// expiry clock.
func (c *Client) Login(ctx context.Context) (*LoginResponse, error) {
	form := url.Values{"account": {c.Account}, "password": {c.password}}
	body, err := c.postForm(ctx, "/WManage/api/login", form, false)
	if err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, transport.NewError(transport.ReadError, "login", err)
	}
	if !resp.Success {
		return nil, transport.NewError(transport.ConnectionError, "login", nil, "account", c.Account)
	}
	c.mu.Lock()
	c.sessionExpires = time.Now().Add(sessionTTL)
	c.mu.Unlock()
	return &resp, nil
}

// request performs a cached, session-aware, backed-off POST against path,
// returning the raw response body. cacheEndpoint is empty to disable
// caching for that call.
func (c *Client) request(ctx context.Context, path string, form url.Values, cacheEndpoint string, cacheParams map[string]string) ([]byte, error) {
	if err := c.ensureAuthenticated(ctx); err != nil {
		return nil, err
	}

	var key string
	if cacheEndpoint != "" {
		key = c.cacheKey(path, cacheParams)
		if body, ok := c.cacheGet(key); ok {
			return body, nil
		}
	}

	c.waitBackoff(ctx)

	body, status, err := c.doPostForm(ctx, path, form, true)
	if err != nil {
		c.recordError()
		return nil, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		// One silent re-login-and-retry (spec.md §4.4).
		if _, err := c.Login(ctx); err != nil {
			c.recordError()
			return nil, err
		}
		body, status, err = c.doPostForm(ctx, path, form, true)
		if err != nil {
			c.recordError()
			return nil, err
		}
	}
	if status != http.StatusOK {
		c.recordError()
		return nil, transport.NewError(transport.ReadError, "cloud_request", nil, "path", path, "status", status)
	}
	c.recordSuccess()

	if cacheEndpoint != "" {
		c.cacheSet(key, cacheEndpoint, body)
	}
	return body, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, trackSession bool) ([]byte, error) {
	body, status, err := c.doPostForm(ctx, path, form, trackSession)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, transport.NewError(transport.ReadError, "cloud_request", nil, "path", path, "status", status)
	}
	return body, nil
}

func (c *Client) doPostForm(ctx context.Context, path string, form url.Values, trackSession bool) ([]byte, int, error) {
	reqURL := c.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewBufferString(form.Encode()))
	if err != nil {
		return nil, 0, transport.NewError(transport.ConfigError, "build_request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, transport.NewError(transport.ConnectionError, "http_do", err, "path", path)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, resp.StatusCode, transport.NewError(transport.ReadError, "read_body", err, "path", path)
	}
	return buf.Bytes(), resp.StatusCode, nil
}

func (c *Client) waitBackoff(ctx context.Context) {
	c.mu.Lock()
	delay := c.currentBackoff
	c.mu.Unlock()
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (c *Client) recordError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveErrors++
	delay := backoffBase
	for k := 0; k < c.consecutiveErrors && delay < backoffCap; k++ {
		delay *= 2
	}
	if delay > backoffCap {
		delay = backoffCap
	}
	c.currentBackoff = delay
	logx.WithOperation("cloud_request").Warnf("consecutive cloud errors=%d backoff=%s", c.consecutiveErrors, delay)
}

func (c *Client) recordSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.consecutiveErrors = 0
	c.currentBackoff = 0
}
