// Package innertube sends requests to the InnerTube API behind YouTube Music.
//
// A Client scrapes its API key and client configuration from the web app's
// landing page, keeps session cookies in a jar and retries throttled
// requests. It implements ytmusic.Requester.
package innertube

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/justestif/go-ytmusic/ytmusic"
)

const (
	// DefaultBaseURL is the YouTube Music web app.
	DefaultBaseURL = "https://music.youtube.com/"

	userAgent      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/81.0.4044.129 Safari/537.36"
	acceptLanguage = "en-US,en;q=0.5"

	defaultTimeout = 15 * time.Second
)

// ErrThrottled is returned when the API keeps answering 429 or 503 after
// every retry.
var ErrThrottled = errors.New("request throttled")

// StatusError reports a non-200 response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Endpoint, e.Code)
}

// CookieStore persists session cookies. *session.CookieStore implements it.
type CookieStore interface {
	Load() ([]*http.Cookie, error)
	Save(cookies []*http.Cookie) error
}

var ytcfgPattern = regexp.MustCompile(`ytcfg\.set\((\{.*?\})\);`)

// Client is an InnerTube client. It is safe for concurrent use once
// initialized.
type Client struct {
	httpClient *http.Client
	jar        http.CookieJar
	baseURL    *url.URL
	gl, hl     string
	cookies    string
	store      CookieStore
	logger     *log.Logger
	delays     []time.Duration
	location   *time.Location

	mu          sync.RWMutex
	config      map[string]any
	initialized bool
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u *url.URL) Option {
	return func(c *Client) {
		if u != nil {
			c.baseURL = u
		}
	}
}

// WithLocale overrides the country (gl) and language (hl) sent with every
// request. Empty values keep what the landing page configured.
func WithLocale(gl, hl string) Option {
	return func(c *Client) {
		c.gl = gl
		c.hl = hl
	}
}

// WithCookies seeds the jar with a Cookie header value ("a=b; c=d").
// The cookies are seeded again on every Initialize.
func WithCookies(header string) Option {
	return func(c *Client) {
		c.cookies = header
	}
}

// WithProxy routes all traffic through an HTTP proxy. Credentials in the
// URL are used for proxy authentication.
func WithProxy(u *url.URL) Option {
	return func(c *Client) {
		if u == nil {
			return
		}
		tr := http.DefaultTransport.(*http.Transport).Clone()
		tr.Proxy = http.ProxyURL(u)
		c.httpClient.Transport = tr
	}
}

// WithTimeout sets the timeout of a single HTTP exchange.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithCookieStore loads cookies from store on Initialize and saves the jar
// back once initialized.
func WithCookieStore(store CookieStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// WithLogger sets the logger for retries and cookie persistence problems.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetryDelays replaces the backoff schedule for throttled requests.
// The number of delays is the number of retries.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(c *Client) {
		c.delays = delays
	}
}

// WithTimeZone sets the zone reported in the request headers and context.
func WithTimeZone(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.location = loc
		}
	}
}

// New creates an uninitialized client. Call Initialize before Request.
func New(opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}
	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Jar:     jar,
		},
		jar:      jar,
		baseURL:  base,
		logger:   log.New(io.Discard, "", 0),
		delays:   []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		location: time.Local,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Initialized reports whether Initialize has completed.
func (c *Client) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Initialize fetches the landing page and reads the client configuration
// from its ytcfg.set calls. Calls after the first are no-ops unless force is
// set. Configuration objects that fail to decode are skipped; if none
// decodes, ErrUpstreamMalformed is returned.
func (c *Client) Initialize(ctx context.Context, force bool) error {
	if c.Initialized() && !force {
		return nil
	}

	c.seedCookies()

	page, err := c.fetchLandingPage(ctx)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}

	config, err := parseConfig(page)
	if err != nil {
		return fmt.Errorf("initializing: %w", err)
	}
	if c.gl != "" {
		config["GL"] = c.gl
	}
	if c.hl != "" {
		config["HL"] = c.hl
	}

	c.mu.Lock()
	c.config = config
	c.initialized = true
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Save(c.jar.Cookies(c.baseURL)); err != nil {
			c.logger.Printf("innertube: saving cookies: %v", err)
		}
	}
	return nil
}

// seedCookies loads stored cookies, then the configured cookie header, so
// that explicitly configured values win.
func (c *Client) seedCookies() {
	if c.store != nil {
		cookies, err := c.store.Load()
		if err != nil {
			c.logger.Printf("innertube: loading cookies: %v", err)
		}
		if len(cookies) > 0 {
			c.jar.SetCookies(c.baseURL, cookies)
		}
	}
	c.mu.RLock()
	header := c.cookies
	c.mu.RUnlock()
	if header != "" {
		c.jar.SetCookies(c.baseURL, ParseCookieHeader(header))
	}
}

// SetCookies replaces the configured cookie header and seeds the jar with
// it right away.
func (c *Client) SetCookies(header string) {
	c.mu.Lock()
	c.cookies = header
	c.mu.Unlock()
	c.jar.SetCookies(c.baseURL, ParseCookieHeader(header))
}

// ParseCookieHeader splits a Cookie header value into cookies scoped to
// the whole site. Malformed pairs are skipped.
func ParseCookieHeader(header string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, pair := range strings.Split(header, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: name, Value: value, Path: "/"})
	}
	return cookies
}

func (c *Client) fetchLandingPage(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching landing page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Endpoint: "landing page", Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading landing page: %w", err)
	}
	return body, nil
}

// parseConfig merges every decodable ytcfg.set object in page order.
func parseConfig(page []byte) (map[string]any, error) {
	config := make(map[string]any)
	decoded := 0
	for _, m := range ytcfgPattern.FindAllSubmatch(page, -1) {
		var part map[string]any
		if err := json.Unmarshal(m[1], &part); err != nil {
			continue
		}
		for k, v := range part {
			config[k] = v
		}
		decoded++
	}
	if decoded == 0 {
		return nil, fmt.Errorf("%w: no ytcfg configuration in landing page", ytmusic.ErrUpstreamMalformed)
	}
	return config, nil
}

// configValue returns a configuration entry as a string. Numbers such as
// INNERTUBE_CONTEXT_CLIENT_NAME are formatted without a fraction.
func (c *Client) configValue(key string) string {
	c.mu.RLock()
	v, ok := c.config[key]
	c.mu.RUnlock()
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}

// Request posts body, merged over the InnerTube context, to endpoint.
func (c *Client) Request(ctx context.Context, endpoint string, body map[string]any, query map[string]string) ([]byte, error) {
	if !c.Initialized() {
		return nil, ytmusic.ErrNotInitialized
	}

	params := url.Values{}
	for k, v := range query {
		params.Set(k, v)
	}
	params.Set("alt", "json")
	params.Set("key", c.configValue("INNERTUBE_API_KEY"))

	ref := &url.URL{
		Path:     "youtubei/" + c.configValue("INNERTUBE_API_VERSION") + "/" + endpoint,
		RawQuery: params.Encode(),
	}
	reqURL := c.baseURL.ResolveReference(ref).String()

	payload := map[string]any{"context": c.requestContext()}
	for k, v := range body {
		payload[k] = v
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s request: %w", endpoint, err)
	}

	return c.doRequest(ctx, endpoint, reqURL, data)
}

// doRequest performs the POST with retry on throttling.
// Retries once per configured delay (1s, 2s, 4s by default).
func (c *Client) doRequest(ctx context.Context, endpoint, reqURL string, data []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= len(c.delays); attempt++ {
		// Wait before retry (skip on first attempt)
		if attempt > 0 {
			c.logger.Printf("innertube: %s throttled, retry %d in %s", endpoint, attempt, c.delays[attempt-1])
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.delays[attempt-1]):
			}
		}

		body, err := c.doSingleRequest(ctx, endpoint, reqURL, data)
		if err == nil {
			return body, nil
		}

		if errors.Is(err, ErrThrottled) {
			lastErr = err
			continue
		}

		return nil, err
	}

	return nil, lastErr
}

func (c *Client) doSingleRequest(ctx context.Context, endpoint, reqURL string, data []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return nil, fmt.Errorf("%s: status %d: %w", endpoint, resp.StatusCode, ErrThrottled)
	default:
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request) {
	origin := strings.TrimSuffix(c.baseURL.String(), "/")

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Origin", origin)
	req.Header.Set("X-Origin", origin)
	req.Header.Set("X-Goog-Visitor-Id", c.configValue("VISITOR_DATA"))
	req.Header.Set("X-YouTube-Client-Name", c.configValue("INNERTUBE_CONTEXT_CLIENT_NAME"))
	req.Header.Set("X-YouTube-Client-Version", c.configValue("INNERTUBE_CLIENT_VERSION"))
	req.Header.Set("X-YouTube-Device", c.configValue("DEVICE"))
	req.Header.Set("X-YouTube-Page-CL", c.configValue("PAGE_CL"))
	req.Header.Set("X-YouTube-Page-Label", c.configValue("PAGE_BUILD_LABEL"))
	req.Header.Set("X-YouTube-Utc-Offset", fmt.Sprint(c.utcOffsetMinutes()))
	req.Header.Set("X-YouTube-Time-Zone", c.location.String())
}

func (c *Client) utcOffsetMinutes() int {
	_, offset := time.Now().In(c.location).Zone()
	return offset / 60
}

// requestContext builds the context object every InnerTube request carries.
func (c *Client) requestContext() map[string]any {
	return map[string]any{
		"capabilities": map[string]any{},
		"client": map[string]any{
			"clientName":       c.configValue("INNERTUBE_CLIENT_NAME"),
			"clientVersion":    c.configValue("INNERTUBE_CLIENT_VERSION"),
			"experimentIds":    []any{},
			"experimentsToken": "",
			"gl":               c.configValue("GL"),
			"hl":               c.configValue("HL"),
			"locationInfo": map[string]any{
				"locationPermissionAuthorizationStatus": "LOCATION_PERMISSION_AUTHORIZATION_STATUS_UNSUPPORTED",
			},
			"musicAppInfo": map[string]any{
				"musicActivityMasterSwitch": "MUSIC_ACTIVITY_MASTER_SWITCH_INDETERMINATE",
				"musicLocationMasterSwitch": "MUSIC_LOCATION_MASTER_SWITCH_INDETERMINATE",
				"pwaInstallabilityStatus":   "PWA_INSTALLABILITY_STATUS_UNKNOWN",
			},
			"utcOffsetMinutes": c.utcOffsetMinutes(),
		},
		"request": map[string]any{
			"internalExperimentFlags": []map[string]string{
				{"key": "force_music_enable_outertube_tastebuilder_browse", "value": "true"},
				{"key": "force_music_enable_outertube_playlist_detail_browse", "value": "true"},
				{"key": "force_music_enable_outertube_search_suggestions", "value": "true"},
			},
			"sessionIndex": map[string]any{},
		},
		"user": map[string]any{
			"enableSafetyMode": false,
		},
	}
}
