package innertube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/justestif/go-ytmusic/ytmusic"
)

const landingPage = `<html><head>
<script>ytcfg.set({"INNERTUBE_API_KEY":"key123","INNERTUBE_API_VERSION":"v1","GL":"US","HL":"en"});</script>
<script>ytcfg.set({"broken": });</script>
<script>ytcfg.set({"INNERTUBE_CLIENT_NAME":"WEB_REMIX","INNERTUBE_CLIENT_VERSION":"1.20240101","INNERTUBE_CONTEXT_CLIENT_NAME":67,"VISITOR_DATA":"visitor","DEVICE":"cbr=Chrome","PAGE_CL":12345,"PAGE_BUILD_LABEL":"youtube.music.label","HL":"en-GB"});</script>
</head></html>`

// newTestClient starts a server that serves the landing page on "/" and
// hands every API request to api.
func newTestClient(t *testing.T, api http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "YSC", Value: "fromserver", Path: "/"})
		fmt.Fprint(w, landingPage)
	})
	mux.HandleFunc("/youtubei/", api)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	base, err := url.Parse(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}

	opts = append([]Option{WithBaseURL(base), WithRetryDelays(time.Millisecond, time.Millisecond, time.Millisecond)}, opts...)
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c, srv
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `{"ok":true}`)
}

func TestRequestBeforeInitialize(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	_, err := c.Request(context.Background(), "browse", nil, nil)
	if !errors.Is(err, ytmusic.ErrNotInitialized) {
		t.Fatalf("Request() error = %v, want ErrNotInitialized", err)
	}
	if calls.Load() != 0 {
		t.Errorf("server received %d requests, want 0", calls.Load())
	}
}

func TestInitializeMergesConfig(t *testing.T) {
	c, _ := newTestClient(t, okHandler)

	if err := c.Initialize(context.Background(), false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if !c.Initialized() {
		t.Fatal("Initialized() = false after Initialize")
	}

	tests := map[string]string{
		"INNERTUBE_API_KEY":             "key123",
		"INNERTUBE_CLIENT_NAME":         "WEB_REMIX",
		"INNERTUBE_CONTEXT_CLIENT_NAME": "67",
		"PAGE_CL":                       "12345",
		"GL":                            "US",
		// Later objects override earlier ones.
		"HL": "en-GB",
		// Missing keys read as empty.
		"MISSING": "",
	}
	for key, want := range tests {
		if got := c.configValue(key); got != want {
			t.Errorf("configValue(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestInitializeNoConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html>nothing here</html>")
	}))
	defer srv.Close()

	base, _ := url.Parse(srv.URL + "/")
	c, err := New(WithBaseURL(base))
	if err != nil {
		t.Fatal(err)
	}

	err = c.Initialize(context.Background(), false)
	if !errors.Is(err, ytmusic.ErrUpstreamMalformed) {
		t.Fatalf("Initialize() error = %v, want ErrUpstreamMalformed", err)
	}
	if c.Initialized() {
		t.Error("Initialized() = true after failed Initialize")
	}
}

func TestInitializeLandingPageStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	base, _ := url.Parse(srv.URL + "/")
	c, err := New(WithBaseURL(base))
	if err != nil {
		t.Fatal(err)
	}

	err = c.Initialize(context.Background(), false)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusForbidden {
		t.Fatalf("Initialize() error = %v, want StatusError 403", err)
	}
}

func TestInitializeOnlyOnce(t *testing.T) {
	var pages atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pages.Add(1)
		fmt.Fprint(w, landingPage)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	base, _ := url.Parse(srv.URL + "/")
	c, err := New(WithBaseURL(base))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for range 3 {
		if err := c.Initialize(ctx, false); err != nil {
			t.Fatalf("Initialize() error = %v", err)
		}
	}
	if pages.Load() != 1 {
		t.Errorf("landing page fetched %d times, want 1", pages.Load())
	}

	if err := c.Initialize(ctx, true); err != nil {
		t.Fatalf("Initialize(force) error = %v", err)
	}
	if pages.Load() != 2 {
		t.Errorf("landing page fetched %d times after force, want 2", pages.Load())
	}
}

func TestRequest(t *testing.T) {
	var (
		gotPath  string
		gotQuery url.Values
		gotBody  map[string]any
		gotHdr   http.Header
		gotSID   string
	)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotHdr = r.Header.Clone()
		if ck, err := r.Cookie("SID"); err == nil {
			gotSID = ck.Value
		}
		data, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(data, &gotBody); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		fmt.Fprint(w, `{"contents":{}}`)
	}, WithCookies("SID=abc; HSID=def"), WithTimeZone(time.UTC))

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}

	resp, err := c.Request(ctx, "browse", map[string]any{"browseId": "FEmusic_home"}, map[string]string{"continuation": "tok"})
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if string(resp) != `{"contents":{}}` {
		t.Errorf("Request() = %s", resp)
	}

	if gotPath != "/youtubei/v1/browse" {
		t.Errorf("path = %q, want /youtubei/v1/browse", gotPath)
	}
	for key, want := range map[string]string{"alt": "json", "key": "key123", "continuation": "tok"} {
		if got := gotQuery.Get(key); got != want {
			t.Errorf("query %s = %q, want %q", key, got, want)
		}
	}

	for header, want := range map[string]string{
		"Content-Type":             "application/json",
		"User-Agent":               userAgent,
		"X-Goog-Visitor-Id":        "visitor",
		"X-YouTube-Client-Name":    "67",
		"X-YouTube-Client-Version": "1.20240101",
		"X-YouTube-Device":         "cbr=Chrome",
		"X-YouTube-Page-CL":        "12345",
		"X-YouTube-Page-Label":     "youtube.music.label",
		"X-YouTube-Utc-Offset":     "0",
		"X-YouTube-Time-Zone":      "UTC",
	} {
		if got := gotHdr.Get(header); got != want {
			t.Errorf("header %s = %q, want %q", header, got, want)
		}
	}
	if gotSID != "abc" {
		t.Errorf("cookie SID = %q, want abc", gotSID)
	}

	if gotBody["browseId"] != "FEmusic_home" {
		t.Errorf("body browseId = %v", gotBody["browseId"])
	}
	client := gotBody["context"].(map[string]any)["client"].(map[string]any)
	if client["clientName"] != "WEB_REMIX" || client["hl"] != "en-GB" || client["gl"] != "US" {
		t.Errorf("context.client = %v", client)
	}
}

func TestRequestLocaleOverride(t *testing.T) {
	var client map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		client = body["context"].(map[string]any)["client"].(map[string]any)
		fmt.Fprint(w, `{}`)
	}, WithLocale("DE", "de"))

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Request(ctx, "search", nil, nil); err != nil {
		t.Fatal(err)
	}
	if client["gl"] != "DE" || client["hl"] != "de" {
		t.Errorf("gl/hl = %v/%v, want DE/de", client["gl"], client["hl"])
	}
}

func TestRequestRetriesThrottled(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	})

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Request(ctx, "next", nil, nil); err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestRequestThrottledExhausted(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}
	_, err := c.Request(ctx, "next", nil, nil)
	if !errors.Is(err, ErrThrottled) {
		t.Fatalf("Request() error = %v, want ErrThrottled", err)
	}
	if calls.Load() != 4 {
		t.Errorf("calls = %d, want 4 (1 + 3 retries)", calls.Load())
	}
}

func TestRequestStatusError(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	})

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}
	_, err := c.Request(ctx, "player", nil, nil)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Request() error = %v, want *StatusError", err)
	}
	if statusErr.Code != http.StatusBadRequest || statusErr.Endpoint != "player" {
		t.Errorf("StatusError = %+v", statusErr)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry)", calls.Load())
	}
}

func TestRequestContextCancelledDuringBackoff(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}, WithRetryDelays(time.Hour))

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	_, err := c.Request(ctx, "browse", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Request() error = %v, want DeadlineExceeded", err)
	}
}

type memoryStore struct {
	loaded []*http.Cookie
	saved  []*http.Cookie
}

func (m *memoryStore) Load() ([]*http.Cookie, error) { return m.loaded, nil }

func (m *memoryStore) Save(cookies []*http.Cookie) error {
	m.saved = cookies
	return nil
}

func TestInitializeCookieStore(t *testing.T) {
	store := &memoryStore{loaded: []*http.Cookie{{Name: "PREF", Value: "stored", Path: "/"}}}

	var gotPref string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("PREF"); err == nil {
			gotPref = ck.Value
		}
		fmt.Fprint(w, `{}`)
	}, WithCookieStore(store))

	ctx := context.Background()
	if err := c.Initialize(ctx, false); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Request(ctx, "browse", nil, nil); err != nil {
		t.Fatal(err)
	}
	if gotPref != "stored" {
		t.Errorf("PREF cookie = %q, want stored", gotPref)
	}

	names := make(map[string]string)
	for _, ck := range store.saved {
		names[ck.Name] = ck.Value
	}
	if names["PREF"] != "stored" || names["YSC"] != "fromserver" {
		t.Errorf("saved cookies = %v, want PREF and YSC", names)
	}
}

func TestParseCookieHeader(t *testing.T) {
	got := ParseCookieHeader("a=1; b=two=2;; =skip; c")
	if len(got) != 2 {
		t.Fatalf("ParseCookieHeader() returned %d cookies, want 2", len(got))
	}
	if got[0].Name != "a" || got[0].Value != "1" {
		t.Errorf("got[0] = %s=%s", got[0].Name, got[0].Value)
	}
	if got[1].Name != "b" || got[1].Value != "two=2" {
		t.Errorf("got[1] = %s=%s", got[1].Name, got[1].Value)
	}
}
