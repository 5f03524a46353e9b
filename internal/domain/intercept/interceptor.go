package intercept

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// ErrAlreadyInstalled is returned when Install is called while a previous
// install has not been undone. The controller's sequencing bug would
// otherwise go unnoticed.
var ErrAlreadyInstalled = errors.New("interception already installed")

// Observer receives routing outcomes for monitoring.
type Observer interface {
	RecordIntercepted(outcome string)
}

// Interceptor swaps the ambient fetch client's transport for a fixture
// router. The ambient client is the single global mutable resource in the
// previewer; the interceptor is its only writer.
type Interceptor struct {
	mu        sync.Mutex
	client    *resty.Client
	routes    []Route
	saved     http.RoundTripper
	installed bool
	observer  Observer
}

// New creates an interceptor over the ambient client and route table.
func New(client *resty.Client, routes []Route) *Interceptor {
	return &Interceptor{client: client, routes: routes}
}

// WithObserver attaches a routing outcome observer.
func (i *Interceptor) WithObserver(obs Observer) *Interceptor {
	i.observer = obs
	return i
}

// Install replaces the ambient transport with the fixture router. Calling
// while already installed is a deterministic error.
func (i *Interceptor) Install() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.installed {
		return ErrAlreadyInstalled
	}
	i.saved = i.client.GetClient().Transport
	i.client.SetTransport(&fixtureTransport{routes: i.routes, observer: i.observer})
	i.installed = true
	return nil
}

// Uninstall restores the transport saved at install time. Safe to call
// when nothing is installed; the second of two calls is a no-op.
func (i *Interceptor) Uninstall() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.installed {
		return
	}
	i.client.GetClient().Transport = i.saved
	i.saved = nil
	i.installed = false
}

// Installed reports whether interception is currently active.
func (i *Interceptor) Installed() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.installed
}

// Client returns the ambient client. Between Install and Uninstall every
// request issued through it is answered from fixtures.
func (i *Interceptor) Client() *resty.Client {
	return i.client
}

// Do issues a GET through the ambient client and returns the status and
// body. This is what the sandbox's fetch binding calls.
func (i *Interceptor) Do(path string) (int, []byte, error) {
	resp, err := i.client.R().Get(path)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

// fixtureTransport answers requests from the route table instead of the
// network. Matching is first-wins over the ordered routes; anything
// unmatched, including a malformed request, becomes a synthetic 404.
type fixtureTransport struct {
	routes   []Route
	observer Observer
}

func (t *fixtureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp := t.route(req)

	outcome := "matched"
	if resp.Status == 404 {
		outcome = "not_found"
	}
	if t.observer != nil {
		t.observer.RecordIntercepted(outcome)
	}

	return synthesize(req, resp)
}

func (t *fixtureTransport) route(req *http.Request) Response {
	if req == nil || req.URL == nil || req.URL.Path == "" {
		return NotFound()
	}
	path := req.URL.Path

	for _, r := range t.routes {
		if r.Exact {
			if path == r.Pattern {
				return r.Respond(Request{Path: path})
			}
			continue
		}
		if strings.HasPrefix(path, r.Pattern) {
			rest := strings.TrimPrefix(path, r.Pattern)
			return r.Respond(Request{Path: path, Rest: rest})
		}
	}
	return NotFound()
}

// synthesize builds an *http.Response around a fixture reply.
func synthesize(req *http.Request, resp Response) (*http.Response, error) {
	body, err := sonic.Marshal(resp.Body)
	if err != nil {
		body = []byte(`{"detail":"fixture encoding failed"}`)
		resp.Status = 500
	}

	header := make(http.Header)
	header.Set("Content-Type", "application/json")

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", resp.Status, http.StatusText(resp.Status)),
		StatusCode:    resp.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}, nil
}
