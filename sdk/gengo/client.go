package gengo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is safe for concurrent use. Calls share no mutable state; each one
// builds and signs its own request.
type Client struct {
	cred      Credential
	baseURL   string
	now       func() time.Time
	transport Transport
	trace     func(TraceEvent)
}

type Option func(*Client)

// WithTransport replaces the default resty transport, typically with a fake.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.transport = NewRestyTransport(hc) }
}

// WithTimeout uses the default transport with an overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.transport = NewRestyTransport(defaultHTTPClient(d))
		}
	}
}

// WithClock sets the time source used for signing.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithBaseURL overrides the endpoint selected by the credential.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if strings.TrimSpace(u) != "" {
			c.baseURL = u
		}
	}
}

func WithTrace(fn func(TraceEvent)) Option {
	return func(c *Client) { c.trace = fn }
}

func New(cred Credential, opts ...Option) *Client {
	c := &Client{
		cred:    cred,
		baseURL: cred.BaseURL(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewRestyTransport(nil)
	}
	return c
}

func (c *Client) Credential() Credential { return c.cred }

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) requests() builder {
	return builder{cred: c.cred, baseURL: c.baseURL, now: c.now}
}

func (c *Client) emitTrace(ev TraceEvent) {
	if c.trace != nil {
		c.trace(ev)
	}
}

// do performs exactly one exchange. The returned payload is the envelope's
// response member and may be nil on success.
func (c *Client) do(ctx context.Context, req *Request) (json.RawMessage, error) {
	id := uuid.NewString()
	c.emitTrace(TraceEvent{
		RequestID: id,
		Stage:     "request",
		Method:    req.Method,
		URL:       req.URL,
		Request:   traceBody(req.Body),
	})

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	payload, err := interpret(resp, err)

	ev := TraceEvent{
		RequestID:  id,
		Stage:      "response",
		Method:     req.Method,
		URL:        req.URL,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if resp != nil {
		ev.StatusCode = resp.StatusCode
		ev.Response = traceBody(resp.Body)
	}
	if err != nil {
		ev.Stage = "error"
		ev.Error = err.Error()
	}
	c.emitTrace(ev)
	return payload, err
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	return c.do(ctx, c.requests().Get(endpoint, query))
}

func (c *Client) post(ctx context.Context, endpoint string, body map[string]any) (json.RawMessage, error) {
	req, err := c.requests().Post(endpoint, body)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, req)
}

// Stats returns spending figures for the account.
func (c *Client) Stats(ctx context.Context) (Account, error) {
	raw, err := c.get(ctx, "account/stats", nil)
	if err != nil {
		return Account{}, err
	}
	return mapAccount(raw), nil
}

func (c *Client) Balance(ctx context.Context) (Account, error) {
	raw, err := c.get(ctx, "account/balance", nil)
	if err != nil {
		return Account{}, err
	}
	return mapAccount(raw), nil
}

// PreferredTranslators flattens the per-pair translator groups.
func (c *Client) PreferredTranslators(ctx context.Context) ([]Translator, error) {
	raw, err := c.get(ctx, "account/preferred_translators", nil)
	if err != nil {
		return nil, err
	}
	return mapTranslators(raw), nil
}
