package gengo

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Transport executes one request exactly once. Implementations return the
// response they received, if any, together with a transport failure, if any.
type Transport interface {
	Do(ctx context.Context, req *Request) (*RawResponse, error)
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, req *Request) (*RawResponse, error)

func (f TransportFunc) Do(ctx context.Context, req *Request) (*RawResponse, error) {
	return f(ctx, req)
}

const (
	connectTimeout        = 10 * time.Second
	tlsHandshakeTimeout   = 10 * time.Second
	responseHeaderTimeout = 30 * time.Second
	keepAliveTimeout      = 30 * time.Second
	idleConnTimeout       = 90 * time.Second
	maxIdleConns          = 100
	maxIdleConnsPerHost   = 10
	defaultTimeout        = 60 * time.Second
)

// RestyTransport is the default Transport. It never retries.
type RestyTransport struct {
	client *resty.Client
}

// NewRestyTransport wraps hc, or a tuned default client when hc is nil.
func NewRestyTransport(hc *http.Client) *RestyTransport {
	if hc == nil {
		hc = defaultHTTPClient(defaultTimeout)
	}
	return &RestyTransport{client: resty.NewWithClient(hc).SetRetryCount(0)}
}

func defaultHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: keepAliveTimeout,
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           dialer.DialContext,
			TLSHandshakeTimeout:   tlsHandshakeTimeout,
			ResponseHeaderTimeout: responseHeaderTimeout,
			IdleConnTimeout:       idleConnTimeout,
			MaxIdleConns:          maxIdleConns,
			MaxIdleConnsPerHost:   maxIdleConnsPerHost,
		},
		Timeout: timeout,
	}
}

func (t *RestyTransport) Do(ctx context.Context, req *Request) (*RawResponse, error) {
	r := t.client.R().SetContext(ctx)
	for k, vs := range req.Header {
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}
	resp, err := r.Execute(req.Method, req.URL)
	if resp == nil || resp.RawResponse == nil {
		return nil, err
	}
	return &RawResponse{StatusCode: resp.StatusCode(), Body: resp.Body()}, err
}
