package gengo

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"testing"
	"time"
)

var fixedNow = time.Unix(1700000000, 0)

func fixedClock() time.Time { return fixedNow }

type fakeTransport struct {
	mu   sync.Mutex
	reqs []*Request
	resp *RawResponse
	err  error
}

func (f *fakeTransport) Do(_ context.Context, req *Request) (*RawResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return f.resp, f.err
}

func (f *fakeTransport) last(t *testing.T) *Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.reqs) == 0 {
		t.Fatal("no request was sent")
	}
	return f.reqs[len(f.reqs)-1]
}

func okResponse(response string) *RawResponse {
	return &RawResponse{StatusCode: 200, Body: []byte(`{"opstat":"ok","response":` + response + `}`)}
}

func newTestClient(ft *fakeTransport) *Client {
	return New(NewCredential("pub", "priv", false), WithTransport(ft), WithClock(fixedClock))
}

// formData decodes the JSON carried in the data field of a form body.
func formData(t *testing.T, req *Request) map[string]any {
	t.Helper()
	params, err := url.ParseQuery(string(req.Body))
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(params.Get("data")), &out); err != nil {
		t.Fatalf("decode data field: %v (%q)", err, params.Get("data"))
	}
	return out
}

func jobEntries(t *testing.T, data map[string]any) map[string]map[string]any {
	t.Helper()
	raw, ok := data["jobs"].(map[string]any)
	if !ok {
		t.Fatalf("jobs missing: %#v", data)
	}
	out := make(map[string]map[string]any, len(raw))
	for k, v := range raw {
		entry, ok := v.(map[string]any)
		if !ok {
			t.Fatalf("job entry %s is %T", k, v)
		}
		out[k] = entry
	}
	return out
}
