package app

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type apiCall struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
	Data   map[string]any
	Files  []string
}

// fakeGengo answers "METHOD path" routes, relative to /v2/, with canned
// bodies and records every call.
type fakeGengo struct {
	srv    *httptest.Server
	mu     sync.Mutex
	calls  []apiCall
	routes map[string]string
}

func okEnvelope(response string) string {
	return `{"opstat":"ok","response":` + response + `}`
}

func errEnvelope(code int, msg string) string {
	b, _ := json.Marshal(map[string]any{"opstat": "error", "err": map[string]any{"code": code, "msg": msg}})
	return string(b)
}

// newFakeGengo isolates HOME and points the CLI at a local fake API.
func newFakeGengo(t *testing.T, routes map[string]string) *fakeGengo {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	t.Setenv("GENGO_PUBLIC_KEY", "pub")
	t.Setenv("GENGO_PRIVATE_KEY", "priv")
	f := &fakeGengo{routes: routes}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	t.Setenv("GENGO_BASE_URL", f.srv.URL+"/v2/")
	return f
}

func (f *fakeGengo) serve(w http.ResponseWriter, r *http.Request) {
	call := apiCall{Method: r.Method, Path: strings.TrimPrefix(r.URL.Path, "/v2/"), Query: r.URL.Query()}
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(10 << 20); err == nil {
			call.Form = url.Values(r.MultipartForm.Value)
			for _, fhs := range r.MultipartForm.File {
				for _, fh := range fhs {
					call.Files = append(call.Files, fh.Filename)
				}
			}
		}
	} else if r.Method == http.MethodPost || r.Method == http.MethodPut {
		_ = r.ParseForm()
		call.Form = r.PostForm
	}
	if d := call.Form.Get("data"); d != "" {
		_ = json.Unmarshal([]byte(d), &call.Data)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	body, ok := f.routes[r.Method+" "+call.Path]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, errEnvelope(404, "no route "+r.Method+" "+call.Path))
		return
	}
	_, _ = io.WriteString(w, body)
}

func (f *fakeGengo) setRoute(key, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[key] = body
}

func (f *fakeGengo) callsTo(method, path string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// writeConfigForTest stores a config file and returns its path.
func writeConfigForTest(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
