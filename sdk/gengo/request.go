package gengo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Request is a fully encoded, signed API call. Building one performs no I/O.
type Request struct {
	Method    string
	Endpoint  string
	URL       string
	Header    http.Header
	Params    url.Values
	Body      []byte
	Timestamp int64
}

type builder struct {
	cred    Credential
	baseURL string
	now     func() time.Time
}

func (b builder) authParams() (url.Values, int64) {
	ts := Timestamp(b.now())
	v := url.Values{}
	v.Set("api_key", b.cred.PublicKey)
	v.Set("ts", strconv.FormatInt(ts, 10))
	v.Set("api_sig", Sign(b.cred.PrivateKey, ts))
	return v, ts
}

func (b builder) newRequest(method, endpoint string, params url.Values, ts int64) *Request {
	h := make(http.Header)
	h.Set("Accept", "application/json")
	return &Request{
		Method:    method,
		Endpoint:  endpoint,
		URL:       strings.TrimRight(b.baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/"),
		Header:    h,
		Params:    params,
		Timestamp: ts,
	}
}

// Get carries query and auth parameters in the URL.
func (b builder) Get(endpoint string, query url.Values) *Request {
	params, ts := b.authParams()
	for k, vs := range query {
		if _, auth := params[k]; auth {
			continue
		}
		params[k] = append([]string(nil), vs...)
	}
	req := b.newRequest(http.MethodGet, endpoint, params, ts)
	req.URL += "?" + params.Encode()
	return req
}

func (b builder) Delete(endpoint string, query url.Values) *Request {
	req := b.Get(endpoint, query)
	req.Method = http.MethodDelete
	return req
}

// Post wraps the JSON body in a form field named data next to the auth
// parameters.
func (b builder) Post(endpoint string, body map[string]any) (*Request, error) {
	params, ts, err := b.dataParams(body)
	if err != nil {
		return nil, err
	}
	req := b.newRequest(http.MethodPost, endpoint, params, ts)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Body = []byte(params.Encode())
	return req, nil
}

func (b builder) Put(endpoint string, body map[string]any) (*Request, error) {
	req, err := b.Post(endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Method = http.MethodPut
	return req, nil
}

// Upload sends every parameter and file as multipart/form-data.
func (b builder) Upload(endpoint string, body map[string]any, files map[string]File) (*Request, error) {
	params, ts, err := b.dataParams(body)
	if err != nil {
		return nil, err
	}
	boundary := "GengoGoBoundary" + strconv.FormatInt(ts, 10)
	encoded, err := encodeMultipart(boundary, params, files)
	if err != nil {
		return nil, err
	}
	req := b.newRequest(http.MethodPost, endpoint, params, ts)
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)
	req.Body = encoded
	return req, nil
}

func (b builder) dataParams(body map[string]any) (url.Values, int64, error) {
	data, err := encodeBody(body)
	if err != nil {
		return nil, 0, err
	}
	params, ts := b.authParams()
	params.Set("data", string(data))
	return params, ts, nil
}

// encodeBody drops nil values so absent fields never reach the API as null.
func encodeBody(body map[string]any) ([]byte, error) {
	clean := make(map[string]any, len(body))
	for k, v := range body {
		if v == nil {
			continue
		}
		clean[k] = v
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return nil, fmt.Errorf("gengo: encode request body: %w", err)
	}
	return b, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeMultipart(boundary string, params url.Values, files map[string]File) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("gengo: multipart boundary: %w", err)
	}

	for _, key := range sortedKeys(params) {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(key)))
		h.Set("Content-Type", "text/plain")
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write([]byte(params.Get(key))); err != nil {
			return nil, err
		}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f := files[name]
		mt := f.MIMEType
		if mt == "" {
			mt = mimeTypeOf(f.Name)
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(name), quoteEscaper.Replace(f.Name)))
		h.Set("Content-Type", mt)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedKeys(v url.Values) []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
