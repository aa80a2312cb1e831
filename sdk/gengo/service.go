package gengo

import (
	"context"
	"net/url"
	"strconv"
)

func (c *Client) Languages(ctx context.Context) ([]Language, error) {
	raw, err := c.get(ctx, "translate/service/languages", nil)
	if err != nil {
		return nil, err
	}
	return mapLanguages(raw), nil
}

// LanguagePairs lists the pairs offered by the service, narrowed to one
// source language when source is not empty.
func (c *Client) LanguagePairs(ctx context.Context, source string) ([]LanguagePair, error) {
	q := url.Values{}
	if source != "" {
		q.Set("lc_src", source)
	}
	raw, err := c.get(ctx, "translate/service/language_pairs", q)
	if err != nil {
		return nil, err
	}
	return mapLanguagePairs(raw), nil
}

// QuoteText prices jobs without creating them. The returned jobs are
// enriched copies in submission order; jobs lacking a language pair or a
// type are not sent and are absent from the result.
func (c *Client) QuoteText(ctx context.Context, jobs []Job) ([]Job, error) {
	return c.quote(ctx, "translate/service/quote", jobs, false)
}

// QuoteFile is QuoteText for file jobs. File contents travel as multipart
// parts and every returned job carries the Identifier to use on creation.
func (c *Client) QuoteFile(ctx context.Context, jobs []Job) ([]Job, error) {
	return c.quote(ctx, "translate/service/quote/file", jobs, true)
}

func (c *Client) quote(ctx context.Context, endpoint string, jobs []Job, multipart bool) ([]Job, error) {
	body, files := quoteBody(jobs)
	var (
		req *Request
		err error
	)
	if multipart || len(files) > 0 {
		req, err = c.requests().Upload(endpoint, body, files)
	} else {
		req, err = c.requests().Post(endpoint, body)
	}
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	return mapQuote(jobs, raw), nil
}

// sendable reports whether a job can be put in a batch at all.
func sendable(j Job) bool {
	return j.Pair != nil && j.Type != ""
}

func quoteBody(jobs []Job) (map[string]any, map[string]File) {
	entries := make(map[string]any, len(jobs))
	files := make(map[string]File)
	for i, j := range jobs {
		if !sendable(j) {
			continue
		}
		entry := map[string]any{
			"lc_src": j.Pair.Source.Code,
			"lc_tgt": j.Pair.Target.Code,
			"tier":   string(j.Pair.Tier),
			"type":   string(j.Type),
		}
		switch {
		case j.Type == JobFile && j.SourceFile != nil:
			key := fileKey(i)
			entry["file_key"] = key
			files[key] = *j.SourceFile
		case j.Type == JobText && j.SourceText != "":
			entry["body_src"] = j.SourceText
		}
		entries[jobKey(i)] = entry
	}
	return map[string]any{"jobs": entries}, files
}

func fileKey(i int) string {
	return "file_" + strconv.Itoa(i+1)
}
