package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 10 << 20

// Request describes a JSON GET against a provider.
type Request struct {
	Provider string
	Op       string
	URL      string
	Header   http.Header
	// MapError converts a non-2xx response into an error. When it is nil or
	// returns nil, the default status mapping applies.
	MapError func(status int, body []byte) error
}

// GetJSON performs the request and decodes a 2xx body into out.
//
// Default status mapping:
//   - 404 → ErrInvalidSymbol
//   - 429 → ErrRateLimited
//   - any other non-2xx → ErrUnavailable
//
// Transport failures are ErrUnavailable and undecodable bodies are ErrMalformed.
func GetJSON(ctx context.Context, client *http.Client, r Request, out any) error {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return NewError(r.Provider, r.Op, ErrUnavailable, 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smartinvest/1.0")
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return NewError(r.Provider, r.Op, ErrUnavailable, 0, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return NewError(r.Provider, r.Op, ErrUnavailable, resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if r.MapError != nil {
			if mapped := r.MapError(resp.StatusCode, body); mapped != nil {
				return mapped
			}
		}
		return NewError(r.Provider, r.Op, kindForStatus(resp.StatusCode), resp.StatusCode, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return NewError(r.Provider, r.Op, ErrMalformed, resp.StatusCode, err)
	}
	return nil
}

func kindForStatus(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrInvalidSymbol
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return ErrUnavailable
	}
}
