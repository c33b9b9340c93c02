package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Transport performs exactly one network request per Send.
type Transport interface {
	Send(ctx context.Context, prompt string) (*Response, error)
}

// maxErrorBody caps how much of a rejected response body is kept for logs.
const maxErrorBody = 2048

// HTTPTransport posts the generateContent payload directly, authenticating
// with the key query parameter.
type HTTPTransport struct {
	client     *http.Client
	endpoint   string
	credential string
}

// NewHTTPTransport returns a transport for endpoint. A nil client means
// http.DefaultClient.
func NewHTTPTransport(client *http.Client, endpoint, credential string) (*HTTPTransport, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, fmt.Errorf("%w: endpoint cannot be empty", ErrInvalidConfig)
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("%w: endpoint: %v", ErrInvalidConfig, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{client: client, endpoint: endpoint, credential: credential}, nil
}

func (t *HTTPTransport) Send(ctx context.Context, prompt string) (*Response, error) {
	u, err := url.Parse(t.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse endpoint: %v", ErrTransport, err)
	}
	q := u.Query()
	q.Set("key", t.credential)
	u.RawQuery = q.Encode()

	payload, err := json.Marshal(NewRequest(prompt))
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrMalformedResponse, err)
	}
	return &out, nil
}
