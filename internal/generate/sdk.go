package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// SDKTransport sends the prompt through the genai client. It exists for
// deployments that prefer the SDK's request handling over the raw endpoint.
type SDKTransport struct {
	client *genai.Client
	model  string
}

// SDKOptions configures NewSDKTransport. BaseURL and HTTPClient are only
// needed to point the SDK at something other than the public API.
type SDKOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKTransport(ctx context.Context, opts SDKOptions) (*SDKTransport, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("%w: API key cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	cfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create genai client: %v", ErrInvalidConfig, err)
	}
	return &SDKTransport{client: client, model: opts.Model}, nil
}

func (t *SDKTransport) Send(ctx context.Context, prompt string) (*Response, error) {
	resp, err := t.client.Models.GenerateContent(ctx, t.model, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return fromSDK(resp), nil
}

func fromSDK(resp *genai.GenerateContentResponse) *Response {
	out := &Response{}
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			out.Candidates = append(out.Candidates, Candidate{})
			continue
		}
		content := &Content{Role: cand.Content.Role}
		for _, part := range cand.Content.Parts {
			if part == nil {
				content.Parts = append(content.Parts, Part{})
				continue
			}
			text := part.Text
			content.Parts = append(content.Parts, Part{Text: &text})
		}
		out.Candidates = append(out.Candidates, Candidate{Content: content})
	}
	return out
}
