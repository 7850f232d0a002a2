package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Gateway talks to an OpenAI-compatible chat completions endpoint.
type Gateway struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

func NewGateway(url, apiKey, model string, client *http.Client) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gateway{url: url, apiKey: apiKey, model: model, client: client}
}

func (g *Gateway) Name() string { return "gateway" }

func (g *Gateway) Complete(ctx context.Context, req Request) (string, error) {
	if g.url == "" || g.apiKey == "" {
		return "", fail(ReasonNotConfigured, errors.New("llm gateway not configured"))
	}

	reqBody := map[string]any{
		"model": g.model,
		"messages": []map[string]string{
			{"role": "user", "content": req.Prompt},
		},
		"temperature": 0.0,
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fail(ReasonParse, fmt.Errorf("encode request: %w", err))
	}

	body, err := post(ctx, g.client, g.url, data, map[string]string{
		"Authorization": "Bearer " + g.apiKey,
	})
	if err != nil {
		return "", err
	}

	// Try choices[0].message.content (OpenAI-like)
	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Choices != nil {
		if len(parsed.Choices) == 0 {
			return "", fail(ReasonEmpty, errors.New("gateway returned no choices"))
		}
		return parsed.Choices[0].Message.Content, nil
	}

	// Fallback: the gateway answered with the JSON document itself
	if raw := extractJSON(string(body)); raw != "" {
		return raw, nil
	}
	return "", fail(ReasonEmpty, errors.New("no content in gateway response"))
}
