package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Gemini calls the generateContent REST endpoint and asks for a JSON
// response body.
type Gemini struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

func NewGemini(baseURL, apiKey, model string, client *http.Client) *Gemini {
	if client == nil {
		client = http.DefaultClient
	}
	return &Gemini{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

func (g *Gemini) Name() string { return "gemini" }

// endpoint returns the generateContent url for the configured model. The
// key travels in a header so transport errors never carry it.
func (g *Gemini) endpoint() string {
	return fmt.Sprintf("%s/%s:generateContent", g.baseURL, url.PathEscape(g.model))
}

func (g *Gemini) Complete(ctx context.Context, req Request) (string, error) {
	if g.baseURL == "" || g.apiKey == "" {
		return "", fail(ReasonNotConfigured, errors.New("gemini api key or base url missing"))
	}

	reqBody := map[string]any{
		"contents": []map[string]any{
			{
				"parts": []map[string]string{
					{"text": req.Prompt},
				},
			},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
			"temperature":      0.0,
		},
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fail(ReasonParse, fmt.Errorf("encode request: %w", err))
	}

	body, err := post(ctx, g.client, g.endpoint(), data, map[string]string{"x-goog-api-key": g.apiKey})
	if err != nil {
		return "", err
	}

	// Parse Gemini response structure
	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fail(ReasonParse, fmt.Errorf("decode gemini envelope: %w", err))
	}
	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fail(ReasonEmpty, errors.New("empty response from gemini"))
}

// post sends a JSON body and returns the response body of a 2xx reply.
func post(ctx context.Context, client *http.Client, endpoint string, data []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fail(ReasonTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			return nil, fail(ReasonTimeout, err)
		}
		return nil, fail(ReasonTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fail(ReasonTransport, fmt.Errorf("read response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Failure{
			Reason: ReasonStatus,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("unexpected response: %s", snippet(body)),
		}
	}
	return body, nil
}

const maxResponseBytes = 8 << 20

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
