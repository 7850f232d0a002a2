// Package llm classifies a feedback batch with a generative model in a
// single call.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/types"
)

// Reason classifies why the model path failed.
type Reason string

const (
	ReasonNotConfigured Reason = "not_configured"
	ReasonTimeout       Reason = "timeout"
	ReasonTransport     Reason = "transport"
	ReasonStatus        Reason = "status"
	ReasonParse         Reason = "parse"
	ReasonEmpty         Reason = "empty"
)

// Failure is returned for every unsuccessful batch classification.
type Failure struct {
	Reason Reason
	Status int
	Err    error
}

func (f *Failure) Error() string {
	if f.Status != 0 {
		return fmt.Sprintf("llm %s (http %d): %v", f.Reason, f.Status, f.Err)
	}
	return fmt.Sprintf("llm %s: %v", f.Reason, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

func fail(reason Reason, err error) *Failure {
	return &Failure{Reason: reason, Err: err}
}

// ReasonOf extracts the failure reason of err.
func ReasonOf(err error) Reason {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Reason
	}
	return ReasonTransport
}

// Request is what a provider needs to produce one completion.
type Request struct {
	Prompt  string
	Records []types.FeedbackRecord
}

// Provider produces the raw text completion for a request.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
}

// BatchResult is a successfully mapped model response.
type BatchResult struct {
	Records  []types.ClassifiedFeedback
	Insights types.ModelInsights
	// Matched counts records that had an entry in the response.
	Matched int
}

type Adapter struct {
	provider   Provider
	maxRetries int
	timeout    time.Duration
	log        *logger.Logger
}

// New selects the provider named in cfg. A provider that cannot be used
// still yields an adapter; every call then fails as not configured.
func New(cfg config.LLMConfig, log *logger.Logger) *Adapter {
	client := &http.Client{Timeout: cfg.Timeout}

	var p Provider
	if cfg.AIEnabled() {
		switch cfg.Provider {
		case config.ProviderMock:
			p = NewMock()
		case config.ProviderGateway:
			p = NewGateway(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
		default:
			p = NewGemini(cfg.BaseURL, cfg.APIKey, cfg.Model, client)
		}
	}
	return NewWithProvider(p, cfg.MaxRetries, cfg.Timeout, log)
}

func NewWithProvider(p Provider, maxRetries int, timeout time.Duration, log *logger.Logger) *Adapter {
	if log == nil {
		log = logger.Discard()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Adapter{
		provider:   p,
		maxRetries: maxRetries,
		timeout:    timeout,
		log:        log.Component("llm"),
	}
}

// Enabled reports whether a provider is wired.
func (a *Adapter) Enabled() bool {
	return a != nil && a.provider != nil
}

// Timeout is the per-batch budget.
func (a *Adapter) Timeout() time.Duration { return a.timeout }

// ClassifyBatch sends the whole batch in one request and maps the response
// back onto the records. Every error is a *Failure.
func (a *Adapter) ClassifyBatch(ctx context.Context, records []types.FeedbackRecord) (*BatchResult, error) {
	if !a.Enabled() {
		return nil, fail(ReasonNotConfigured, errors.New("no llm provider configured"))
	}
	if len(records) == 0 {
		return nil, fail(ReasonEmpty, errors.New("empty batch"))
	}

	req := Request{Prompt: BuildPrompt(records), Records: records}
	log := a.log.WithField("provider", a.provider.Name()).WithField("records", len(records))
	log.WithField("prompt_len", len(req.Prompt)).Debug("llm request")

	var out *BatchResult
	op := func() error {
		content, err := a.provider.Complete(ctx, req)
		if err != nil {
			var f *Failure
			if errors.As(err, &f) && f.Status >= 400 && f.Status < 500 {
				// client errors will not improve on retry
				return backoff.Permanent(err)
			}
			if ctx.Err() != nil {
				return backoff.Permanent(fail(ReasonTimeout, ctx.Err()))
			}
			log.WithError(err).Warn("llm request failed")
			return err
		}

		resp, err := parseResponse(content)
		if err != nil {
			log.WithError(err).Warn("unparseable llm response")
			return err
		}
		out = mapResponse(records, resp)
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(a.maxRetries)),
		ctx,
	)
	if err := backoff.Retry(op, b); err != nil {
		var f *Failure
		if errors.As(err, &f) {
			return nil, f
		}
		if ctx.Err() != nil {
			return nil, fail(ReasonTimeout, ctx.Err())
		}
		return nil, fail(ReasonTransport, err)
	}

	log.WithField("matched", out.Matched).Info("llm batch classified")
	return out, nil
}
