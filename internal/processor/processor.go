// Package processor orchestrates one feedback analysis: the model path when
// available, the heuristic path otherwise, then aggregation.
package processor

import (
	"context"
	"time"

	"github.com/google/uuid"

	"feedback-insights-go/internal/aggregator"
	"feedback-insights-go/internal/config"
	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/llm"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/metrics"
	"feedback-insights-go/internal/pipeline"
	"feedback-insights-go/internal/types"
)

type Processor struct {
	adapter    *llm.Adapter
	pipeline   *pipeline.Pipeline
	aggregator *aggregator.Aggregator
	metrics    metrics.Recorder
	log        *logger.Logger
	now        func() time.Time
}

// New wires an orchestrator. adapter may be nil, which disables the model
// path; rec may be nil.
func New(adapter *llm.Adapter, pipe *pipeline.Pipeline, agg *aggregator.Aggregator, rec metrics.Recorder, log *logger.Logger) *Processor {
	if rec == nil {
		rec = metrics.NoOp{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Processor{
		adapter:    adapter,
		pipeline:   pipe,
		aggregator: agg,
		metrics:    rec,
		log:        log.Component("processor"),
		now:        time.Now,
	}
}

type outcome struct {
	res *llm.BatchResult
	err error
}

// Analyze classifies and aggregates records. It always returns a complete
// result; model failures are logged and recovered by the heuristic path.
// Records are classified by a single path per call.
func (p *Processor) Analyze(ctx context.Context, records []types.FeedbackRecord) types.AnalysisResult {
	start := p.now()
	log := p.log.WithField("records", len(records))

	var (
		classified []types.ClassifiedFeedback
		insights   *types.ModelInsights
	)
	path := types.PathHeuristic

	if p.adapter.Enabled() && len(records) > 0 {
		res, err := p.primary(ctx, records)
		if err != nil {
			reason := llm.ReasonOf(err)
			p.metrics.PrimaryFailed(string(reason))
			log.WithError(err).WithField("reason", reason).Warn("model classification failed, using heuristic path")
		} else {
			classified, insights, path = res.Records, &res.Insights, types.PathPrimary
			if res.Matched < len(records) {
				log.WithField("matched", res.Matched).Warn("model response missed some records")
			}
		}
	}

	if path == types.PathHeuristic {
		classified = p.heuristic(ctx, records)
	}

	result := p.aggregator.Aggregate(classified, insights)
	result.AnalysisID = uuid.NewString()
	result.AnalysisPath = path
	result.GeneratedAt = p.now().UTC()

	dist := result.SentimentDistribution
	p.metrics.RecordsClassified(types.SentimentPositive, dist.Positive)
	p.metrics.RecordsClassified(types.SentimentNeutral, dist.Neutral)
	p.metrics.RecordsClassified(types.SentimentNegative, dist.Negative)
	p.metrics.AnalysisCompleted(path, p.now().Sub(start))

	log.WithField("path", path).
		WithField("analysis_id", result.AnalysisID).
		WithField("negative", dist.Negative).
		Info("analysis complete")
	return result
}

// primary races the model call against the adapter timeout. The losing
// call is abandoned with its context cancelled.
func (p *Processor) primary(ctx context.Context, records []types.FeedbackRecord) (*llm.BatchResult, error) {
	if timeout := p.adapter.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan outcome, 1)
	go func() {
		res, err := p.adapter.ClassifyBatch(ctx, records)
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, &llm.Failure{Reason: llm.ReasonTimeout, Err: ctx.Err()}
	case o := <-done:
		return o.res, o.err
	}
}

func (p *Processor) heuristic(ctx context.Context, records []types.FeedbackRecord) []types.ClassifiedFeedback {
	out, err := p.pipeline.Run(ctx, records)
	if err == nil {
		return out
	}

	// the caller went away mid-run; finish inline so the result stays whole
	p.log.WithError(err).Debug("parallel classification interrupted")
	out = make([]types.ClassifiedFeedback, len(records))
	for i, rec := range records {
		out[i] = p.pipeline.ClassifyOne(rec)
	}
	return out
}

// NewFromConfig wires the default lexicon, the configured model adapter and
// the heuristic pipeline.
func NewFromConfig(cfg *config.Config, rec metrics.Recorder, log *logger.Logger) *Processor {
	if log == nil {
		log = logger.Discard()
	}
	lex := lexicon.Default()
	agg := aggregator.New(lex, aggregator.Options{FillerPolicy: cfg.Analysis.FillerPolicy})
	return New(
		llm.New(cfg.LLM, log),
		pipeline.New(lex, cfg.Analysis.Workers, log),
		agg,
		rec,
		log,
	)
}
