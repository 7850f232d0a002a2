// Package pipeline runs the rule-based classifiers over a batch.
package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"feedback-insights-go/internal/extractor"
	"feedback-insights-go/internal/issues"
	"feedback-insights-go/internal/lexicon"
	"feedback-insights-go/internal/logger"
	"feedback-insights-go/internal/scorer"
	"feedback-insights-go/internal/types"
)

// Pipeline classifies records with the scorer, extractor and issue
// classifier. It is safe for concurrent use.
type Pipeline struct {
	scorer    *scorer.Scorer
	extractor *extractor.Extractor
	issues    *issues.Classifier
	workers   int
	log       *logger.Logger
}

func New(lex *lexicon.Lexicon, workers int, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.Discard()
	}
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		scorer:    scorer.New(lex, log),
		extractor: extractor.New(lex),
		issues:    issues.New(lex),
		workers:   workers,
		log:       log.Component("pipeline"),
	}
}

// ClassifyOne runs every rule-based classifier on a single record.
func (p *Pipeline) ClassifyOne(rec types.FeedbackRecord) types.ClassifiedFeedback {
	res := p.scorer.Score(rec)
	topics, phrases := p.extractor.Extract(rec.Text)
	issueType, _ := p.issues.Classify(rec, res.Sentiment)

	return types.ClassifiedFeedback{
		FeedbackRecord: rec,
		Sentiment:      res.Sentiment,
		SentimentScore: res.Score,
		Topics:         topics,
		KeyPhrases:     phrases,
		Priority:       types.PriorityFor(res.Sentiment),
		IssueType:      issueType,
		Source:         types.SourceHeuristic,
	}
}

// Run classifies every record across the worker pool. Output order
// matches input order. It only fails when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, records []types.FeedbackRecord) ([]types.ClassifiedFeedback, error) {
	out := make([]types.ClassifiedFeedback, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i := range records {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = p.ClassifyOne(records[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("heuristic classification: %w", err)
	}

	p.log.WithField("records", len(records)).WithField("workers", p.workers).Debug("heuristic batch classified")
	return out, nil
}
