// Package pipeline chains the classifier, optimizer and emitter over one
// shared rule set.
package pipeline

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"stackplan/pkg/detector"
	"stackplan/pkg/emitter"
	"stackplan/pkg/optimizer"
	"stackplan/pkg/rules"
)

const DefaultConcurrency = 4

// Request is one project snapshot plus what the caller wants from it
type Request struct {
	Files       []detector.FileArtifact `json:"files"`
	Description string                  `json:"description,omitempty"`
	Preference  optimizer.Preference    `json:"preference"`
	Naming      emitter.Naming          `json:"-"`
}

// Result is everything produced for a request
type Result struct {
	Digest       string                 `json:"digest"`
	Analysis     detector.Analysis      `json:"analysis"`
	Optimization optimizer.Optimization `json:"optimization"`
	Artifacts    *emitter.Artifacts     `json:"artifacts,omitempty"`
}

type Pipeline struct {
	classifier  *detector.Classifier
	optimizer   *optimizer.Optimizer
	emitter     *emitter.Emitter
	log         logrus.FieldLogger
	concurrency int
}

type Option func(*Pipeline)

// WithLogger routes pipeline logging to l instead of the standard logger
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.log = l
	}
}

// WithConcurrency bounds how many requests RunAll processes at once
func WithConcurrency(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// New builds a pipeline. All three stages share tables, which defaults to
// the built-in rule set.
func New(tables *rules.Tables, opts ...Option) *Pipeline {
	if tables == nil {
		tables = rules.Default()
	}
	p := &Pipeline{
		classifier:  detector.NewClassifier(tables),
		optimizer:   optimizer.NewOptimizer(tables),
		emitter:     emitter.NewEmitter(tables),
		log:         logrus.StandardLogger(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan classifies and sizes a project without emitting artifacts
func (p *Pipeline) Plan(req Request) *Result {
	digest := Digest(req.Files, req.Description)
	log := p.log.WithField("digest", digest)

	analysis := p.classifier.Classify(req.Files, req.Description)
	log.WithFields(logrus.Fields{
		"files":      len(req.Files),
		"type":       analysis.DetectedType,
		"confidence": analysis.Confidence,
		"databases":  len(analysis.Databases),
	}).Debug("classified project")

	opt := p.optimizer.Optimize(analysis, req.Preference)
	log.WithFields(logrus.Fields{
		"bundle":          opt.RecommendedBundle.Name,
		"monthly_total":   opt.CostBreakdown.Total,
		"recommendations": len(opt.Recommendations),
	}).Debug("optimized infrastructure")

	return &Result{Digest: digest, Analysis: analysis, Optimization: opt}
}

// Run plans a project and emits its artifacts
func (p *Pipeline) Run(req Request) (*Result, error) {
	result := p.Plan(req)

	artifacts, err := p.emitter.Emit(result.Analysis, result.Optimization, req.Naming)
	if err != nil {
		return nil, fmt.Errorf("failed to emit artifacts: %w", err)
	}
	result.Artifacts = &artifacts

	p.log.WithFields(logrus.Fields{
		"digest":     result.Digest,
		"app":        req.Naming.AppName,
		"descriptor": artifacts.DescriptorPath,
		"pipeline":   artifacts.PipelinePath,
	}).Debug("emitted artifacts")

	return result, nil
}

// RunAll runs requests concurrently. Results keep request order. The first
// failure cancels requests that have not started yet.
func (p *Pipeline) RunAll(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := p.Run(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Digest fingerprints a snapshot. File order does not matter.
func Digest(files []detector.FileArtifact, description string) string {
	sorted := append([]detector.FileArtifact(nil), files...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Path != sorted[j].Path {
			return sorted[i].Path < sorted[j].Path
		}
		return sorted[i].Content < sorted[j].Content
	})

	h := xxh3.New()
	for _, f := range sorted {
		writeField(h, f.Path)
		writeField(h, f.Content)
	}
	writeField(h, description)
	return fmt.Sprintf("%016x", h.Sum64())
}

// writeField length-prefixes s so adjacent fields cannot run together
func writeField(h *xxh3.Hasher, s string) {
	fmt.Fprintf(h, "%d:", len(s))
	h.WriteString(s)
}
