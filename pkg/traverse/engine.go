package traverse

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/fetch"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/models"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/process"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/selector"
	"github.com/hikmetazimzade/wiki-philosophy-finder/pkg/utils"
)

// Options carries the traversal parameters the engine needs beyond its
// collaborators
type Options struct {
	SiteOrigin  string // Prepended to a chosen link to form the next URL
	TargetPath  string // Exact path that ends the traversal
	LinkPrefix  string // Stripped from the chosen link for progress logging
	MaxAttempts int    // Iteration budget for the whole run
}

// Engine drives the fetch → extract → select → advance cycle until the
// target page is reached, the run dead-ends, or the attempt budget runs out
type Engine struct {
	fetcher   fetch.PageFetcher
	extractor process.LinkExtractor
	selector  *selector.Selector
	pacer     *fetch.Pacer
	opts      Options
	log       *logrus.Entry // Logger contextualized with run_id
}

// NewEngine creates an Engine
func NewEngine(
	fetcher fetch.PageFetcher,
	extractor process.LinkExtractor,
	sel *selector.Selector,
	pacer *fetch.Pacer,
	opts Options,
	log *logrus.Entry,
) *Engine {
	return &Engine{
		fetcher:   fetcher,
		extractor: extractor,
		selector:  sel,
		pacer:     pacer,
		opts:      opts,
		log:       log,
	}
}

// Run walks the link graph starting at startURL.
//
// The hop count starts at 1 for the initial page and increments once per
// followed link, so Result.Hops is the number of pages fetched and evaluated
// when the target turns up. Every iteration, successful or not, consumes one
// attempt from the budget. A fetch failure does not advance the current URL:
// the same page is requested again on the next attempt, as the original tool
// did, until it becomes fetchable or the budget runs out.
func (e *Engine) Run(ctx context.Context, startURL string) models.Result {
	visited := models.NewVisitedSet()
	currentURL := startURL
	hopCount := 1

	e.log.WithFields(logrus.Fields{
		"start_url":    startURL,
		"target":       e.opts.TargetPath,
		"max_attempts": e.opts.MaxAttempts,
	}).Info("Starting traversal")

	for attempt := 0; attempt < e.opts.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			e.log.Warnf("Traversal aborted: %v", ctx.Err())
			return models.Result{Outcome: models.OutcomeAborted, LastURL: currentURL}
		default:
		}

		content, err := e.fetcher.Fetch(ctx, currentURL)
		if err != nil {
			// Failed fetch burns an attempt without advancing; transport
			// errors were already logged by the fetcher, bad statuses stay
			// silent
			continue
		}

		links, err := e.extractor.Extract(content)
		if err != nil {
			// Structurally broken page: nothing to select from, so the run
			// ends the same way an empty candidate list does
			e.log.WithFields(logrus.Fields{
				"url":            currentURL,
				"error_category": utils.CategorizeError(err),
			}).Errorf("Link extraction failed: %v", err)
			return models.Result{Outcome: models.OutcomeDeadEnd, LastURL: currentURL}
		}

		if selector.ContainsTarget(links, e.opts.TargetPath) {
			e.log.WithField("hops", hopCount).Debug("Target link present on page")
			return models.Result{Outcome: models.OutcomeFound, Hops: hopCount, LastURL: currentURL}
		}

		chosen, ok := e.selector.Next(links, visited)
		if !ok {
			return models.Result{Outcome: models.OutcomeDeadEnd, LastURL: currentURL}
		}

		visited.Add(chosen)
		currentURL = e.opts.SiteOrigin + chosen
		e.log.Info(strings.TrimPrefix(chosen, e.opts.LinkPrefix))
		hopCount++

		e.pacer.Wait(ctx)
	}

	e.log.WithField("max_attempts", e.opts.MaxAttempts).Warn("Attempt budget exhausted without reaching the target")
	return models.Result{Outcome: models.OutcomeExhausted, LastURL: currentURL}
}
