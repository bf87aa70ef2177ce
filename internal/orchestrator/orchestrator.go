// Package orchestrator coordinates the analysis agents: it fans a project
// query out to every provider, synthesizes a trust verdict over the
// results, and assembles the final report. Each stage is fault isolated;
// Analyze never fails past its boundary.
package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"decryptify/internal/agents"
	"decryptify/internal/trust"
)

// ExchangeSkippedMarker fills the exchange slot when the query does not
// look like an exchange. A deliberate short-circuit, not a failure.
const ExchangeSkippedMarker = "Not an exchange - skipping exchange analysis"

// DefaultProviderTimeout bounds each provider call.
const DefaultProviderTimeout = 25 * time.Second

// Completer is the optional text-completion model used for scoring and
// related-project backfill.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// relatedLister matches agents.RelatedFinder.
type relatedLister interface {
	Find(ctx context.Context, name string) []string
}

// Options wires the orchestrator's collaborators. Every field except
// Logger is optional: absent sources mean the agents run on their seed
// tables and an absent completer means the deterministic fallback verdict.
type Options struct {
	Completer Completer
	Quotes    agents.QuoteSource
	Profiles  agents.ProfileSource
	Stats     agents.StatsSource
	Timeout   time.Duration
	Logger    *logrus.Logger
}

type Orchestrator struct {
	market   agents.Agent
	scam     agents.Agent
	audit    agents.Agent
	exchange agents.Agent
	founder  agents.Agent
	project  agents.Agent

	related relatedLister
	synth   *trust.Synthesizer

	timeout time.Duration
	log     *logrus.Logger
}

func New(opts Options) *Orchestrator {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Orchestrator{
		market:   agents.NewMarketAgent(opts.Quotes),
		scam:     agents.NewScamAgent(),
		audit:    agents.NewAuditAgent(),
		exchange: agents.NewExchangeAgent(),
		founder:  agents.NewFounderAgent(),
		project:  agents.NewProjectAgent(opts.Stats),
		related:  agents.NewRelatedFinder(opts.Profiles, opts.Completer),
		synth:    trust.NewSynthesizer(opts.Completer),
		timeout:  timeout,
		log:      log,
	}
}

// sectionSet is the per-call working state. Built once, never mutated
// after the fan-in join.
type sectionSet struct {
	market   string
	scam     string
	audit    string
	exchange string
	founder  string
	project  string
	related  []string
}

// Analyze runs the full pipeline for one query and returns the assembled
// report. It never returns an error and never panics: any failure that
// escapes the inner boundaries is converted into an error report string.
func (o *Orchestrator) Analyze(ctx context.Context, query string) (report string) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Errorf("analysis failed for %q: %v", query, r)
			report = fmt.Sprintf("Error performing analysis: %v", r)
		}
	}()

	query = strings.TrimSpace(query)
	start := time.Now()

	var sections sectionSet

	// The providers are mutually independent, so they run concurrently,
	// each under its own fault boundary and timeout. The group context is
	// never canceled early because no call returns an error.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sections.market = o.callAgent(gctx, o.market, "Market data", query)
		return nil
	})
	g.Go(func() error {
		sections.scam = o.callAgent(gctx, o.scam, "Scam analysis", query)
		return nil
	})
	g.Go(func() error {
		sections.audit = o.callAgent(gctx, o.audit, "Security audit", query)
		return nil
	})
	g.Go(func() error {
		if isExchangeQuery(query) {
			sections.exchange = o.callAgent(gctx, o.exchange, "Exchange analysis", query)
		} else {
			sections.exchange = ExchangeSkippedMarker
		}
		return nil
	})
	g.Go(func() error {
		sections.founder = o.callAgent(gctx, o.founder, "Founder analysis", query)
		return nil
	})
	g.Go(func() error {
		sections.project = o.callAgent(gctx, o.project, "Project analysis", query)
		return nil
	})
	g.Go(func() error {
		sections.related = o.callRelated(gctx, query)
		return nil
	})

	_ = g.Wait()

	verdict := o.synth.Score(ctx, query, trust.Sections{
		Market:  sections.market,
		Scam:    sections.scam,
		Audit:   sections.audit,
		Founder: sections.founder,
		Project: sections.project,
	})

	o.log.WithFields(logrus.Fields{
		"query":    query,
		"level":    verdict.Level,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("analysis complete")

	return assembleReport(query, sections, verdict)
}

// callAgent is the per-provider fault boundary: a panic or an empty reply
// becomes the "<Domain> unavailable: <reason>" placeholder so the report
// stays structurally complete.
func (o *Orchestrator) callAgent(ctx context.Context, agent agents.Agent, domain, query string) (section string) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warnf("%s provider failed for %q: %v", domain, query, r)
			section = fmt.Sprintf("%s unavailable: %v", domain, r)
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	section = agent.Lookup(callCtx, query)
	if strings.TrimSpace(section) == "" {
		section = fmt.Sprintf("%s unavailable: provider returned no data", domain)
	}
	return section
}

func (o *Orchestrator) callRelated(ctx context.Context, query string) (related []string) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Warnf("related-project lookup failed for %q: %v", query, r)
			related = nil
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	return o.related.Find(callCtx, query)
}

// isExchangeQuery checks the explicit exchange short-circuit keywords.
func isExchangeQuery(query string) bool {
	lower := strings.ToLower(query)
	return strings.Contains(lower, "exchange") ||
		strings.Contains(lower, "binance") ||
		strings.Contains(lower, "coinbase")
}
