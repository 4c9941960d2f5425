// Package ownership implements the recursive ownership-graph traversal
// engine: depth-limited, cycle-safe descent over the "controls" edges of a
// company, producing an ordered sequence of visit events.
//
// The engine produces structured events and performs no rendering; the HTTP
// layer (or any other consumer) decides presentation.
package ownership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"ownergraph/internal/company/models"
	"ownergraph/internal/ownership/metrics"
	"ownergraph/internal/platform/config"
	"ownergraph/internal/registry"
	dErrors "ownergraph/pkg/domain-errors"
)

// ProfileResolver resolves one company's profile snapshot.
type ProfileResolver interface {
	Profile(ctx context.Context, number string) (*models.CompanyProfile, error)
}

// ControllerFetcher lists a company's persons with significant control.
type ControllerFetcher interface {
	Controllers(ctx context.Context, number string) ([]models.ControllingParty, error)
}

// Engine walks the ownership graph. Safe for concurrent use; each run owns
// its own state.
type Engine struct {
	profiles    ProfileResolver
	controllers ControllerFetcher
	cfg         config.Traversal
	logger      *slog.Logger
	metrics     *metrics.Metrics
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics attaches traversal metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// New constructs an Engine. Zero or negative limits fall back to defaults:
// depth 4, budget 200, sequential branches.
func New(profiles ProfileResolver, controllers ControllerFetcher, cfg config.Traversal, opts ...Option) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 4
	}
	if cfg.NodeBudget <= 0 {
		cfg.NodeBudget = 200
	}
	if cfg.BranchConcurrency < 1 {
		cfg.BranchConcurrency = 1
	}
	e := &Engine{profiles: profiles, controllers: controllers, cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run holds per-traversal shared state. The node counter is shared across
// parallel branches; everything else is branch-local.
type run struct {
	maxDepth int
	nodes    atomic.Int64
	budget   int64
}

// visitedSet is scoped to one traversal branch. It is copied, never shared,
// on each recursive fan-out so that a shared grandparent controller does not
// falsely collide across sibling branches while true ancestor cycles within
// one lineage are still caught.
type visitedSet map[string]struct{}

func (v visitedSet) clone() visitedSet {
	out := make(visitedSet, len(v)+1)
	for k := range v {
		out[k] = struct{}{}
	}
	return out
}

// Traverse runs one full traversal from the seed identifier. Per-node
// failures are contained as annotated events; the error return is reserved
// for run-fatal conditions: an invalid seed, upstream credential rejection,
// upstream rate limiting, and context cancellation.
func (e *Engine) Traverse(ctx context.Context, seed string) (*Report, error) {
	return e.TraverseToDepth(ctx, seed, e.cfg.MaxDepth)
}

// TraverseToDepth runs one traversal with a per-run depth override. The
// override is clamped to [1, configured max]; a non-positive value means
// "use the configured max".
func (e *Engine) TraverseToDepth(ctx context.Context, seed string, maxDepth int) (*Report, error) {
	seed = models.NormalizeCompanyNumber(seed)
	if !models.ValidCompanyNumber(seed) {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid company number: expected 8 characters or a 2-letter prefix followed by digits")
	}

	if maxDepth <= 0 || maxDepth > e.cfg.MaxDepth {
		maxDepth = e.cfg.MaxDepth
	}
	r := &run{
		maxDepth: maxDepth,
		budget:   int64(e.cfg.NodeBudget),
	}
	started := time.Now()

	events, err := e.walk(ctx, r, seed, 0, visitedSet{})
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:        uuid.NewString(),
		Seed:         seed,
		StartedAt:    started,
		CompletedAt:  time.Now(),
		NodesVisited: int(r.nodes.Load()),
		Events:       events,
	}

	e.metrics.IncrementRuns()
	e.metrics.ObserveRun(report.NodesVisited, report.CompletedAt.Sub(report.StartedAt))
	if e.logger != nil {
		e.logger.InfoContext(ctx, "ownership traversal completed",
			"run_id", report.RunID,
			"seed", seed,
			"nodes_visited", report.NodesVisited,
			"events", len(report.Events),
			"duration_ms", report.CompletedAt.Sub(report.StartedAt).Milliseconds(),
		)
	}
	return report, nil
}

// walk visits one company and descends into its recursable controllers,
// returning this branch's events in depth-first order.
func (e *Engine) walk(ctx context.Context, r *run, number string, depth int, visited visitedSet) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	number = models.NormalizeCompanyNumber(number)

	if depth > r.maxDepth {
		return e.terminal(Event{
			Kind:          EventMaxDepth,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        fmt.Sprintf("reached max analysis depth (%d levels)", r.maxDepth),
		}), nil
	}

	if _, seen := visited[number]; seen {
		return e.terminal(Event{
			Kind:          EventCycle,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        "already processed in this branch (circular reference or repeated entity)",
		}), nil
	}
	visited[number] = struct{}{}

	if r.nodes.Add(1) > r.budget {
		// Rejected nodes don't count as visited.
		r.nodes.Add(-1)
		return e.terminal(Event{
			Kind:          EventBudgetExhausted,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        fmt.Sprintf("node budget (%d) exhausted for this run", r.budget),
		}), nil
	}

	profile, err := e.profiles.Profile(ctx, number)
	if err != nil {
		if fatal(ctx, err) {
			return nil, runErr(ctx, err)
		}
		return e.terminal(Event{
			Kind:          EventProfileUnavailable,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        "could not retrieve profile data",
		}), nil
	}

	events := []Event{{
		Kind:          EventNode,
		Depth:         depth,
		CompanyNumber: number,
		Profile:       profile,
	}}

	parties, err := e.controllers.Controllers(ctx, number)
	if err != nil {
		if fatal(ctx, err) {
			return nil, runErr(ctx, err)
		}
		return append(events, e.terminal(Event{
			Kind:          EventControllersUnavailable,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        "could not retrieve controller information",
		})...), nil
	}

	if len(parties) == 0 {
		return append(events, e.terminal(Event{
			Kind:          EventNoControllers,
			Depth:         depth,
			CompanyNumber: number,
			Detail:        "no controllers listed, or the company is exempt from disclosure",
		})...), nil
	}

	branches, err := e.fanOut(ctx, r, number, depth, visited, parties)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		events = append(events, branch...)
	}

	return append(events, e.terminal(Event{
		Kind:          EventExhausted,
		Depth:         depth,
		CompanyNumber: number,
	})...), nil
}

// fanOut emits one controller event per party and descends into recursable
// corporate controllers, each with an independent copy of the visited set.
// With BranchConcurrency > 1, sibling subtrees run in parallel; each branch
// writes only its own buffer and buffers are spliced back in upstream
// controller order, so reports stay deterministic.
func (e *Engine) fanOut(ctx context.Context, r *run, number string, depth int, visited visitedSet, parties []models.ControllingParty) ([][]Event, error) {
	buffers := make([][]Event, len(parties))

	sequential := e.cfg.BranchConcurrency <= 1
	g, gctx := errgroup.WithContext(ctx)
	if !sequential {
		g.SetLimit(e.cfg.BranchConcurrency)
	}

	for i := range parties {
		party := parties[i]
		head := Event{
			Kind:          EventController,
			Depth:         depth,
			CompanyNumber: number,
			Party:         &party,
		}

		recurse := party.Kind.IsCorporateBody() && models.Recursable(party.Identification, e.cfg.AssumeDomestic)
		if !recurse {
			buffers[i] = []Event{head}
			continue
		}

		target := party.Identification.RegistrationNumber
		if sequential {
			sub, err := e.walk(ctx, r, target, depth+1, visited.clone())
			if err != nil {
				return nil, err
			}
			buffers[i] = append([]Event{head}, sub...)
			continue
		}

		g.Go(func() error {
			sub, err := e.walk(gctx, r, target, depth+1, visited.clone())
			if err != nil {
				return err
			}
			buffers[i] = append([]Event{head}, sub...)
			return nil
		})
	}

	if !sequential {
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}
	return buffers, nil
}

// terminal emits a branch-ending event. Only terminal kinds feed the outcome
// metric; node and controller events are counted elsewhere.
func (e *Engine) terminal(ev Event) []Event {
	if ev.Kind.IsTerminal() {
		e.metrics.IncrementTerminal(string(ev.Kind))
	}
	return []Event{ev}
}

// fatal reports whether an error must abort the whole run rather than
// terminate one branch. Credentials and rate limits are global, not
// per-node; a per-request timeout is not fatal, but cancellation of the
// run's own context is.
func fatal(ctx context.Context, err error) bool {
	return ctx.Err() != nil ||
		errors.Is(err, registry.ErrUnauthorized) ||
		errors.Is(err, registry.ErrRateLimited)
}

// runErr prefers the run context's own error so callers see cancellation
// rather than whatever fetch failure it caused.
func runErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}
