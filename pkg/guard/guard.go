package guard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playsignal/quotaledger/pkg/activity"
	"github.com/playsignal/quotaledger/pkg/plan"
	"github.com/playsignal/quotaledger/pkg/quota"
	"github.com/playsignal/quotaledger/pkg/usage"
)

// Action is a rate-limited operation. The organization id is an explicit
// typed parameter, and the action itself reports whether the call consumed
// quota via the second return value. An action that short-circuits (cache
// hit, empty input, nothing to do) returns consumed=false and is not
// counted against the limit.
type Action[In, Out any] func(ctx context.Context, orgID uuid.UUID, in In) (out Out, consumed bool, err error)

// Guard gates actions behind the limit evaluator and records usage for the
// ones that go through.
type Guard struct {
	evaluator *quota.Evaluator
	usage     usage.Store
	activity  *activity.Recorder
	log       *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithActivityRecorder enables upsell telemetry on soft-cap breaches.
// Without a recorder, soft caps still warn but nothing is logged for sales.
func WithActivityRecorder(r *activity.Recorder) Option {
	return func(g *Guard) {
		g.activity = r
	}
}

// WithLogger sets the logger for best-effort failure diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New wires a Guard. Panics on nil required dependencies to fail fast at
// wiring time.
func New(evaluator *quota.Evaluator, store usage.Store, opts ...Option) *Guard {
	if evaluator == nil {
		panic("guard: evaluator cannot be nil")
	}
	if store == nil {
		panic("guard: usage store cannot be nil")
	}

	g := &Guard{
		evaluator: evaluator,
		usage:     store,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Wrap returns a gated version of action for the given feature.
//
// The wrapped call:
//  1. checks the limit, and rejects with ErrLimitExceeded before the
//     action runs when a hard cap is breached;
//  2. records an upsell event on a soft-cap warning (best-effort);
//  3. runs the action;
//  4. increments usage by one if the action consumed quota and succeeded.
//
// An increment failure is logged but never surfaced: the action's side
// effect has already happened and cannot be rolled back here.
func Wrap[In, Out any](g *Guard, feature plan.Feature, action Action[In, Out]) func(ctx context.Context, orgID uuid.UUID, in In) (Out, error) {
	return func(ctx context.Context, orgID uuid.UUID, in In) (Out, error) {
		var zero Out

		res := g.evaluator.Check(ctx, orgID, feature)
		if !res.Allowed {
			return zero, fmt.Errorf("%w: %s", ErrLimitExceeded, res.Message)
		}

		if res.SoftCapWarning && g.activity != nil {
			if err := g.activity.UpsellOpportunity(ctx, orgID, feature, res.CurrentUsage, res.Limit); err != nil {
				g.log.WarnContext(ctx, "upsell event not recorded",
					slog.String("org_id", orgID.String()),
					slog.String("feature", string(feature)),
					slog.Any("error", err),
				)
			}
		}

		out, consumed, err := action(ctx, orgID, in)
		if err != nil {
			return out, err
		}

		if consumed {
			if _, err := g.usage.Increment(ctx, orgID, feature, 1); err != nil {
				g.log.ErrorContext(ctx, "usage increment failed after action",
					slog.String("org_id", orgID.String()),
					slog.String("feature", string(feature)),
					slog.Any("error", err),
				)
			}
		}

		return out, nil
	}
}
