package quota

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/playsignal/quotaledger/pkg/plan"
	"github.com/playsignal/quotaledger/pkg/usage"
)

// Result is the outcome of a single limit check. It is produced fresh on
// every call and never cached.
type Result struct {
	Allowed           bool         `json:"allowed"`
	SoftCapWarning    bool         `json:"soft_cap_warning,omitempty"`
	CurrentUsage      int64        `json:"current_usage"`
	Limit             int64        `json:"limit"` // plan.Unlimited for no cap
	Message           string       `json:"message,omitempty"`
	ShouldShowUpgrade bool         `json:"should_show_upgrade,omitempty"`
	Plan              plan.ID      `json:"plan"`
	Feature           plan.Feature `json:"feature"`
}

// PlanResolver looks up the active plan for an organization.
type PlanResolver func(ctx context.Context, orgID uuid.UUID) (plan.ID, error)

// StaticResolver returns a resolver that answers the same plan for every
// organization. Useful in tests and single-tenant deployments.
func StaticResolver(id plan.ID) PlanResolver {
	return func(ctx context.Context, orgID uuid.UUID) (plan.ID, error) {
		return id, nil
	}
}

// Evaluator decides whether a rate-limited action may proceed for an
// organization. It is stateless between calls; all state lives in the
// usage store and the organization record.
type Evaluator struct {
	catalog *plan.Catalog
	usage   usage.Store
	resolve PlanResolver
	log     *slog.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger sets the logger used for fail-open diagnostics.
func WithLogger(log *slog.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if log != nil {
			e.log = log
		}
	}
}

// NewEvaluator wires a catalog, usage store and plan resolver together.
// Panics on nil required dependencies to fail fast at wiring time.
func NewEvaluator(catalog *plan.Catalog, store usage.Store, resolve PlanResolver, opts ...EvaluatorOption) *Evaluator {
	if catalog == nil {
		panic("quota: catalog cannot be nil")
	}
	if store == nil {
		panic("quota: usage store cannot be nil")
	}
	if resolve == nil {
		panic("quota: plan resolver cannot be nil")
	}

	e := &Evaluator{
		catalog: catalog,
		usage:   store,
		resolve: resolve,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check evaluates whether the organization may use the feature right now.
//
// Check never returns an error. Infrastructure failures fail OPEN: the
// action is allowed with zero assumed usage and the failure is logged,
// because blocking paying users on a flaky datastore is worse than a few
// uncounted calls. The only rejection Check ever produces is a
// deliberately computed hard-cap breach.
func (e *Evaluator) Check(ctx context.Context, orgID uuid.UUID, feature plan.Feature) Result {
	planID, err := e.resolve(ctx, orgID)
	if err != nil {
		// Unknown plan falls back to the most restrictive tier rather
		// than failing the check or granting unlimited access.
		e.log.WarnContext(ctx, "plan lookup failed, using default plan",
			slog.String("org_id", orgID.String()),
			slog.String("feature", string(feature)),
			slog.Any("error", err),
		)
		planID = plan.DefaultPlan
	}

	p := e.catalog.Resolve(planID)
	limit := e.catalog.Limit(p.ID, feature)

	// Unlimited features skip usage accounting entirely; there is nothing
	// to gate, so no counter read happens.
	if plan.IsUnlimited(limit) {
		return Result{
			Allowed:      true,
			CurrentUsage: 0,
			Limit:        plan.Unlimited,
			Plan:         p.ID,
			Feature:      feature,
		}
	}

	current, err := e.usage.Count(ctx, orgID, feature)
	if err != nil {
		// Fail open: infra trouble must not lock users out. This is a
		// separate path from the hard-cap rejection below and must stay
		// that way.
		e.log.ErrorContext(ctx, "usage read failed, failing open",
			slog.String("org_id", orgID.String()),
			slog.String("feature", string(feature)),
			slog.Any("error", err),
		)
		return Result{
			Allowed:      true,
			CurrentUsage: 0,
			Limit:        limit,
			Plan:         p.ID,
			Feature:      feature,
		}
	}

	if e.catalog.HasSoftCap(p.ID, feature) {
		res := Result{
			Allowed:      true,
			CurrentUsage: current,
			Limit:        limit,
			Plan:         p.ID,
			Feature:      feature,
		}
		if plan.ShouldWarnSoftCap(current, limit) {
			res.SoftCapWarning = true
			res.Message = fmt.Sprintf(
				"You have used %d of %d %s included in the %s plan this month. Upgrade for a higher limit.",
				current, limit, feature, p.Name,
			)
		}
		return res
	}

	// Hard cap: the one policy decision that blocks.
	if current >= limit {
		return Result{
			Allowed:           false,
			CurrentUsage:      current,
			Limit:             limit,
			Plan:              p.ID,
			Feature:           feature,
			ShouldShowUpgrade: true,
			Message: fmt.Sprintf(
				"The %s plan allows %d %s per month and you have used %d. Upgrade to continue.",
				p.Name, limit, feature, current,
			),
		}
	}

	return Result{
		Allowed:      true,
		CurrentUsage: current,
		Limit:        limit,
		Plan:         p.ID,
		Feature:      feature,
	}
}
