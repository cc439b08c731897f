package quota

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playsignal/quotaledger/pkg/plan"
)

// ErrOrganizationNotFound is returned by resolvers when the organization
// record does not exist. The evaluator treats it like any other resolver
// failure and falls back to the default plan.
var ErrOrganizationNotFound = errors.New("quota.errors.organization_not_found")

const queryOrgPlan = `SELECT plan FROM organizations WHERE id = $1`

// PostgresPlanResolver reads the organization's active plan from the
// organizations table. The plan is a single string column; validation
// against known plans happens in the catalog, not here.
func PostgresPlanResolver(pool *pgxpool.Pool) PlanResolver {
	if pool == nil {
		panic("quota: postgres pool cannot be nil")
	}
	return func(ctx context.Context, orgID uuid.UUID) (plan.ID, error) {
		var id string
		err := pool.QueryRow(ctx, queryOrgPlan, orgID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrOrganizationNotFound
		}
		if err != nil {
			return "", err
		}
		return plan.ID(id), nil
	}
}
