package leave

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// BalanceSeeder gives the onboarding flow a way to create the new
// employee's leave balances inside its own transaction.
type BalanceSeeder struct {
	repo Repository
}

func NewBalanceSeeder(repo Repository) *BalanceSeeder {
	return &BalanceSeeder{repo: repo}
}

func (s *BalanceSeeder) SeedBalancesForEmployee(ctx context.Context, tx *sql.Tx, orgID, employeeID string) error {
	orgUUID, err := uuid.Parse(orgID)
	if err != nil {
		return err
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return err
	}

	qtx := s.repo.WithTx(tx)

	plans, err := qtx.FindPlansByOrganization(ctx, orgID)
	if err != nil {
		return err
	}

	balances := make([]EmployeeLeave, 0, len(plans))
	for _, plan := range plans {
		balances = append(balances, EmployeeLeave{
			ID:                uuid.New(),
			OrganizationID:    orgUUID,
			EmployeeID:        employeeUUID,
			LeaveID:           plan.ID,
			LeaveName:         plan.Name,
			RemainingDuration: plan.Duration,
		})
	}

	return qtx.CreateBalances(ctx, balances)
}
