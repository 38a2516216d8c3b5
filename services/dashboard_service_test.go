package services

import (
	"context"
	"testing"
	"time"

	"cityfix-be/models"
	"cityfix-be/payments"
	"cityfix-be/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard_EmptyScope(t *testing.T) {
	svc := NewDashboardService(repotest.NewIssues(), repotest.NewPayments(), repotest.NewUsers(), repotest.NewStaff())

	stats, err := svc.CitizenStats(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, ScopeCitizen, stats.Scope)
	assert.Zero(t, stats.TotalIssues)
	assert.Zero(t, stats.TotalPayments)
	require.Len(t, stats.StatusCounts, len(models.IssueStatuses))
	for status, n := range stats.StatusCounts {
		assert.Zero(t, n, status)
	}

	stats, err = svc.AdminStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalIssues)
	assert.Zero(t, stats.TotalPayments)
	assert.Zero(t, stats.TotalUsers)
}

func TestDashboard_Counts(t *testing.T) {
	ctx := context.Background()
	issues := repotest.NewIssues()
	for _, i := range []models.Issue{
		{Title: "1", Email: "a@x.com", Status: models.StatusPending},
		{Title: "2", Email: "a@x.com", Status: models.StatusResolved},
		{Title: "3", Email: "b@x.com", Status: models.StatusPending, AssignedStaff: &models.StaffRef{Email: "s@x.com"}},
	} {
		issue := i
		_, err := issues.Create(ctx, &issue)
		require.NoError(t, err)
	}
	ledger := repotest.NewPayments(
		models.Payment{TransactionID: "t1", Email: "a@x.com", Amount: 100, Purpose: models.PurposeIssue, Status: payments.StatusPaid, PaidAt: time.Now()},
		models.Payment{TransactionID: "t2", Email: "b@x.com", Amount: 1000, Purpose: models.PurposeProfile, Status: payments.StatusPaid, PaidAt: time.Now()},
	)
	users := repotest.NewUsers(models.User{Email: "a@x.com"}, models.User{Email: "b@x.com", IsSubscribed: true})
	svc := NewDashboardService(issues, ledger, users, repotest.NewStaff(models.Staff{Email: "s@x.com"}))

	citizen, err := svc.CitizenStats(ctx, "a@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 2, citizen.TotalIssues)
	assert.EqualValues(t, 1, citizen.StatusCounts["pending"])
	assert.EqualValues(t, 1, citizen.StatusCounts["resolved"])
	assert.Equal(t, 100.0, citizen.TotalPayments)

	staff, err := svc.StaffStats(ctx, "s@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, staff.TotalIssues)
	assert.Zero(t, staff.TotalPayments)

	admin, err := svc.AdminStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, admin.TotalIssues)
	assert.Equal(t, 1100.0, admin.TotalPayments)
	assert.EqualValues(t, 2, admin.PaymentCount)
	assert.Equal(t, 1000.0, admin.ByPurpose[models.PurposeProfile].Amount)
	assert.EqualValues(t, 2, admin.TotalUsers)
	assert.EqualValues(t, 1, admin.TotalStaff)
	assert.EqualValues(t, 1, admin.PremiumMembers)
}
