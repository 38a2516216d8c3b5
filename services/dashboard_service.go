package services

import (
	"context"

	"cityfix-be/models"
	"cityfix-be/payments"
	"cityfix-be/repositories"

	"golang.org/x/sync/errgroup"
)

const (
	ScopeCitizen = "citizen"
	ScopeStaff   = "staff"
	ScopeAdmin   = "admin"
)

// DashboardService derives statistics from current store state on every call.
type DashboardService interface {
	CitizenStats(ctx context.Context, email string) (*models.DashboardStats, error)
	StaffStats(ctx context.Context, email string) (*models.DashboardStats, error)
	AdminStats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	issues   repositories.IssueRepository
	payments repositories.PaymentRepository
	users    repositories.UserRepository
	staff    repositories.StaffRepository
}

func NewDashboardService(
	issues repositories.IssueRepository,
	ledger repositories.PaymentRepository,
	users repositories.UserRepository,
	staff repositories.StaffRepository,
) DashboardService {
	return &dashboardService{issues: issues, payments: ledger, users: users, staff: staff}
}

func (s *dashboardService) CitizenStats(ctx context.Context, email string) (*models.DashboardStats, error) {
	stats := newStats(ScopeCitizen, email)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fillIssues(ctx, stats, repositories.IssueFilter{Email: email})
	})
	g.Go(func() error {
		return s.fillPayments(ctx, stats, repositories.PaymentFilter{Email: email, Status: payments.StatusPaid})
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

// StaffStats covers the issues assigned to the staff member. Staff do not pay,
// so the payment totals stay zero.
func (s *dashboardService) StaffStats(ctx context.Context, email string) (*models.DashboardStats, error) {
	stats := newStats(ScopeStaff, email)
	if err := s.fillIssues(ctx, stats, repositories.IssueFilter{AssignedStaff: email}); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *dashboardService) AdminStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := newStats(ScopeAdmin, "")
	subscribed := true

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.fillIssues(ctx, stats, repositories.IssueFilter{})
	})
	g.Go(func() error {
		return s.fillPayments(ctx, stats, repositories.PaymentFilter{Status: payments.StatusPaid})
	})
	g.Go(func() (err error) {
		stats.TotalUsers, err = s.users.Count(ctx, repositories.UserFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.TotalStaff, err = s.staff.Count(ctx, repositories.StaffFilter{})
		return err
	})
	g.Go(func() (err error) {
		stats.PremiumMembers, err = s.users.Count(ctx, repositories.UserFilter{Subscribed: &subscribed})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}

func newStats(scope, email string) *models.DashboardStats {
	counts := make(map[string]int64, len(models.IssueStatuses))
	for _, st := range models.IssueStatuses {
		counts[string(st)] = 0
	}
	return &models.DashboardStats{
		Scope:        scope,
		Email:        email,
		StatusCounts: counts,
		ByPurpose:    map[models.PaymentPurpose]models.PaymentTotal{},
	}
}

// fillIssues and fillPayments write disjoint fields of stats, so they may
// run concurrently.
func (s *dashboardService) fillIssues(ctx context.Context, stats *models.DashboardStats, f repositories.IssueFilter) error {
	counts, err := s.issues.CountByStatus(ctx, f)
	if err != nil {
		return err
	}
	var total int64
	for status, n := range counts {
		total += n
		stats.StatusCounts[status] = n
	}
	stats.TotalIssues = total
	return nil
}

func (s *dashboardService) fillPayments(ctx context.Context, stats *models.DashboardStats, f repositories.PaymentFilter) error {
	totals, err := s.payments.Totals(ctx, f)
	if err != nil {
		return err
	}
	for purpose, t := range totals {
		stats.TotalPayments += t.Amount
		stats.PaymentCount += t.Count
		stats.ByPurpose[purpose] = t
	}
	return nil
}
