package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cityfix-be/models"
	"cityfix-be/repositories"
	"cityfix-be/utils"

	"go.uber.org/zap"
)

type UpvoteService interface {
	// Add stores one upvote per (issue, email) and reports whether this call
	// stored it.
	Add(ctx context.Context, req models.UpvoteRequest) (bool, error)
	ListByIssue(ctx context.Context, issueID string) ([]models.Upvote, error)
}

type upvoteService struct {
	upvotes repositories.UpvoteRepository
	issues  repositories.IssueRepository
	log     *zap.Logger
}

func NewUpvoteService(upvotes repositories.UpvoteRepository, issues repositories.IssueRepository, log *zap.Logger) UpvoteService {
	return &upvoteService{upvotes: upvotes, issues: issues, log: log}
}

func (s *upvoteService) Add(ctx context.Context, req models.UpvoteRequest) (bool, error) {
	oid, err := parseID(req.IssueID)
	if err != nil {
		return false, err
	}
	email := utils.NormalizeEmail(req.Email)
	issue, err := s.issues.FindByID(ctx, oid)
	if err != nil {
		return false, notFoundAs(err, utils.ErrIssueNotFound)
	}
	if strings.EqualFold(issue.Email, email) {
		return false, fmt.Errorf("%w: cannot upvote your own issue", utils.ErrForbidden)
	}

	added, err := s.upvotes.Add(ctx, &models.Upvote{IssueID: oid, Email: email, CreatedAt: time.Now()})
	if err != nil || !added {
		return false, err
	}
	if err := s.issues.IncrementUpvotes(ctx, oid); err != nil {
		s.log.Error("upvote stored but counter not incremented", zap.String("issueId", req.IssueID), zap.Error(err))
		return true, err
	}
	return true, nil
}

func (s *upvoteService) ListByIssue(ctx context.Context, issueID string) ([]models.Upvote, error) {
	oid, err := parseID(issueID)
	if err != nil {
		return nil, err
	}
	return s.upvotes.ListByIssue(ctx, oid)
}
